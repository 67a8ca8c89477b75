// Command pagecached runs a page cache as a standalone daemon, exposing its
// statistics on /metrics. It exists to exercise kernel/pagecache end to end
// outside of a kernel build: flags are parsed the way
// talyz-systemd_exporter's systemd package declares its collector flags,
// with kingpin.
package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"pagecore/kernel/blockio"
	"pagecore/kernel/kfmt"
	"pagecore/kernel/pagecache"
	"pagecore/kernel/vfs"
	"pagecore/metrics"
)

var (
	poolSize      = kingpin.Flag("pool-size", "Number of page frames in the cache.").Default("1024").Int()
	bucketCount   = kingpin.Flag("bucket-count", "Number of hash buckets indexing cached pages.").Default("256").Int()
	freeWatermark = kingpin.Flag("free-watermark", "Free-page count above which blocked allocators are woken.").Default("4").Int()
	listenAddress = kingpin.Flag("web.listen-address", "Address to listen on for /metrics.").Default(":9600").String()
	backingDir    = kingpin.Flag("backing-dir", "Directory holding a pagecache.img file backing the exercised inode. If unset, an in-memory device is used.").String()
)

// wholeMemoryMap reports every physical address as usable, standing in for
// a firmware memory map on a machine with no reserved ranges.
type wholeMemoryMap struct{}

func (wholeMemoryMap) Usable(addr int64) bool { return true }

func main() {
	kingpin.Version("pagecached 0.1.0")
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	log := kfmt.Stderr

	dev, err := openDevice(*backingDir)
	if err != nil {
		log.Warnf("pagecached: %v", err)
		return
	}

	bufferCache := blockio.NewSimpleBufferCache()
	inode := vfs.NewMemInode(1, dev, blockio.BlockSize)

	cache := pagecache.NewCache(pagecache.Config{
		FrameCount:    *poolSize,
		BucketCount:   *bucketCount,
		FreeWatermark: *freeWatermark,
		Logger:        log,
		BufferCache:   bufferCache,
	})
	cache.Init(pagecache.InitConfig{
		FrameBase:   0,
		KernelEntry: 0,
		KernelEnd:   0,
		Map:         wholeMemoryMap{},
	})

	collector := metrics.NewCollector(cache)
	prometheus.MustRegister(collector)

	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/read", readHandler(cache, inode))

	log.Warnf("pagecached: listening on %s", *listenAddress)
	if err := http.ListenAndServe(*listenAddress, nil); err != nil {
		log.Warnf("pagecached: %v", err)
	}
}

// readHandler drives cache.FileRead against inode so that exercising
// /read?offset=N&length=N moves pages through the cache, giving the
// /metrics counters something to report besides zeros.
func readHandler(cache *pagecache.Cache, inode *vfs.MemInode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset := queryInt64(r, "offset", 0)
		length := queryInt64(r, "length", int64(pagecache.PageSize))

		buf := make([]byte, length)
		n, err := cache.FileRead(inode, offset, buf)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write(buf[:n])
	}
}

func queryInt64(r *http.Request, key string, fallback int64) int64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	var parsed int64
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		parsed = parsed*10 + int64(c-'0')
	}
	return parsed
}

func openDevice(dir string) (blockio.Device, error) {
	if dir == "" {
		return blockio.NewMemDevice(), nil
	}
	return blockio.OpenFileDevice(dir + "/pagecache.img")
}
