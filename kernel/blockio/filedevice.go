package blockio

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// FileDevice is a Device backed by a regular file, grounded on the
// file-backed disk driver pattern used elsewhere in the example pack
// (biscuit's ahci_disk_t, which seeks an *os.File to blk*BSIZE and reads or
// writes BSIZE bytes under a mutex serializing seek-then-I/O).
type FileDevice struct {
	mu sync.Mutex
	f  *os.File
}

// OpenFileDevice opens (creating if necessary) path as a FileDevice.
func OpenFileDevice(path string) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "blockio: open %s", path)
	}
	return &FileDevice{f: f}, nil
}

// ReadBlock implements Device.
func (d *FileDevice) ReadBlock(blk int64, into []byte) error {
	if len(into) != BlockSize {
		panic("blockio: ReadBlock buffer must be BlockSize bytes")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.f.Seek(blk*BlockSize, 0); err != nil {
		return errors.Wrap(err, "blockio: seek")
	}
	n, err := d.f.Read(into)
	if err != nil {
		return errors.Wrap(err, "blockio: read")
	}
	for ; n < BlockSize; n++ {
		into[n] = 0
	}
	return nil
}

// WriteBlock implements Device.
func (d *FileDevice) WriteBlock(blk int64, data []byte) error {
	if len(data) != BlockSize {
		panic("blockio: WriteBlock buffer must be BlockSize bytes")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.f.Seek(blk*BlockSize, 0); err != nil {
		return errors.Wrap(err, "blockio: seek")
	}
	if _, err := d.f.Write(data); err != nil {
		return errors.Wrap(err, "blockio: write")
	}
	return nil
}

// Close closes the backing file.
func (d *FileDevice) Close() error {
	return d.f.Close()
}
