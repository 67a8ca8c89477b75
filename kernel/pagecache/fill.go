package pagecache

import (
	"pagecore/kernel/mem"
	"pagecore/kernel/vfs"
)

// Prot and Share describe the mapping a page is being filled for, matching
// the prot/share parameters bread_page takes in the original kernel.
type Prot int

const (
	ProtRead Prot = iota
	ProtWrite
)

type Share int

const (
	ShareShared Share = iota
	SharePrivate
)

// FillForRead populates frame n's data from inode's backing file at the
// page-aligned offset off, one block-sized slice at a time. Each slice is
// resolved through inode.BlockMap; a hole is zero filled and a real block
// is satisfied from a dirty buffer if one exists, or a direct device read
// otherwise.
//
// Publication then splits on prot/share: a read-only or shared mapping is
// published into the hash index so later readers and shared writers reuse
// it without I/O; a private writable mapping is instead filled through the
// buffer cache (so the pristine on-disk content stays warm for other
// private faulters) and left unpublished, expressing private-vs-shared
// without an explicit copy-on-write bit.
func (c *Cache) FillForRead(n int, inode vfs.Inode, off int64, prot Prot, share Share) error {
	f := c.frameAt(n)
	blockSize := inode.BlockSize()

	shared := prot != ProtWrite || share == ShareShared

	if shared {
		for read := 0; read < PageSize; read += blockSize {
			slice := f.data[read : read+blockSize]
			block, hole, err := inode.BlockMap(off+int64(read), vfs.ForReading)
			if err != nil {
				return ErrIO
			}
			if hole {
				zero(slice)
				continue
			}

			dev := inode.Device()
			if buf, ok := c.bufferCache.GetDirtyBuffer(block); ok {
				copy(slice, buf.Data)
				c.bufferCache.Release(buf)
				continue
			}
			if err := dev.ReadBlock(block, slice); err != nil {
				return ErrIO
			}
		}

		c.mask()
		c.hashIndex.insert(n, CacheKey{InodeID: inode.Identity(), Offset: off})
		c.unmask()
		return nil
	}

	// Private writable mapping: always read through the buffer cache so
	// a future private faulter finds the pristine block already warm
	// there, and never publish this frame.
	for read := 0; read < PageSize; read += blockSize {
		slice := f.data[read : read+blockSize]
		block, hole, err := inode.BlockMap(off+int64(read), vfs.ForReading)
		if err != nil {
			return ErrIO
		}
		if hole {
			// The original kernel leaves holes untouched here, relying on
			// a freshly allocated page already being zero; frames in this
			// cache are recycled from a pool with no such guarantee, so
			// holes are zero filled explicitly to avoid leaking a prior
			// occupant's bytes into a private mapping.
			zero(slice)
			continue
		}

		buf, err := c.bufferCache.Bread(inode.Device(), block)
		if err != nil {
			return ErrIO
		}
		copy(slice, buf.Data)
		c.bufferCache.Release(buf)
	}

	f.key = CacheKey{}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// UpdateCache overwrites n bytes of a cached page at offset's in-page
// position. A miss (the key isn't in the hash index) is silent — there is
// nothing to invalidate because no cache copy existed.
func (c *Cache) UpdateCache(inodeID uint64, offset int64, buf []byte, n int) {
	if n == 0 {
		return
	}

	poffset := mem.InPageOffset(offset)
	aligned := offset - poffset

	cached, ok := c.LookupCached(inodeID, aligned)
	if !ok {
		return
	}

	bytes := int64(PageSize) - poffset
	if int64(n) < bytes {
		bytes = int64(n)
	}

	c.lockFrame(cached.Number)
	copy(cached.Data[poffset:poffset+bytes], buf[:bytes])
	c.unlockFrame(cached.Number)

	c.ReleaseFrame(cached.Number)
}

// FlushPage synchronously writes up to min(inode.Size(), length) bytes of
// frame n's data through the inode's write path.
func (c *Cache) FlushPage(n int, inode vfs.Inode, offset int64, length int) error {
	f := c.frameAt(n)

	size := int64(length)
	if inode.Size() < size {
		size = inode.Size()
	}

	_, err := inode.WriteAt(offset, f.data[:size])
	if err != nil {
		return ErrIO
	}
	return nil
}
