package pagecache

import (
	"pagecore/kernel/mem"
	"pagecore/kernel/vfs"
)

// FileRead is the client-facing entry point that ties lookup, allocation,
// and fill together. The inode is locked for the whole call to serialize
// against truncation and metadata change, matching the original kernel's
// inode_lock/inode_unlock bracket around file_read.
//
// Offset is clamped to the inode's size before the first iteration, exactly
// like file_read's "if(fd_table->offset > i->i_size) fd_table->offset =
// i->i_size". Each iteration copies at most one page's worth of
// intersection between the page and the remaining request into buf, and a
// short read (or zero-length request) simply ends the loop — this function
// never returns an error for "ran out of file", only for allocation or I/O
// failure.
func (c *Cache) FileRead(inode vfs.Inode, offset int64, buf []byte) (int, error) {
	inode.Lock()
	defer inode.Unlock()

	if offset > inode.Size() {
		offset = inode.Size()
	}

	total := 0
	for total < len(buf) {
		remaining := inode.Size() - offset
		if remaining <= 0 {
			break
		}

		want := int64(len(buf) - total)
		if want > remaining {
			want = remaining
		}
		if want == 0 {
			break
		}

		aligned := mem.PageAlignDown(offset)
		poffset := offset - aligned

		cached, ok := c.LookupCached(inode.Identity(), aligned)
		if !ok {
			allocated, err := c.AllocateFrame()
			if err != nil {
				return total, err
			}
			if err := c.FillForRead(allocated.Number, inode, aligned, ProtRead, ShareShared); err != nil {
				c.ReleaseFrame(allocated.Number)
				return total, err
			}
			cached = allocated
		}

		bytes := int64(PageSize) - poffset
		if bytes > want {
			bytes = want
		}

		c.lockFrame(cached.Number)
		copy(buf[total:], cached.Data[poffset:poffset+bytes])
		c.unlockFrame(cached.Number)
		c.ReleaseFrame(cached.Number)

		total += int(bytes)
		offset += bytes
	}

	return total, nil
}
