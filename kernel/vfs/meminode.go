package vfs

import (
	gosync "sync"

	"pagecore/kernel/blockio"
)

// MemInode is an in-memory Inode fake used by tests and by cmd/pagecached
// when no on-disk filesystem is configured. Blocks are mapped directly:
// file block N lives at device block N, with no indirection, which is
// enough to exercise holes, growth, and the page cache's fill and
// writeback paths without needing a real filesystem's block-mapping logic.
type MemInode struct {
	mu gosync.Mutex

	// opMu backs Lock/Unlock. It is separate from mu so that a caller
	// holding the inode lock can still call Size, BlockMap and WriteAt.
	opMu gosync.Mutex

	id        uint64
	size      int64
	blockSize int
	dev       blockio.Device
	allocated map[int64]bool
	nextBlock int64
}

// NewMemInode returns a MemInode with the given identity, backed by dev,
// addressing it in blockSize-byte blocks.
func NewMemInode(id uint64, dev blockio.Device, blockSize int) *MemInode {
	return &MemInode{
		id:        id,
		blockSize: blockSize,
		dev:       dev,
		allocated: make(map[int64]bool),
	}
}

// Identity implements Inode.
func (n *MemInode) Identity() uint64 { return n.id }

// Size implements Inode.
func (n *MemInode) Size() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.size
}

// Device implements Inode.
func (n *MemInode) Device() blockio.Device { return n.dev }

// BlockSize implements Inode.
func (n *MemInode) BlockSize() int { return n.blockSize }

// Lock implements Inode.
func (n *MemInode) Lock() { n.opMu.Lock() }

// Unlock implements Inode.
func (n *MemInode) Unlock() { n.opMu.Unlock() }

// BlockMap implements Inode. File offsets map directly to device block
// numbers one-for-one; "allocating" a block on ForWriting just marks the
// file-block index as backed so future ForReading lookups no longer report
// it as a hole.
func (n *MemInode) BlockMap(offset int64, mode BlockMode) (int64, bool, error) {
	fileBlock := offset / int64(n.blockSize)

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.allocated[fileBlock] {
		return fileBlock, false, nil
	}
	if mode == ForReading {
		return 0, true, nil
	}
	n.allocated[fileBlock] = true
	return fileBlock, false, nil
}

// WriteAt implements Inode, allocating any file blocks the write spans and
// growing Size to cover the write's extent.
func (n *MemInode) WriteAt(offset int64, data []byte) (int, error) {
	for written := 0; written < len(data); {
		blockOff := offset % int64(n.blockSize)
		chunk := int64(n.blockSize) - blockOff
		remaining := int64(len(data) - written)
		if chunk > remaining {
			chunk = remaining
		}

		fileBlock, _, err := n.BlockMap(offset-blockOff, ForWriting)
		if err != nil {
			return written, err
		}

		block := make([]byte, n.blockSize)
		_ = n.dev.ReadBlock(fileBlock, block)
		copy(block[blockOff:], data[written:written+int(chunk)])
		if err := n.dev.WriteBlock(fileBlock, block); err != nil {
			return written, err
		}

		written += int(chunk)
		offset += chunk

		n.mu.Lock()
		if offset > n.size {
			n.size = offset
		}
		n.mu.Unlock()
	}
	return len(data), nil
}
