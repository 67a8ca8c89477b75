// Package blockio defines the block-device and buffer-cache boundaries the
// page cache core fills through. The core never talks to a disk directly;
// it asks a Device for raw blocks and a BufferCache for dirty-buffer
// lookups and read-through buffers, the same way the original kernel's
// page-fill path goes through get_dirty_buffer/bread rather than the disk
// driver.
package blockio

import "pagecore/kernel/errors"

// BlockSize is the fixed block size every Device and BufferCache in this
// package operates in.
const BlockSize = 1024

// Device is a block-addressable backing store. Block numbers are absolute;
// a Device does not know about files or offsets, only blocks.
type Device interface {
	// ReadBlock reads block number blk into into, which must be exactly
	// BlockSize bytes. Reading beyond the end of the device is an error.
	ReadBlock(blk int64, into []byte) error

	// WriteBlock writes data (exactly BlockSize bytes) to block number blk.
	WriteBlock(blk int64, data []byte) error
}

// Buffer is an in-flight handle to a buffer-cache entry for one block.
// Callers that obtain a Buffer via BufferCache must call Release when done
// with it.
type Buffer struct {
	Block int64
	Data  []byte
	Dirty bool
}

// BufferCache models the kernel's buffer cache, sitting between the page
// cache and the raw Device. The page cache core's fill path uses it two
// ways: GetDirtyBuffer, to pick up a buffer a writer already modified
// in-place without issuing a fresh disk read, and Bread, to read a block
// through the buffer cache (always, regardless of whether it happens to be
// cached) when filling pages that back a private writable mapping.
type BufferCache interface {
	// GetDirtyBuffer returns the buffer for blk only if it is already
	// resident in the buffer cache and marked dirty, without touching the
	// device. It returns ok == false if no such buffer exists.
	GetDirtyBuffer(blk int64) (buf *Buffer, ok bool)

	// Bread returns the buffer for blk, reading it from dev first if it is
	// not already resident.
	Bread(dev Device, blk int64) (*Buffer, error)

	// Release returns a Buffer obtained from GetDirtyBuffer or Bread.
	Release(buf *Buffer)
}

// ErrBlockOutOfRange names a block number past the end of a backing store.
// Neither MemDevice nor FileDevice returns it: MemDevice has no end, and
// FileDevice reports a read past the end of its file as a wrapped read
// error.
var ErrBlockOutOfRange = errors.KernelError("blockio: block number out of range")
