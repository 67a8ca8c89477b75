// Package vfs defines the inode boundary the page cache core reads and
// writes through. It deliberately knows nothing about any real filesystem
// layout; it exposes just enough of an inode's shape (size, block mapping,
// locking, backing device) for the fill and writeback paths to work.
package vfs

import "pagecore/kernel/blockio"

// BlockMode selects how BlockMap should behave when the requested offset
// falls in a hole (a region of the file with no block allocated yet).
type BlockMode int

const (
	// ForReading asks BlockMap to report a hole rather than allocate one;
	// readers fill holes with zeroes instead of touching the device.
	ForReading BlockMode = iota

	// ForWriting asks BlockMap to allocate a block for the offset if one
	// isn't already mapped.
	ForWriting
)

// Inode is the minimal per-file state the page cache core needs in order to
// fill and flush pages belonging to a file.
type Inode interface {
	// Identity returns a value that uniquely and stably identifies this
	// inode for the lifetime of the process, used as half of a cached
	// page's hash key.
	Identity() uint64

	// Size returns the file's current size in bytes.
	Size() int64

	// BlockMap translates a block-aligned byte offset into the file to an
	// absolute device block number that holds it, or reports the offset
	// as a hole. Mode controls whether a hole should be allocated.
	BlockMap(offset int64, mode BlockMode) (block int64, hole bool, err error)

	// Device returns the block device backing this inode.
	Device() blockio.Device

	// WriteAt writes data directly into the inode's backing store at
	// offset, growing the inode if the write extends past its current
	// size, and returns the number of bytes written.
	WriteAt(offset int64, data []byte) (int, error)

	// BlockSize returns the filesystem block size this inode's blocks are
	// addressed in; it must evenly divide the page size.
	BlockSize() int

	// Lock and Unlock serialize access to the inode's own metadata (size,
	// block map) across concurrent fill/write calls. This is distinct
	// from the page cache's own per-frame busy lock.
	Lock()
	Unlock()
}
