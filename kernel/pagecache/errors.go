package pagecache

import kernelerrors "pagecore/kernel/errors"

// The error taxonomy is deliberately small and closed: callers translate
// ErrOutOfMemory and ErrIO to their own domain's error codes, and an
// invalid frame index is a client bug that panics rather than returning an
// error.
var (
	// ErrOutOfMemory is returned by AllocateFrame when the free list is
	// still empty after one reclaim-wait cycle.
	ErrOutOfMemory = kernelerrors.ErrOutOfMemory

	// ErrIO is returned by the fill and flush paths when a collaborator
	// (inode block mapping, block device read, buffer cache) fails.
	ErrIO = kernelerrors.ErrIO
)
