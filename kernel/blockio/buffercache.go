package blockio

import "sync"

// SimpleBufferCache is an in-memory BufferCache implementation used by
// tests and by cmd/pagecached. Buffers are kept indefinitely once read; it
// performs no eviction of its own since exercising buffer-cache pressure is
// outside the scope of this subsystem.
type SimpleBufferCache struct {
	mu      sync.Mutex
	buffers map[int64]*Buffer
}

// NewSimpleBufferCache returns an empty SimpleBufferCache.
func NewSimpleBufferCache() *SimpleBufferCache {
	return &SimpleBufferCache{buffers: make(map[int64]*Buffer)}
}

// GetDirtyBuffer implements BufferCache.
func (c *SimpleBufferCache) GetDirtyBuffer(blk int64) (*Buffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf, ok := c.buffers[blk]
	if !ok || !buf.Dirty {
		return nil, false
	}
	return buf, true
}

// Bread implements BufferCache.
func (c *SimpleBufferCache) Bread(dev Device, blk int64) (*Buffer, error) {
	c.mu.Lock()
	if buf, ok := c.buffers[blk]; ok {
		c.mu.Unlock()
		return buf, nil
	}
	c.mu.Unlock()

	data := make([]byte, BlockSize)
	if err := dev.ReadBlock(blk, data); err != nil {
		return nil, err
	}

	buf := &Buffer{Block: blk, Data: data}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.buffers[blk]; ok {
		return existing, nil
	}
	c.buffers[blk] = buf
	return buf, nil
}

// Release implements BufferCache. SimpleBufferCache keeps buffers resident
// once loaded, so Release is a no-op beyond satisfying the interface.
func (c *SimpleBufferCache) Release(buf *Buffer) {}

// MarkDirty installs buf as a dirty buffer for blk, as if a writer had just
// modified it in place, so a subsequent GetDirtyBuffer(blk) picks it up
// without a device read, and a subsequent Bread(dev, blk) returns it
// instead of the device's copy. Used by tests to prime the buffer cache
// with bytes that differ from the on-disk block.
func (c *SimpleBufferCache) MarkDirty(blk int64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, BlockSize)
	copy(stored, data)
	c.buffers[blk] = &Buffer{Block: blk, Data: stored, Dirty: true}
}
