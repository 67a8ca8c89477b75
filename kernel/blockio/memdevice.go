package blockio

import "sync"

// MemDevice is an in-memory Device, used by tests and by the in-process
// fakes that stand in for a real block device.
type MemDevice struct {
	mu     sync.Mutex
	blocks map[int64][]byte
}

// NewMemDevice returns an empty MemDevice. Unwritten blocks read as zeroes.
func NewMemDevice() *MemDevice {
	return &MemDevice{blocks: make(map[int64][]byte)}
}

// ReadBlock implements Device.
func (d *MemDevice) ReadBlock(blk int64, into []byte) error {
	if len(into) != BlockSize {
		panic("blockio: ReadBlock buffer must be BlockSize bytes")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if data, ok := d.blocks[blk]; ok {
		copy(into, data)
		return nil
	}
	for i := range into {
		into[i] = 0
	}
	return nil
}

// WriteBlock implements Device.
func (d *MemDevice) WriteBlock(blk int64, data []byte) error {
	if len(data) != BlockSize {
		panic("blockio: WriteBlock buffer must be BlockSize bytes")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	stored := make([]byte, BlockSize)
	copy(stored, data)
	d.blocks[blk] = stored
	return nil
}
