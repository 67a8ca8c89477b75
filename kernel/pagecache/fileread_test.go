package pagecache

import (
	"bytes"
	"testing"

	"pagecore/kernel/blockio"
)

func TestFileReadClampsToFileSize(t *testing.T) {
	c := newTestCache(t, 4, 8)
	initAllFree(t, c)

	dev := blockio.NewMemDevice()
	inode := newCountingInode(1, dev, blockio.BlockSize)
	writePattern(t, inode, 0, 0x1, 100)

	buf := make([]byte, 4096)
	n, err := c.FileRead(inode, 50, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 50 {
		t.Fatalf("n = %d; want 50 (short read clamped to file size)", n)
	}
}

func TestFileReadOffsetBeyondSizeReturnsZero(t *testing.T) {
	c := newTestCache(t, 4, 8)
	initAllFree(t, c)

	dev := blockio.NewMemDevice()
	inode := newCountingInode(1, dev, blockio.BlockSize)
	writePattern(t, inode, 0, 0x1, 100)

	buf := make([]byte, 10)
	n, err := c.FileRead(inode, 1000, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("n = %d; want 0", n)
	}
}

func TestFileReadSpansMultiplePages(t *testing.T) {
	c := newTestCache(t, 4, 8)
	initAllFree(t, c)

	dev := blockio.NewMemDevice()
	inode := newCountingInode(1, dev, blockio.BlockSize)
	data := bytes.Repeat([]byte{0x11}, PageSize)
	data = append(data, bytes.Repeat([]byte{0x22}, PageSize)...)
	if _, err := inode.WriteAt(0, data); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, len(data))
	n, err := c.FileRead(inode, 0, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("n = %d; want %d", n, len(data))
	}
	if !bytes.Equal(buf, data) {
		t.Fatal("content mismatch spanning two pages")
	}
}

func TestFileReadAllocationFailurePropagatesErrOutOfMemory(t *testing.T) {
	c := newTestCache(t, 1, 4)
	initAllFree(t, c)

	// Hold the sole frame so the read can never allocate.
	held, err := c.AllocateFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer c.ReleaseFrame(held.Number)

	dev := blockio.NewMemDevice()
	inode := newCountingInode(1, dev, blockio.BlockSize)
	writePattern(t, inode, 0, 0x1, PageSize)

	buf := make([]byte, PageSize)
	done := make(chan error, 1)
	go func() {
		_, err := c.FileRead(inode, 0, buf)
		done <- err
	}()

	// Wake the sleeping allocator with the sole frame still held, as a
	// reclaimer that found nothing to reclaim would.
	waitBriefly()
	c.wq.Wakeup()

	select {
	case err := <-done:
		if err != ErrOutOfMemory {
			t.Fatalf("err = %v; want ErrOutOfMemory", err)
		}
	case <-timeoutChan():
		t.Fatal("FileRead never returned")
	}
}
