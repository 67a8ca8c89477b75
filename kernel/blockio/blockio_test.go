package blockio

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"
)

func TestMemDeviceReadsZeroesWhenUnwritten(t *testing.T) {
	dev := NewMemDevice()
	buf := make([]byte, BlockSize)
	for i := range buf {
		buf[i] = 0xff
	}

	if err := dev.ReadBlock(3, buf); err != nil {
		t.Fatal(err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %#x; want 0", i, b)
		}
	}
}

func TestMemDeviceWriteThenRead(t *testing.T) {
	dev := NewMemDevice()
	want := bytes.Repeat([]byte{0xab}, BlockSize)

	if err := dev.WriteBlock(7, want); err != nil {
		t.Fatal(err)
	}

	got := make([]byte, BlockSize)
	if err := dev.ReadBlock(7, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("read back data did not match written data")
	}
}

func TestFileDeviceReadWrite(t *testing.T) {
	tmp, err := ioutil.TempFile("", "blockio-filedevice-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	dev, err := OpenFileDevice(tmp.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	want := bytes.Repeat([]byte{0x42}, BlockSize)
	if err := dev.WriteBlock(2, want); err != nil {
		t.Fatal(err)
	}

	got := make([]byte, BlockSize)
	if err := dev.ReadBlock(2, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("read back data did not match written data")
	}
}

func TestSimpleBufferCacheBreadReadsThroughOnMiss(t *testing.T) {
	dev := NewMemDevice()
	want := bytes.Repeat([]byte{0x7}, BlockSize)
	if err := dev.WriteBlock(1, want); err != nil {
		t.Fatal(err)
	}

	bc := NewSimpleBufferCache()
	buf, err := bc.Bread(dev, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Data, want) {
		t.Fatal("Bread did not read through to the device")
	}
}

func TestSimpleBufferCacheGetDirtyBufferMissWithoutMarkDirty(t *testing.T) {
	bc := NewSimpleBufferCache()
	if _, ok := bc.GetDirtyBuffer(5); ok {
		t.Fatal("expected no dirty buffer before MarkDirty")
	}
}

func TestSimpleBufferCacheGetDirtyBufferAfterMarkDirty(t *testing.T) {
	bc := NewSimpleBufferCache()
	data := bytes.Repeat([]byte{0x9}, BlockSize)
	bc.MarkDirty(5, data)

	buf, ok := bc.GetDirtyBuffer(5)
	if !ok {
		t.Fatal("expected dirty buffer after MarkDirty")
	}
	if !bytes.Equal(buf.Data, data) {
		t.Fatal("dirty buffer contents did not match")
	}
}
