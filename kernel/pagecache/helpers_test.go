package pagecache

import (
	"time"

	"pagecore/kernel/blockio"
)

func timeoutChan() <-chan time.Time {
	return time.After(2 * time.Second)
}

func waitBriefly() {
	<-time.After(20 * time.Millisecond)
}

func newTestBufferedDevice() blockio.Device {
	return blockio.NewMemDevice()
}
