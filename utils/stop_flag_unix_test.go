//go:build unix

package utils

import (
	"syscall"
	"testing"
	"time"
)

func TestNotifyStopOnInterrupt(t *testing.T) {
	flag, unregister := NotifyStop()
	defer unregister()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("kill: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !flag.Stopped() {
		if time.Now().After(deadline) {
			t.Fatal("stop flag not set after SIGINT")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
