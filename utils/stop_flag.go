package utils

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// StopFlag is the single shared "please stop" bit between a signal handler and the game loop.
// It is written by the handler and read by the loop once per iteration.
type StopFlag struct {
	stopped atomic.Bool
}

// Stop requests the loop to exit before its next iteration
func (f *StopFlag) Stop() {
	f.stopped.Store(true)
}

// Stopped reports whether a stop has been requested
func (f *StopFlag) Stopped() bool {
	return f.stopped.Load()
}

// NotifyStop sets the returned flag when the process receives SIGINT or SIGTERM
// instead of letting the default handler kill the process.
// The returned function unregisters the handler.
func NotifyStop() (*StopFlag, func()) {
	var (
		flag  = &StopFlag{}
		sigCh = make(chan os.Signal, 1)
		done  = make(chan struct{})
	)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			flag.Stop()
		case <-done:
		}
	}()

	return flag, func() {
		signal.Stop(sigCh)
		close(done)
	}
}
