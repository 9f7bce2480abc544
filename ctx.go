package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var once = &sync.Once{}

var (
	appCtx     context.Context
	cancelFunc context.CancelFunc
)

// GetApplicationContext returns a context cancelled on SIGTERM, SIGINT or
// SIGQUIT, ending the observation window early.
func GetApplicationContext() context.Context {
	once.Do(func() {
		appCtx, cancelFunc = context.WithCancel(context.Background())

		go func() {
			signals := []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT}
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, signals...)
			defer signal.Reset(signals...)
			sig := <-sigChan
			log.WithField("signal", sig).Info("stopping capture")
			cancelFunc()
		}()
	})

	return appCtx
}
