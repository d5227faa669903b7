package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"receipthub/internal/util/logger"
)

var isShouldShutdown atomic.Bool

// StartListeningForShutdownSignal sets a process-wide flag that background
// workers poll so they can drain their buffers before the server stops.
func StartListeningForShutdownSignal() {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.GetLogger().Info("Shutdown signal received, notifying workers")
		isShouldShutdown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return isShouldShutdown.Load()
}
