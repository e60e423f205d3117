// Package shutdown runs registered callbacks once a termination signal arrives.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kiosk404/pokedex/pkg/logger"
)

// Callback is invoked on shutdown with the name of the triggering signal.
type Callback interface {
	OnShutdown(reason string) error
}

// Func adapts a plain function to Callback.
type Func func(reason string) error

func (f Func) OnShutdown(reason string) error { return f(reason) }

// GracefulShutdown fans a single shutdown event out to all callbacks in registration order.
type GracefulShutdown struct {
	mu        sync.Mutex
	callbacks []Callback
	signals   []os.Signal
	once      sync.Once
	done      chan struct{}
	ch        chan os.Signal
}

// New listens for SIGINT and SIGTERM unless other signals are given.
func New(signals ...os.Signal) *GracefulShutdown {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	return &GracefulShutdown{signals: signals, done: make(chan struct{})}
}

func (gs *GracefulShutdown) AddShutdownCallback(cb Callback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, cb)
}

// Start begins listening for signals; it does not block.
func (gs *GracefulShutdown) Start() error {
	gs.ch = make(chan os.Signal, 1)
	signal.Notify(gs.ch, gs.signals...)
	go func() {
		sig, ok := <-gs.ch
		if !ok {
			return
		}
		gs.Trigger(sig.String())
	}()
	return nil
}

// Trigger runs the callbacks as if a signal named reason had arrived. Only the first call has effect.
func (gs *GracefulShutdown) Trigger(reason string) {
	gs.once.Do(func() {
		logger.Info("[Shutdown] received %s, shutting down", reason)
		gs.mu.Lock()
		callbacks := append([]Callback(nil), gs.callbacks...)
		gs.mu.Unlock()

		for _, cb := range callbacks {
			if err := cb.OnShutdown(reason); err != nil {
				logger.Error("[Shutdown] callback failed: %v", err)
			}
		}
		if gs.ch != nil {
			signal.Stop(gs.ch)
		}
		close(gs.done)
	})
}

// Done is closed after all callbacks ran.
func (gs *GracefulShutdown) Done() <-chan struct{} {
	return gs.done
}
