// Package signal keeps Ctrl-C from killing nvmd while a child tool is running
package signal

import (
	"os"
	ossignal "os/signal"
	"sync/atomic"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// Guard exits the process on SIGINT until control has been passed to a child
type Guard struct {
	passed atomic.Bool
	ch     chan os.Signal
	done   chan struct{}
	exit   func(int)
}

// Install starts listening for interrupts
func Install() *Guard {
	g := newGuard(os.Exit)
	ossignal.Notify(g.ch, os.Interrupt)
	go g.loop()
	return g
}

func newGuard(exit func(int)) *Guard {
	return &Guard{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
		exit: exit,
	}
}

// PassControl marks that a child is about to start. Later interrupts are
// left to the child, which shares the terminal's process group.
func (g *Guard) PassControl() {
	g.passed.Store(true)
}

// ControlPassed reports whether PassControl was called
func (g *Guard) ControlPassed() bool {
	return g.passed.Load()
}

// Stop stops listening for interrupts
func (g *Guard) Stop() {
	ossignal.Stop(g.ch)
	close(g.done)
}

func (g *Guard) loop() {
	for {
		select {
		case <-g.ch:
			g.handle()
		case <-g.done:
			return
		}
	}
}

func (g *Guard) handle() {
	if g.ControlPassed() {
		ui.Debug("Interrupt left to the child process")
		return
	}
	g.exit(constants.ExitInterrupted)
}
