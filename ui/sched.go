package ui

import "context"

// Scheduler marshals closures onto the UI-owning goroutine. All screen
// mutation goes through it; background workers never touch router
// state directly.
type Scheduler interface {
	Dispatch(func())
}

// Loop is the production scheduler: one goroutine draining a closure
// queue. Run blocks until the context ends.
type Loop struct {
	funcs chan func()
}

func NewLoop() *Loop {
	return &Loop{funcs: make(chan func(), 64)}
}

func (l *Loop) Dispatch(fn func()) {
	l.funcs <- fn
}

func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.funcs:
			fn()
		}
	}
}

// directScheduler runs closures inline. Tests use it so the whole
// lifecycle executes deterministically on the test goroutine.
type directScheduler struct{}

func (directScheduler) Dispatch(fn func()) { fn() }
