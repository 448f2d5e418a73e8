// Package workers runs the background jobs of the server. Every worker is
// bound to a context and stops when it is cancelled.
package workers

import "context"

// Worker is a background job. Run must not block: implementations start
// their own goroutine and return.
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() {
//	        <-ctx.Done()
//	    }()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Sweeper evicts expired state and reports how many entries it removed.
type Sweeper interface {
	Sweep() int
}
