package core

import (
	"context"
	"sync"

	"github.com/go-drift/relm/pkg/errors"
)

// Loop is a cooperative scheduler with a microtask queue.
//
// Microtasks queued with Enqueue run in FIFO order when Flush is called;
// tasks queued while flushing run in the same flush. Posted tasks are
// delivered by Run or RunPosted, each followed by a microtask flush.
type Loop struct {
	microtasks []func()
	flushing   bool

	mu     sync.Mutex
	posted []func()
	wake   chan struct{}

	// OnNeedsFlush is called when the microtask queue goes from empty to
	// non-empty, so an embedding host can schedule a flush.
	OnNeedsFlush func()
}

// NewLoop creates an idle loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Enqueue schedules fn as a microtask.
//
// Enqueue is NOT thread-safe. Use Post from other goroutines.
func (l *Loop) Enqueue(fn func()) {
	if fn == nil {
		return
	}
	l.microtasks = append(l.microtasks, fn)
	if len(l.microtasks) == 1 && !l.flushing && l.OnNeedsFlush != nil {
		l.OnNeedsFlush()
	}
}

// Pending returns the number of queued microtasks.
func (l *Loop) Pending() int {
	return len(l.microtasks)
}

// Flush runs microtasks until the queue is empty. A panicking task is
// reported and the remaining tasks still run. Calls from inside a running
// microtask return immediately; the outer flush picks up any new work.
func (l *Loop) Flush() {
	if l.flushing {
		return
	}
	l.flushing = true
	defer func() { l.flushing = false }()

	for len(l.microtasks) > 0 {
		task := l.microtasks[0]
		l.microtasks[0] = nil
		l.microtasks = l.microtasks[1:]
		runTask("core.Loop.Flush", task)
	}
	l.microtasks = nil
}

func runTask(op string, task func()) {
	defer errors.Recover(op)
	task()
}

// Post schedules fn to run on the loop goroutine. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPosted runs every task posted so far, flushing microtasks after each.
// It returns the number of tasks run.
func (l *Loop) RunPosted() int {
	l.mu.Lock()
	tasks := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, task := range tasks {
		runTask("core.Loop.RunPosted", task)
		l.Flush()
	}
	l.Flush()
	return len(tasks)
}

// Run delivers posted tasks until ctx is done. It must be called from the
// goroutine that owns the components scheduled on l.
func (l *Loop) Run(ctx context.Context) error {
	l.Flush()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.RunPosted()
		}
	}
}

// Await flushes the microtask queue and returns u's result. It returns
// ErrPending when u is still unresolved afterwards.
func (l *Loop) Await(u *Update) error {
	l.Flush()
	if !u.Resolved() {
		return ErrPending
	}
	return u.Err()
}
