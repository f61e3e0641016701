package core

import "errors"

// ErrPending is returned by Loop.Await for updates whose render has not run.
var ErrPending = errors.New("core: update still pending")

// Update is the result of RequestUpdate. It resolves once the render that
// reflects the update has run, or immediately when no render was needed.
type Update struct {
	done chan struct{}
	err  error
}

func newUpdate() *Update {
	return &Update{done: make(chan struct{})}
}

func resolvedUpdate(err error) *Update {
	u := newUpdate()
	u.resolve(err)
	return u
}

func (u *Update) resolve(err error) {
	select {
	case <-u.done:
		return
	default:
	}
	u.err = err
	close(u.done)
}

// Done is closed when the update resolves.
func (u *Update) Done() <-chan struct{} {
	return u.done
}

// Resolved reports whether the update has resolved.
func (u *Update) Resolved() bool {
	select {
	case <-u.done:
		return true
	default:
		return false
	}
}

// Err returns the failure that resolved the update, if any. It is nil
// until the update resolves.
func (u *Update) Err() error {
	if !u.Resolved() {
		return nil
	}
	return u.err
}
