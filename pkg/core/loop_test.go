package core

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"
	"time"
)

func TestLoop_FlushRunsInOrder(t *testing.T) {
	loop := NewLoop()
	var got []int
	loop.Enqueue(func() {
		got = append(got, 1)
		loop.Enqueue(func() { got = append(got, 3) })
	})
	loop.Enqueue(func() { got = append(got, 2) })

	if loop.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", loop.Pending())
	}
	loop.Flush()
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("order = %v, want [1 2 3]", got)
	}
	if loop.Pending() != 0 {
		t.Error("queue should be empty after Flush")
	}
}

func TestLoop_NestedFlushIsNoop(t *testing.T) {
	loop := NewLoop()
	var got []string
	loop.Enqueue(func() {
		loop.Enqueue(func() { got = append(got, "inner") })
		loop.Flush()
		got = append(got, "outer")
	})
	loop.Flush()
	if !reflect.DeepEqual(got, []string{"outer", "inner"}) {
		t.Errorf("got %v", got)
	}
}

func TestLoop_PanicDoesNotStopQueue(t *testing.T) {
	h := captureErrors(t)
	loop := NewLoop()
	ran := false
	loop.Enqueue(func() { panic("task failed") })
	loop.Enqueue(func() { ran = true })
	loop.Flush()

	if !ran {
		t.Error("task after a panic did not run")
	}
	if len(h.panics) != 1 || h.panics[0].Value != "task failed" {
		t.Errorf("panics = %v", h.panics)
	}
}

func TestLoop_OnNeedsFlush(t *testing.T) {
	loop := NewLoop()
	calls := 0
	loop.OnNeedsFlush = func() { calls++ }
	loop.Enqueue(func() {})
	loop.Enqueue(func() {})
	if calls != 1 {
		t.Errorf("OnNeedsFlush calls = %d, want 1", calls)
	}
}

func TestLoop_PostAndRunPosted(t *testing.T) {
	loop := NewLoop()
	var got []string
	done := make(chan struct{})
	go func() {
		loop.Post(func() {
			got = append(got, "posted")
			loop.Enqueue(func() { got = append(got, "microtask") })
		})
		close(done)
	}()
	<-done

	if n := loop.RunPosted(); n != 1 {
		t.Fatalf("RunPosted = %d, want 1", n)
	}
	if !reflect.DeepEqual(got, []string{"posted", "microtask"}) {
		t.Errorf("got %v", got)
	}
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{})
	loop.Post(func() {
		close(ran)
		cancel()
	})

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	select {
	case err := <-errc:
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	select {
	case <-ran:
	default:
		t.Error("posted task did not run")
	}
}

func TestUpdate_Resolution(t *testing.T) {
	u := newUpdate()
	if u.Resolved() || u.Err() != nil {
		t.Fatal("new update should be pending")
	}
	boom := stderrors.New("boom")
	u.resolve(boom)
	u.resolve(nil)
	if !u.Resolved() || u.Err() != boom {
		t.Errorf("Err = %v, want first resolution", u.Err())
	}
	select {
	case <-u.Done():
	default:
		t.Error("Done should be closed")
	}

	loop := NewLoop()
	if err := loop.Await(newUpdate()); !stderrors.Is(err, ErrPending) {
		t.Errorf("Await on a never-scheduled update = %v, want ErrPending", err)
	}
}
