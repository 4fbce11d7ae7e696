package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsJob(t *testing.T) {
	p := New(1)
	defer p.Close()

	done := make(chan struct{})
	if !p.Submit(context.Background(), func(context.Context) { close(done) }) {
		t.Fatal("submit dropped with an idle worker")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job never ran")
	}
}

func TestSubmitAcceptedImmediatelyAfterNew(t *testing.T) {
	// Admission must not depend on the worker goroutine having been
	// scheduled yet.
	for i := 0; i < 100; i++ {
		p := New(1)
		done := make(chan struct{})
		if !p.Submit(context.Background(), func(context.Context) { close(done) }) {
			t.Fatalf("iteration %d: submit dropped on a brand new pool", i)
		}
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("accepted job never ran")
		}
		p.Close()
	}
}

func TestPoolDropsWhenBusy(t *testing.T) {
	p := New(1)
	defer p.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	if !p.Submit(context.Background(), func(context.Context) {
		close(started)
		<-release
	}) {
		t.Fatal("first submit dropped")
	}
	<-started

	var ran atomic.Bool
	if p.Submit(context.Background(), func(context.Context) { ran.Store(true) }) {
		t.Error("second submit accepted while the only worker is busy")
	}
	close(release)
	time.Sleep(20 * time.Millisecond)
	if ran.Load() {
		t.Error("dropped job ran anyway")
	}
}

func TestPoolRecoversFromPanic(t *testing.T) {
	p := New(1)
	defer p.Close()

	if !p.Submit(context.Background(), func(context.Context) { panic("job blew up") }) {
		t.Fatal("first submit dropped")
	}

	// The slot frees once the panicked job has been recovered; wait for it.
	done := make(chan struct{})
	deadline := time.After(time.Second)
	for !p.Submit(context.Background(), func(context.Context) { close(done) }) {
		select {
		case <-deadline:
			t.Fatal("pool dead after job panic")
		case <-time.After(time.Millisecond):
		}
	}
	<-done
}
