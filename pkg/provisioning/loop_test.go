package provisioning

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLoopRunsInOrder(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	if err := l.Call(func() {}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if len(got) != 100 {
		t.Fatalf("ran %d tasks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestLoopCallWaits(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	ran := false
	if err := l.Call(func() {
		time.Sleep(10 * time.Millisecond)
		ran = true
	}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if !ran {
		t.Error("Call() returned before task ran")
	}
}

func TestLoopStopDrainsQueue(t *testing.T) {
	l := NewLoop()

	var mu sync.Mutex
	count := 0
	block := make(chan struct{})
	l.Post(func() { <-block })
	for i := 0; i < 10; i++ {
		l.Post(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	l.Stop()
	close(block)

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}

	if l.Post(func() {}) {
		t.Error("Post() after Stop = true, want false")
	}
	if err := l.Call(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Call() after Stop error = %v, want ErrClosed", err)
	}
}

func TestLoopAfterFunc(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	fired := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc did not fire")
	}

	stopped := l.AfterFunc(50*time.Millisecond, func() { t.Error("stopped timer fired") })
	stopped.Stop()
	time.Sleep(80 * time.Millisecond)
}

func TestPromiseSettlesOnce(t *testing.T) {
	p := NewPromise[int]()
	p.Resolve(1)
	p.Reject(errors.New("late"))
	p.Resolve(2)

	v, err := p.Wait(context.Background())
	if err != nil || v != 1 {
		t.Errorf("Wait() = %d, %v; want 1, nil", v, err)
	}
}

func TestPromiseWaitHonorsContext(t *testing.T) {
	p := NewPromise[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}
}

func TestPendingFuncs(t *testing.T) {
	var resolved int
	var rejected error
	f := PendingFuncs[int]{
		OnResolve: func(v int) { resolved = v },
		OnReject:  func(err error) { rejected = err },
	}
	f.Resolve(5)
	f.Reject(ErrTimeout)

	if resolved != 5 {
		t.Errorf("resolved = %d, want 5", resolved)
	}
	if !errors.Is(rejected, ErrTimeout) {
		t.Errorf("rejected = %v, want ErrTimeout", rejected)
	}

	// Zero value is usable.
	PendingFuncs[int]{}.Resolve(1)
}
