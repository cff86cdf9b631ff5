package provisioning

import (
	"sync"
	"time"
)

// Loop is a serial executor. Tasks run one at a time, in submission order,
// on a dedicated goroutine. The queue is unbounded so Post never blocks.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
	done    chan struct{}
}

// NewLoop creates and starts a Loop.
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
	}
}

// Post queues fn. It returns false if the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return false
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
	return true
}

// Call runs fn on the loop and waits for it to return. It returns ErrClosed
// if the loop is stopped. Call must not be used from a task running on the
// same loop.
func (l *Loop) Call(fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrClosed
	}
	<-done
	return nil
}

// AfterFunc posts fn to the loop once d has elapsed. Stopping the returned
// timer prevents the post but not a task that is already queued.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		l.Post(fn)
	})
}

// Stop refuses new tasks. Tasks already queued still run. Stop does not
// wait; use Done for that.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.cond.Broadcast()
	l.mu.Unlock()
}

// Done is closed once the loop has drained and exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
