package progress

import "sync"

// A Queue is an unbounded FIFO of events between one producer and one
// consumer. Emit only appends to a slice, so it never waits on the
// consumer. Once the consumer calls Detach, further events are dropped.
//
// A consumer reads with either Drain or C, not both.
type Queue struct {
	m        sync.Mutex // protects below
	pending  []Event
	closed   bool
	detached bool

	notify chan struct{} // 1-buffered, signalled on every change
	done   chan struct{} // closed by Detach
	once   sync.Once
	cOnce  sync.Once
	out    chan Event
}

var _ Sink = &Queue{}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Emit appends e to the queue. It is dropped if the consumer has detached
// or the queue was closed.
func (q *Queue) Emit(e Event) {
	q.m.Lock()
	if q.detached || q.closed {
		q.m.Unlock()
		return
	}
	q.pending = append(q.pending, e)
	q.m.Unlock()
	q.signal()
}

// Close marks the end of the stream. The consumer will still receive
// every event emitted before Close. Only the producer may call it.
func (q *Queue) Close() {
	q.m.Lock()
	q.closed = true
	q.m.Unlock()
	q.signal()
}

// Drain returns, without waiting, every event queued since the last call.
// open is false once the stream has been closed and these were the last
// events, or the queue was detached.
func (q *Queue) Drain() (events []Event, open bool) {
	q.m.Lock()
	defer q.m.Unlock()
	events = q.pending
	q.pending = nil
	return events, !q.closed && !q.detached
}

// C returns a channel the events are delivered on. It is closed after
// Close once all pending events have been received, or after Detach. The
// first call starts a goroutine feeding the channel.
func (q *Queue) C() <-chan Event {
	q.cOnce.Do(func() {
		q.out = make(chan Event)
		go q.pump()
	})
	return q.out
}

// Detach tells the queue that nobody is listening anymore. It is safe to call
// more than once. It does not stop the producer.
func (q *Queue) Detach() {
	q.once.Do(func() {
		q.m.Lock()
		q.detached = true
		q.pending = nil
		q.m.Unlock()
		close(q.done)
	})
}

// pump moves batches from Drain onto the out channel.
func (q *Queue) pump() {
	defer close(q.out)
	for {
		events, open := q.Drain()
		for _, e := range events {
			select {
			case q.out <- e:
			case <-q.done:
				return
			}
		}
		if !open {
			return
		}
		if len(events) == 0 {
			select {
			case <-q.notify:
			case <-q.done:
				return
			}
		}
	}
}
