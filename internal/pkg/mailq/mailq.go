// Package mailq provides a bounded in-process queue for outgoing email and a
// worker that drains it.
//
// Producers (HTTP handlers) enqueue messages and return immediately while the
// worker sends them in the background. The queue blocks the producer when it
// is full, which applies backpressure instead of dropping mail.
package mailq

import (
	"context"

	"github.com/tixgo/tixgo/internal/pkg/mail"
)

// Queue is a bounded FIFO buffer of mail messages.
type Queue struct {
	ch chan mail.Message
}

// NewQueue returns a queue holding at most capacity messages.
func NewQueue(capacity int) *Queue {
	return &Queue{ch: make(chan mail.Message, capacity)}
}

// Enqueue adds msg to the queue. It blocks while the queue is full and
// returns ctx.Err() when the context ends first.
func (q *Queue) Enqueue(ctx context.Context, msg mail.Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue removes the oldest message. It blocks while the queue is empty and
// returns ctx.Err() when the context ends first.
func (q *Queue) Dequeue(ctx context.Context) (mail.Message, error) {
	select {
	case msg := <-q.ch:
		return msg, nil
	case <-ctx.Done():
		return mail.Message{}, ctx.Err()
	}
}

// Len returns the number of messages currently buffered.
func (q *Queue) Len() int {
	return len(q.ch)
}
