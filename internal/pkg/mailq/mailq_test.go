package mailq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tixgo/tixgo/internal/pkg/mail"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	errs map[string]error
	done chan struct{}
}

func newRecordingSender(expect int) *recordingSender {
	return &recordingSender{
		errs: make(map[string]error),
		done: make(chan struct{}, expect),
	}
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	err := s.errs[msg.Subject]
	s.mu.Unlock()
	s.done <- struct{}{}
	return err
}

func (s *recordingSender) Close() error {
	return nil
}

func (s *recordingSender) subjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.sent))
	for _, m := range s.sent {
		out = append(out, m.Subject)
	}
	return out
}

func waitN(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestQueue_EnqueueWithinCapacityDoesNotBlock(t *testing.T) {
	q := NewQueue(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := q.Enqueue(ctx, mail.Message{Subject: "s"}); err != nil {
			t.Fatalf("enqueue %d: unexpected error: %v", i+1, err)
		}
	}
	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
}

func TestQueue_EnqueueBlocksWhenFullUntilDrained(t *testing.T) {
	q := NewQueue(1)
	ctx := context.Background()

	if err := q.Enqueue(ctx, mail.Message{Subject: "first"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unblocked := make(chan error, 1)
	go func() {
		unblocked <- q.Enqueue(ctx, mail.Message{Subject: "second"})
	}()

	select {
	case err := <-unblocked:
		t.Fatalf("enqueue on a full queue returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := q.Dequeue(ctx); err != nil {
		t.Fatalf("dequeue: unexpected error: %v", err)
	}

	select {
	case err := <-unblocked:
		if err != nil {
			t.Fatalf("blocked enqueue failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue did not unblock after drain")
	}
}

func TestQueue_EnqueueHonorsContext(t *testing.T) {
	q := NewQueue(1)
	if err := q.Enqueue(context.Background(), mail.Message{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := q.Enqueue(ctx, mail.Message{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context.DeadlineExceeded", err)
	}
}

func TestWorker_DeliversInOrder(t *testing.T) {
	q := NewQueue(10)
	sender := newRecordingSender(3)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, s := range []string{"a", "b", "c"} {
		if err := q.Enqueue(ctx, mail.Message{To: []string{"u@example.com"}, Subject: s}); err != nil {
			t.Fatalf("enqueue: unexpected error: %v", err)
		}
	}

	werr := make(chan error, 1)
	go func() { werr <- NewWorker(q, sender).Run(ctx) }()

	waitN(t, sender.done, 3)
	cancel()
	if err := <-werr; err != nil {
		t.Fatalf("worker returned error: %v", err)
	}

	got := sender.subjects()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("sent %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWorker_SurvivesSendFailure(t *testing.T) {
	q := NewQueue(10)
	sender := newRecordingSender(2)
	sender.errs["bad"] = errors.New("smtp down")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := q.Enqueue(ctx, mail.Message{Subject: "bad"}); err != nil {
		t.Fatalf("enqueue: unexpected error: %v", err)
	}
	if err := q.Enqueue(ctx, mail.Message{Subject: "good"}); err != nil {
		t.Fatalf("enqueue: unexpected error: %v", err)
	}

	werr := make(chan error, 1)
	go func() { werr <- NewWorker(q, sender).Run(ctx) }()

	waitN(t, sender.done, 2)
	cancel()
	if err := <-werr; err != nil {
		t.Fatalf("worker returned error: %v", err)
	}

	got := sender.subjects()
	if len(got) != 2 || got[1] != "good" {
		t.Fatalf("worker did not continue past a failed send: %v", got)
	}
}
