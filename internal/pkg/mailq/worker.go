package mailq

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tixgo/tixgo/internal/pkg/mail"
)

// Worker drains a Queue and delivers messages with a mail sender.
//
// Delivery failures are logged and the message is discarded; there is no
// retry. The worker only stops when its context is canceled.
type Worker struct {
	queue  *Queue
	sender mail.Mail
}

// NewWorker returns a worker reading from queue and sending via sender.
func NewWorker(queue *Queue, sender mail.Mail) *Worker {
	return &Worker{queue: queue, sender: sender}
}

// Run processes messages until ctx is canceled. It returns nil on a clean
// shutdown so callers treat cancellation as expected.
func (w *Worker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "mail worker started", "capacity", cap(w.queue.ch))

	for {
		msg, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.InfoContext(ctx, "mail worker stopping")
				return nil
			}
			return err
		}

		if err := w.sender.Send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "mail worker failed to send email",
				"to", msg.To,
				"subject", msg.Subject,
				"error", err,
			)
		}
	}
}
