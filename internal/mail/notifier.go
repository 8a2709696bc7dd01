package mail

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hsm-gustavo/account-api/internal/logging"
)

// DefaultTimeout bounds a single background delivery.
const DefaultTimeout = 30 * time.Second

var ErrNotifierClosed = errors.New("notifier closed")

// Notifier dispatches each message on its own goroutine. Notify never blocks
// on delivery and never reports its outcome to the caller.
type Notifier struct {
	sender  Sender
	log     logging.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewNotifier(sender Sender, log logging.Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		log:     log.With("component", "mail"),
		timeout: DefaultTimeout,
	}
}

// Notify submits msg for delivery. The request context only contributes its
// values; cancelling it does not abort the send.
func (n *Notifier) Notify(ctx context.Context, msg Message) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		n.log.Warn(ctx, "dropping message after shutdown", "to", msg.To, "error", ErrNotifierClosed)
		return
	}
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()

		if err := n.sender.Send(sendCtx, msg); err != nil {
			n.log.Error(sendCtx, "mail delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
		}
	}()
}

// Close stops accepting messages and waits for in-flight deliveries until
// ctx is done.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
