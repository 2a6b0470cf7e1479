package email

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrDispatcherClosed = errors.New("email dispatcher closed")

const (
	defaultWorkers     = 2
	defaultQueueSize   = 64
	defaultSendTimeout = 30 * time.Second
)

type job struct {
	fields logrus.Fields
	msg    Message
}

// Dispatcher screens messages synchronously and delivers them on a small
// pool of background workers. Delivery failures are logged and dropped.
type Dispatcher struct {
	sender      Sender
	queue       chan job
	group       *errgroup.Group
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

type DispatcherOption func(*Dispatcher)

// WithSendTimeout bounds how long a single delivery may hold a worker.
func WithSendTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.sendTimeout = d
		}
	}
}

// NewDispatcher starts the workers. Dispatch never waits for queue space:
// when the queue is full the message is logged and dropped.
func NewDispatcher(sender Sender, workers, queueSize int, opts ...DispatcherOption) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	d := &Dispatcher{
		sender:      sender,
		queue:       make(chan job, queueSize),
		group:       &errgroup.Group{},
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	for i := 0; i < workers; i++ {
		d.group.Go(d.work)
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) error {
	if suspicious := SuspiciousLinks(msg.HTML); len(suspicious) > 0 {
		config.WithContext(ctx).WithField("links", suspicious).Warn("Refusing to send email with suspicious links")
		return apperr.New(apperr.KindValidation, "Suspicious content detected in email body", ErrSuspiciousContent)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	j := job{msg: msg, fields: logrus.Fields{"to": msg.To, "subject": msg.Subject}}
	if entry := config.WithContext(ctx); entry.Data["request_id"] != nil {
		j.fields["request_id"] = entry.Data["request_id"]
	}

	select {
	case d.queue <- j:
	default:
		config.WithContext(ctx).WithFields(j.fields).Warn("Email queue full, dropping message")
	}
	return nil
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	_ = d.group.Wait()
}

func (d *Dispatcher) work() error {
	for j := range d.queue {
		d.deliver(j)
	}
	return nil
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(config.ContextWithFields(context.Background(), j.fields), d.sendTimeout)
	defer cancel()

	log := config.WithContext(ctx)
	if err := d.sender.Send(ctx, j.msg); err != nil {
		log.WithError(err).Error("Email delivery failed")
		return
	}
	log.Debug("Email delivered")
}
