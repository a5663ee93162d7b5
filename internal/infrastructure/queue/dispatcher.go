package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sender performs the actual delivery of a notification.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient, so messages to one recipient arrive in order.
type Dispatcher struct {
	workers []chan domain.Notification
	sender  Sender
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Notify queues n on the worker responsible for its recipient. It blocks
// only while that worker's buffer is full.
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) error {
	select {
	case d.workers[d.shardIndex(n.Recipient)] <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.Send(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("medium", string(n.Medium)).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
