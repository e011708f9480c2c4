package notify

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/squadhelp/internal/domain"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 100
)

//go:generate mockgen -source=notify.go -destination=notify_mock.go -package=notify
type Sink interface {
	Deliver(ctx context.Context, event domain.RatingChanged) error
}

// Notifier hands rating changes to a pool of workers that push them into a Sink.
type Notifier struct {
	events  chan domain.RatingChanged
	sink    Sink
	workers int
}

func New(sink Sink, workers, buffer int) *Notifier {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Notifier{
		events:  make(chan domain.RatingChanged, buffer),
		sink:    sink,
		workers: workers,
	}
}

// Publish never blocks. When the buffer is full the event is dropped.
func (n *Notifier) Publish(event domain.RatingChanged) {
	select {
	case n.events <- event:
	default:
		zap.L().Warn("notification buffer is full, event dropped", zap.Int("creatorID", event.CreatorID))
	}
}

// Run blocks until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) error {
	zap.L().Info("notifier started", zap.Int("workers", n.workers))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n.workers; i++ {
		g.Go(func() error {
			n.worker(ctx)
			return nil
		})
	}

	err := g.Wait()
	zap.L().Info("notifier stopped")
	return err
}

func (n *Notifier) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.events:
			if err := n.sink.Deliver(ctx, event); err != nil {
				zap.L().Error("failed to deliver rating change", zap.Int("creatorID", event.CreatorID), zap.Error(err))
			}
		}
	}
}
