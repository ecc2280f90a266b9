package stats

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rasmushax/eridehero/internal/events"
)

// Refresher periodically recomputes population statistics and invalidates
// snapshots when products change.
type Refresher struct {
	service  *Service
	interval time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewRefresher(service *Service, interval time.Duration) *Refresher {
	return &Refresher{
		service:  service,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	// First pass up front so lookups do not all pay the cold-start cost.
	if err := r.service.RefreshAll(ctx); err != nil {
		r.service.logger.Warn("initial stats refresh failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.service.RefreshAll(ctx); err != nil {
				r.service.logger.Warn("stats refresh failed", "error", err)
			}
		}
	}
}

// SetupSubscriptions wires product-update events to snapshot invalidation.
// No-op without an event bus.
func (r *Refresher) SetupSubscriptions() {
	if r.service.bus == nil {
		return
	}
	err := r.service.bus.Subscribe(events.SubjectProductUpdated, func(subject string, data []byte) {
		var ev events.ProductUpdatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			r.service.logger.Warn("bad product update event", "subject", subject, "error", err)
			return
		}
		if ev.Category != "" {
			r.service.Invalidate(ev.Category)
		}
	})
	if err != nil {
		r.service.logger.Warn("failed to subscribe to product updates", "error", err)
	}
}
