// Package track keeps the "time since created" labels for orders still in
// preparation. The original client ran one polling timer per order card;
// here a single ticker recomputes every label and the hub pushes the result
// to whoever is rendering.
package track

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"comanda/internal/models"
	"comanda/internal/store"
)

// Tracker recomputes elapsed-time labels for EN_PREPARACION orders on a
// fixed interval. An order leaves the registry the moment its status
// changes, via the store's event stream rather than waiting for the next
// tick. Start and Stop bound the goroutine's lifetime explicitly.
type Tracker struct {
	mu       sync.RWMutex
	orders   *store.Orders
	bus      *store.Bus
	interval time.Duration
	log      *logrus.Logger

	labels map[string]string

	stop chan struct{}
	done chan struct{}
}

// New creates a stopped tracker polling orders every interval.
func New(orders *store.Orders, bus *store.Bus, interval time.Duration, log *logrus.Logger) *Tracker {
	return &Tracker{
		orders:   orders,
		bus:      bus,
		interval: interval,
		log:      log,
		labels:   make(map[string]string),
	}
}

// Start launches the tick loop. Calling Start on a running tracker is a
// no-op.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.stop != nil {
		t.mu.Unlock()
		return
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	stop, done := t.stop, t.done
	t.mu.Unlock()

	events, cancel := t.bus.Subscribe(64)
	t.refresh()

	go func() {
		defer close(done)
		defer cancel()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.refresh()
				t.bus.Publish(store.Event{Store: store.StoreOrders, Action: store.ActionElapsed})
			case e := <-events:
				if e.Store != store.StoreOrders {
					continue
				}
				switch e.Action {
				case store.ActionAdded, store.ActionStatusChanged:
					t.refresh()
				}
			case <-stop:
				return
			}
		}
	}()

	t.log.WithField("interval", t.interval.String()).Debug("elapsed tracker started")
}

// Stop tears the tick loop down and waits for it to exit.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.stop == nil {
		t.mu.Unlock()
		return
	}
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	close(stop)
	<-done
	t.log.Debug("elapsed tracker stopped")
}

// Elapsed returns how long the order has been in preparation. The second
// return is false when the order is not tracked (unknown or no longer
// EN_PREPARACION).
func (t *Tracker) Elapsed(id string) (time.Duration, bool) {
	order, err := t.orders.Get(id)
	if err != nil || order.Status != models.OrderStatusInPreparation {
		return 0, false
	}
	return time.Since(order.CreatedAt), true
}

// Labels returns a copy of the current id → elapsed-label map.
func (t *Tracker) Labels() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]string, len(t.labels))
	for k, v := range t.labels {
		out[k] = v
	}
	return out
}

// refresh rebuilds the label map from the orders still in preparation, so
// transitioned orders drop out and fresh ones appear.
func (t *Tracker) refresh() {
	pending := t.orders.InPreparation()

	labels := make(map[string]string, len(pending))
	for _, o := range pending {
		labels[o.ID] = FormatElapsed(time.Since(o.CreatedAt))
	}

	t.mu.Lock()
	t.labels = labels
	t.mu.Unlock()
}

// FormatElapsed renders a duration the way the order cards show it:
// mm:ss under an hour, h:mm:ss beyond.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
