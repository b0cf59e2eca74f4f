package track

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/models"
	"comanda/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, *store.Orders) {
	t.Helper()
	bus := store.NewBus()
	orders := store.NewOrders(bus)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	tracker := New(orders, bus, 10*time.Millisecond, log)
	t.Cleanup(tracker.Stop)
	return tracker, orders
}

func TestTrackerLabelsPendingOrders(t *testing.T) {
	tracker, orders := newTestTracker(t)
	order := orders.Add(models.Order{Type: models.OrderTypeTable, Table: 2})

	tracker.Start()

	require.Eventually(t, func() bool {
		_, ok := tracker.Labels()[order.ID]
		return ok
	}, time.Second, 5*time.Millisecond)

	elapsed, ok := tracker.Elapsed(order.ID)
	require.True(t, ok)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
}

func TestTrackerDropsDeliveredOrders(t *testing.T) {
	tracker, orders := newTestTracker(t)
	order := orders.Add(models.Order{Type: models.OrderTypeTakeaway})

	tracker.Start()
	require.Eventually(t, func() bool {
		_, ok := tracker.Labels()[order.ID]
		return ok
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, orders.SetDelivered(order.ID))

	require.Eventually(t, func() bool {
		_, ok := tracker.Labels()[order.ID]
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, ok := tracker.Elapsed(order.ID)
	assert.False(t, ok)
}

func TestTrackerPicksUpOrdersAddedAfterStart(t *testing.T) {
	tracker, orders := newTestTracker(t)
	tracker.Start()

	order := orders.Add(models.Order{Type: models.OrderTypeTable})

	require.Eventually(t, func() bool {
		_, ok := tracker.Labels()[order.ID]
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestTrackerStartStopAreIdempotent(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.Start()
	tracker.Start()
	tracker.Stop()
	tracker.Stop()
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{42 * time.Second, "00:42"},
		{4*time.Minute + 13*time.Second, "04:13"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.d))
	}
}
