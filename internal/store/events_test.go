package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/models"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(4)
	defer cancel()

	bus.Publish(Event{Store: StoreOrders, Action: ActionAdded, ID: "123456"})

	got := <-ch
	assert.Equal(t, StoreOrders, got.Store)
	assert.Equal(t, ActionAdded, got.Action)
	assert.Equal(t, "123456", got.ID)
}

func TestBusPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)
	defer cancel()

	// Fill the buffer, then publish more without anyone draining. The extra
	// events are dropped, not queued, and Publish returns immediately.
	for i := 0; i < 10; i++ {
		bus.Publish(Event{Store: StoreOrders, Action: ActionAdded})
	}

	assert.Len(t, ch, 1)
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is safe, and publishing after cancel reaches no one.
	cancel()
	bus.Publish(Event{Store: StoreOrders, Action: ActionAdded})
}

func TestStoresPublishMutationEvents(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(16)
	defer cancel()

	orders := NewOrders(bus)
	order := orders.Add(models.Order{Type: models.OrderTypeTable})
	require.NoError(t, orders.SetDelivered(order.ID))

	added := <-ch
	assert.Equal(t, ActionAdded, added.Action)
	assert.Equal(t, order.ID, added.ID)
	assert.Equal(t, string(models.OrderStatusInPreparation), added.Status)

	changed := <-ch
	assert.Equal(t, ActionStatusChanged, changed.Action)
	assert.Equal(t, string(models.OrderStatusDelivered), changed.Status)
}
