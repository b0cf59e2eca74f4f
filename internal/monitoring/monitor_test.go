package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/models"
	"comanda/internal/store"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_Increment(t *testing.T) {
	m := NewMonitor()

	m.Increment("orders_created")
	m.Increment("orders_created")

	value, exists := m.GetMetric("orders_created")
	if !exists {
		t.Fatalf("Expected 'orders_created' to be present in metrics, but it was not")
	}
	if value != 2 {
		t.Errorf("Expected 'orders_created' to be 2, but got %v", value)
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	_, exists := m.GetMetric("test_metric")
	if exists {
		t.Errorf("Expected metrics to be empty after reset")
	}
}

func TestCollectorObservesStoreEvents(t *testing.T) {
	bus := store.NewBus()
	orders := store.NewOrders(bus)
	categories := store.NewCategories(bus)

	metrics := NewMetrics()
	monitor := NewMonitor()
	collector := NewCollector(metrics, monitor, bus, categories)
	collector.Start()
	defer collector.Stop()

	order := orders.Add(models.Order{Type: models.OrderTypeTable})
	require.NoError(t, orders.SetDelivered(order.ID))
	categories.Add("Postres", true, 0)

	require.Eventually(t, func() bool {
		created, _ := monitor.GetMetric("orders_created")
		transitions, _ := monitor.GetMetric("orders_transitions")
		return created == 1 && transitions == 1
	}, time.Second, 5*time.Millisecond)
}

func TestMetricsHandlerServesRegistry(t *testing.T) {
	m := NewMetrics()
	assert.NotNil(t, m.Handler())
}
