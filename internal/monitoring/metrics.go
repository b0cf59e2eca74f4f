package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"comanda/internal/store"
)

// Metrics holds the prometheus collectors exposed on the metrics port.
type Metrics struct {
	registry *prometheus.Registry

	OrdersCreated     prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	ActiveCategories  prometheus.Gauge
	WSClients         prometheus.Gauge
	SettingsSaves     prometheus.Counter
}

// NewMetrics creates and registers the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comanda_orders_created_total",
			Help: "Orders added to the board",
		}),
		StatusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "comanda_order_status_transitions_total",
				Help: "Order status transitions by target status",
			},
			[]string{"status"},
		),
		ActiveCategories: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "comanda_categories_active",
			Help: "Active (non-deleted) categories",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "comanda_ws_clients",
			Help: "Connected WebSocket clients",
		}),
		SettingsSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comanda_settings_saves_total",
			Help: "Settings blob saves",
		}),
	}

	registry.MustRegister(
		m.OrdersCreated,
		m.StatusTransitions,
		m.ActiveCategories,
		m.WSClients,
		m.SettingsSaves,
	)
	return m
}

// Handler returns the scrape handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Collector feeds the prometheus metrics and the dashboard monitor from the
// store event stream.
type Collector struct {
	metrics    *Metrics
	monitor    *Monitor
	bus        *store.Bus
	categories *store.Categories

	cancel func()
	done   chan struct{}
}

// NewCollector creates a stopped collector.
func NewCollector(metrics *Metrics, monitor *Monitor, bus *store.Bus, categories *store.Categories) *Collector {
	return &Collector{
		metrics:    metrics,
		monitor:    monitor,
		bus:        bus,
		categories: categories,
	}
}

// Start subscribes to the bus and consumes events until Stop.
func (c *Collector) Start() {
	events, cancel := c.bus.Subscribe(128)
	c.cancel = cancel
	c.done = make(chan struct{})

	c.metrics.ActiveCategories.Set(float64(len(c.categories.Active())))

	go func() {
		defer close(c.done)
		for e := range events {
			c.observe(e)
		}
	}()
}

// Stop unsubscribes and waits for the consume loop to drain.
func (c *Collector) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
}

func (c *Collector) observe(e store.Event) {
	switch e.Store {
	case store.StoreOrders:
		switch e.Action {
		case store.ActionAdded:
			c.metrics.OrdersCreated.Inc()
			c.monitor.Increment("orders_created")
		case store.ActionStatusChanged:
			c.metrics.StatusTransitions.WithLabelValues(e.Status).Inc()
			c.monitor.Increment("orders_transitions")
		}
	case store.StoreCategories:
		c.metrics.ActiveCategories.Set(float64(len(c.categories.Active())))
	case store.StoreSettings:
		if e.Action == store.ActionSaved {
			c.metrics.SettingsSaves.Inc()
			c.monitor.Increment("settings_saves")
		}
	}
}
