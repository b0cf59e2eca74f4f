package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"comanda/internal/api"
	"comanda/internal/config"
	"comanda/internal/localstore"
	"comanda/internal/monitoring"
	"comanda/internal/store"
	"comanda/internal/track"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	local, err := localstore.Open(cfg.Storage.Path, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open local store")
	}
	defer local.Close()

	// Wire the stores. Everything is in-memory and re-seeds on restart,
	// the way the original re-seeded on page reload; only the local store
	// survives the process.
	bus := store.NewBus()
	orders := store.NewOrders(bus)
	categories := store.NewCategories(bus)
	products := store.NewProducts(bus)
	menus := store.NewMenus(bus, products)
	session := store.NewSession(bus, local, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Std())
	if cfg.Workflow.Seed {
		store.Seed(categories, products, menus)
	}

	tracker := track.New(orders, bus, cfg.Workflow.ElapsedInterval.Std(), log)
	tracker.Start()
	defer tracker.Stop()

	monitor := monitoring.NewMonitor()
	metrics := monitoring.NewMetrics()
	collector := monitoring.NewCollector(metrics, monitor, bus, categories)
	collector.Start()
	defer collector.Stop()

	server := api.New(cfg, log, api.Deps{
		Bus:        bus,
		Orders:     orders,
		Categories: categories,
		Products:   products,
		Menus:      menus,
		Session:    session,
		Settings:   local,
		Tracker:    tracker,
		Monitor:    monitor,
		Metrics:    metrics,
	})
	server.Hub().Run()
	defer server.Hub().Stop()

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg, metrics, log)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("API server shutdown error")
		}
	}()

	log.WithField("port", cfg.Server.Port).Info("Starting API server")
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Fatal("API server error")
	}
}

func startMetricsServer(cfg *config.Config, metrics *monitoring.Metrics, log *logrus.Logger) {
	metricsRouter := gin.Default()
	metricsRouter.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: metricsRouter,
	}

	log.WithField("port", cfg.Metrics.Port).Info("Starting metrics server")
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Error("Metrics server error")
	}
}
