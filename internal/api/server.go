// Package api is the HTTP/WebSocket gateway over the in-memory stores. It
// plays the role the UI event dispatch played in the original client: every
// route delegates straight to a store method and holds no state of its own,
// and store events are pushed to connected clients over the WebSocket hub.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"comanda/internal/config"
	"comanda/internal/models"
	"comanda/internal/monitoring"
	"comanda/internal/store"
	"comanda/internal/track"
)

// SettingsStore is the slice of the local store the settings screens use.
type SettingsStore interface {
	LoadSettings() (models.Settings, bool)
	SaveSettings(models.Settings)
	ClearSettings()
}

// Deps bundles the store handles the gateway delegates to. Wiring happens
// in main; nothing here reaches for globals.
type Deps struct {
	Bus        *store.Bus
	Orders     *store.Orders
	Categories *store.Categories
	Products   *store.Products
	Menus      *store.Menus
	Session    *store.Session
	Settings   SettingsStore
	Tracker    *track.Tracker
	Monitor    *monitoring.Monitor
	Metrics    *monitoring.Metrics
}

// Server owns the Gin engine and the store handles.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	log    *logrus.Logger
	deps   Deps
	hub    *Hub
}

// New creates the gateway and registers all routes.
func New(cfg *config.Config, log *logrus.Logger, deps Deps) *Server {
	registerValidators()

	s := &Server{
		router: gin.Default(),
		cfg:    cfg,
		log:    log,
		deps:   deps,
		hub:    NewHub(deps.Bus, deps.Metrics, log),
	}
	s.setupRoutes()
	return s
}

// Router returns the Gin engine, mainly for tests and the http.Server.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Hub returns the WebSocket hub so main can start and stop it.
func (s *Server) Hub() *Hub {
	return s.hub
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "comanda API is running"})
	})
	s.router.GET("/ws", s.hub.HandleWS)

	v1 := s.router.Group("/api/v1")
	{
		// Session gate
		v1.GET("/session", s.GetSession)
		v1.POST("/session/sign-in", s.SignIn)
		v1.POST("/session/sign-out", s.SignOut)

		guarded := v1.Group("", s.gate())
		{
			guarded.POST("/session/tenant", s.SelectTenant)

			// Orders workflow
			guarded.GET("/orders", s.ListOrders)
			guarded.POST("/orders", s.CreateOrder)
			guarded.GET("/orders/:id", s.GetOrder)
			guarded.PUT("/orders/:id/items", s.ReplaceOrderItems)
			guarded.POST("/orders/:id/deliver", s.DeliverOrder)
			guarded.POST("/orders/:id/cancel", s.CancelOrder)
			guarded.POST("/orders/:id/seen", s.MarkOrderSeen)
			guarded.GET("/elapsed", s.GetElapsed)

			// Catalog
			guarded.GET("/categories", s.ListCategories)
			guarded.POST("/categories", s.CreateCategory)
			guarded.PUT("/categories", s.ReorderCategories)
			guarded.PUT("/categories/:id", s.UpdateCategory)
			guarded.DELETE("/categories/:id", s.RemoveCategory)
			guarded.POST("/categories/:id/restore", s.RestoreCategory)
			guarded.POST("/categories/:id/move-up", s.MoveCategoryUp)
			guarded.POST("/categories/:id/move-down", s.MoveCategoryDown)

			guarded.GET("/products", s.ListProducts)
			guarded.POST("/products", s.CreateProduct)
			guarded.GET("/products/:id", s.GetProduct)
			guarded.PUT("/products/:id", s.UpdateProduct)
			guarded.DELETE("/products/:id", s.RemoveProduct)

			guarded.GET("/menus", s.ListMenus)
			guarded.POST("/menus", s.CreateMenu)
			guarded.GET("/menus/:id", s.GetMenu)
			guarded.PUT("/menus/:id", s.UpdateMenu)
			guarded.DELETE("/menus/:id", s.RemoveMenu)

			// Shell
			guarded.GET("/nav", s.GetNav)
			guarded.GET("/settings", s.GetSettings)
			guarded.PUT("/settings", s.SaveSettings)
			guarded.DELETE("/settings", s.ClearSettings)
			guarded.GET("/monitor", s.GetMonitor)
		}
	}
}

// gate rejects requests until someone has signed in. The token check is a
// placeholder parse, not a security boundary; the session is still just a
// boolean flag behind it.
func (s *Server) gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.deps.Session.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in first"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || !s.deps.Session.ValidToken(token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// registerValidators adds the enum checks the request payloads use.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("ordertype", func(fl validator.FieldLevel) bool {
		switch models.OrderType(fl.Field().String()) {
		case models.OrderTypeTable, models.OrderTypeTakeaway:
			return true
		}
		return false
	})
}
