package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"comanda/internal/models"
	"comanda/internal/store"
)

type orderItemPayload struct {
	ID    string          `json:"id" binding:"required"`
	Name  string          `json:"name"`
	Qty   int             `json:"qty" binding:"required,gt=0"`
	Price decimal.Decimal `json:"price"`
}

type createOrderPayload struct {
	Customer string             `json:"customer"`
	Type     string             `json:"type" binding:"required,ordertype"`
	Table    int                `json:"table" binding:"omitempty,gt=0"`
	Items    []orderItemPayload `json:"items" binding:"required,min=1,dive"`
}

type replaceItemsPayload struct {
	Items []orderItemPayload `json:"items" binding:"required,dive"`
}

func toOrderItems(payload []orderItemPayload) []models.OrderItem {
	items := make([]models.OrderItem, len(payload))
	for i, p := range payload {
		items[i] = models.OrderItem{ProductID: p.ID, Name: p.Name, Qty: p.Qty, Price: p.Price}
	}
	return items
}

// ListOrders returns every order of the session, most recent first.
func (s *Server) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Orders.List())
}

// CreateOrder takes a new order from the order form. Total, id, status and
// timestamp are filled by the store.
func (s *Server) CreateOrder(c *gin.Context) {
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := s.deps.Orders.Add(models.Order{
		Customer: payload.Customer,
		Type:     models.OrderType(payload.Type),
		Table:    payload.Table,
		Items:    toOrderItems(payload.Items),
	})

	s.log.WithFields(logrus.Fields{
		"order": order.ID,
		"total": order.Total.String(),
	}).Info("order created")
	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order by id.
func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.deps.Orders.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// ReplaceOrderItems swaps the order's item list and recomputes the total.
func (s *Server) ReplaceOrderItems(c *gin.Context) {
	var payload replaceItemsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.deps.Orders.ReplaceItems(id, toOrderItems(payload.Items)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	order, _ := s.deps.Orders.Get(id)
	c.JSON(http.StatusOK, order)
}

// DeliverOrder sets the order to ENTREGADO.
func (s *Server) DeliverOrder(c *gin.Context) {
	s.transition(c, s.deps.Orders.SetDelivered)
}

// CancelOrder sets the order to CANCELADO.
func (s *Server) CancelOrder(c *gin.Context) {
	s.transition(c, s.deps.Orders.Cancel)
}

func (s *Server) transition(c *gin.Context, apply func(string) error) {
	id := c.Param("id")
	if err := apply(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	order, _ := s.deps.Orders.Get(id)
	s.log.WithFields(logrus.Fields{
		"order":  id,
		"status": order.Status,
	}).Info("order transitioned")
	c.JSON(http.StatusOK, order)
}

// MarkOrderSeen clears the "new" highlight for the order card.
func (s *Server) MarkOrderSeen(c *gin.Context) {
	s.deps.Orders.MarkSeen(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "marked seen"})
}

// GetElapsed returns the elapsed-time labels for orders in preparation.
func (s *Server) GetElapsed(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Tracker.Labels())
}
