package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/models"
)

func newTestOrders() *Orders {
	return NewOrders(NewBus())
}

func TestOrdersAddComputesTotalAndDefaults(t *testing.T) {
	s := newTestOrders()

	order := s.Add(models.Order{
		Type:  models.OrderTypeTable,
		Table: 4,
		Items: []models.OrderItem{
			{ProductID: "bife", Name: "Bife de chorizo", Qty: 2, Price: decimal.NewFromInt(55)},
		},
	})

	assert.True(t, order.Total.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, models.OrderStatusInPreparation, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Len(t, order.ID, 6)

	// Most recent first.
	second := s.Add(models.Order{Type: models.OrderTypeTakeaway})
	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, order.ID, list[1].ID)
}

func TestOrdersGeneratedIDsAreSixDigitAndUnique(t *testing.T) {
	s := newTestOrders()

	ids := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		order := s.Add(models.Order{Type: models.OrderTypeTakeaway})
		require.Len(t, order.ID, 6)
		for _, r := range order.ID {
			require.True(t, r >= '0' && r <= '9', "id %q is not numeric", order.ID)
		}
		_, dup := ids[order.ID]
		require.False(t, dup, "duplicate id %q", order.ID)
		ids[order.ID] = struct{}{}
	}
}

func TestOrdersStatusTransitionsAreUnguarded(t *testing.T) {
	s := newTestOrders()
	order := s.Add(models.Order{Type: models.OrderTypeTable, Table: 1})

	require.NoError(t, s.SetDelivered(order.ID))
	got, err := s.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	// A delivered order can still be cancelled; nothing guards terminal states.
	require.NoError(t, s.Cancel(order.ID))
	got, err = s.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
}

func TestOrdersUnknownIDIsNoOp(t *testing.T) {
	s := newTestOrders()
	s.Add(models.Order{Type: models.OrderTypeTable})

	assert.ErrorIs(t, s.SetDelivered("000000"), ErrNotFound)
	assert.ErrorIs(t, s.Cancel("000000"), ErrNotFound)
	assert.ErrorIs(t, s.ReplaceItems("000000", nil), ErrNotFound)
	assert.Len(t, s.List(), 1)
}

func TestOrdersReplaceItemsRecomputesTotal(t *testing.T) {
	s := newTestOrders()
	order := s.Add(models.Order{
		Type:  models.OrderTypeTakeaway,
		Items: []models.OrderItem{{ProductID: "flan", Qty: 1, Price: decimal.NewFromInt(12)}},
	})

	require.NoError(t, s.ReplaceItems(order.ID, []models.OrderItem{
		{ProductID: "bife", Qty: 1, Price: decimal.NewFromInt(55)},
		{ProductID: "flan", Qty: 2, Price: decimal.NewFromInt(12)},
	}))

	got, err := s.Get(order.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(79)), "total %s", got.Total)
	assert.Len(t, got.Items, 2)
}

func TestOrdersSeenNeverReverts(t *testing.T) {
	s := newTestOrders()
	order := s.Add(models.Order{Type: models.OrderTypeTable})

	assert.True(t, s.IsNew(order.ID))
	s.MarkSeen(order.ID)
	assert.False(t, s.IsNew(order.ID))

	// Later mutations do not make the order new again.
	require.NoError(t, s.SetDelivered(order.ID))
	assert.False(t, s.IsNew(order.ID))

	// Unknown orders are never new.
	assert.False(t, s.IsNew("000000"))
}

func TestOrdersGetReturnsDeepCopy(t *testing.T) {
	s := newTestOrders()
	order := s.Add(models.Order{
		Type:  models.OrderTypeTable,
		Items: []models.OrderItem{{ProductID: "flan", Qty: 1, Price: decimal.NewFromInt(12)}},
	})

	got, err := s.Get(order.ID)
	require.NoError(t, err)
	got.Items[0].Qty = 99
	got.Status = models.OrderStatusCancelled

	fresh, err := s.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Items[0].Qty)
	assert.Equal(t, models.OrderStatusInPreparation, fresh.Status)
}

func TestOrdersInPreparationFiltersByStatus(t *testing.T) {
	s := newTestOrders()
	a := s.Add(models.Order{Type: models.OrderTypeTable})
	b := s.Add(models.Order{Type: models.OrderTypeTakeaway})
	c := s.Add(models.Order{Type: models.OrderTypeTable})

	require.NoError(t, s.SetDelivered(b.ID))

	pending := s.InPreparation()
	require.Len(t, pending, 2)
	assert.Equal(t, c.ID, pending[0].ID)
	assert.Equal(t, a.ID, pending[1].ID)
}
