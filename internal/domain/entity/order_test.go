package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestCartTotal(t *testing.T) {
	items := []*CartItem{
		{Price: 12.5, Quantity: 2},
		{Price: 8, Quantity: 1},
	}

	assert.InDelta(t, 33.0, CartTotal(items), 0.001)
	assert.Zero(t, CartTotal(nil))
}
