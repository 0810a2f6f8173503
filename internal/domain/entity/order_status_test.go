package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

func TestOrderStatus_TablaDeTransiciones(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		ok       bool
	}{
		{entity.OrderPending, entity.OrderProcessing, true},
		{entity.OrderPending, entity.OrderCancelled, true},
		{entity.OrderPending, entity.OrderShipped, false},
		{entity.OrderPending, entity.OrderReturned, false},
		{entity.OrderProcessing, entity.OrderShipped, true},
		{entity.OrderProcessing, entity.OrderCancelled, true},
		{entity.OrderProcessing, entity.OrderDelivered, false},
		{entity.OrderShipped, entity.OrderDelivered, true},
		{entity.OrderShipped, entity.OrderCancelled, true},
		{entity.OrderShipped, entity.OrderReturned, true},
		{entity.OrderDelivered, entity.OrderReturned, true},
		{entity.OrderDelivered, entity.OrderCancelled, false},
		{entity.OrderCancelled, entity.OrderPending, false},
		{entity.OrderReturned, entity.OrderDelivered, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatus_EstadosTerminales(t *testing.T) {
	assert.True(t, entity.OrderCancelled.IsTerminal())
	assert.True(t, entity.OrderReturned.IsTerminal())
	assert.Empty(t, entity.OrderCancelled.AllowedNext())
	assert.Empty(t, entity.OrderReturned.AllowedNext())
	assert.False(t, entity.OrderDelivered.IsTerminal())
	assert.False(t, entity.OrderStatus("archived").IsValid())
}

func TestPaymentStatusFor_SegunAbono(t *testing.T) {
	total := decimal.NewFromInt(100)
	assert.Equal(t, entity.PaymentPaid, entity.PaymentStatusFor(decimal.NewFromInt(100), total))
	assert.Equal(t, entity.PaymentPaid, entity.PaymentStatusFor(decimal.NewFromInt(120), total))
	assert.Equal(t, entity.PaymentPartial, entity.PaymentStatusFor(decimal.NewFromInt(40), total))
	assert.Equal(t, entity.PaymentUnpaid, entity.PaymentStatusFor(decimal.Zero, total))
}
