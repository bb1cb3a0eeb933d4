package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{OrderPending, OrderPaid},
		{OrderPending, OrderCancelled},
		{OrderPaid, OrderShipped},
		{OrderPaid, OrderCancelled},
		{OrderShipped, OrderDelivered},
	}
	for _, c := range allowed {
		assert.True(t, CanTransition(c[0], c[1]), "%s -> %s should be allowed", c[0], c[1])
	}

	denied := [][2]string{
		{OrderPending, OrderShipped},
		{OrderPending, OrderDelivered},
		{OrderPaid, OrderPending},
		{OrderShipped, OrderCancelled},
		{OrderDelivered, OrderShipped},
		{OrderCancelled, OrderPending},
		{OrderPaid, OrderPaid}, // same-status is a conflict
	}
	for _, c := range denied {
		assert.False(t, CanTransition(c[0], c[1]), "%s -> %s should be denied", c[0], c[1])
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PayCard, PayPayPal, PayPayHere, PayCOD} {
		assert.True(t, ValidPaymentMethod(m))
	}
	assert.False(t, ValidPaymentMethod("bitcoin"))
	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("CARD"))
}
