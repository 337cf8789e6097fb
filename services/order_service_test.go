package services

import (
	"testing"

	"ikkat-bazaar/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeOrderTotals(t *testing.T) {
	items := []models.OrderItem{
		{Price: 250, Quantity: 2, Subtotal: 500},
	}
	total, tax, final := ComputeOrderTotals(items)
	assert.Equal(t, 500.0, total)
	assert.Equal(t, 90.0, tax) // round(500 * 0.18)
	assert.Equal(t, 590.0, final)
}

func TestComputeOrderTotalsMultipleItems(t *testing.T) {
	items := []models.OrderItem{
		{Price: 199.5, Quantity: 1, Subtotal: 199.5},
		{Price: 120, Quantity: 3, Subtotal: 360},
	}
	total, tax, final := ComputeOrderTotals(items)
	assert.InDelta(t, 559.5, total, 0.001)
	assert.Equal(t, 101.0, tax) // round(559.5 * 0.18) = round(100.71)
	assert.InDelta(t, 660.5, final, 0.001)
}

func TestComputeOrderTotalsEmpty(t *testing.T) {
	total, tax, final := ComputeOrderTotals(nil)
	assert.Zero(t, total)
	assert.Zero(t, tax)
	assert.Zero(t, final)
}

func testOrder(status string, customer, artisan primitive.ObjectID) models.Order {
	return models.Order{
		ID:          primitive.NewObjectID(),
		CustomerID:  customer,
		OrderStatus: status,
		Items: []models.OrderItem{
			{ProductID: primitive.NewObjectID(), ArtisanID: artisan, Quantity: 1, Price: 100, Subtotal: 100},
		},
	}
}

func TestValidateTransitionCustomer(t *testing.T) {
	customer := primitive.NewObjectID()
	artisan := primitive.NewObjectID()

	t.Run("owner cancels placed order", func(t *testing.T) {
		order := testOrder(models.OrderPlaced, customer, artisan)
		err := ValidateTransition(order, models.OrderCancelled, customer.Hex(), models.RoleCustomer)
		assert.NoError(t, err)
	})

	t.Run("owner cannot cancel shipped order", func(t *testing.T) {
		order := testOrder(models.OrderShipped, customer, artisan)
		err := ValidateTransition(order, models.OrderCancelled, customer.Hex(), models.RoleCustomer)
		assert.ErrorIs(t, err, ErrCancelOnlyPlaced)
	})

	t.Run("owner cannot advance status", func(t *testing.T) {
		order := testOrder(models.OrderPlaced, customer, artisan)
		err := ValidateTransition(order, models.OrderConfirmed, customer.Hex(), models.RoleCustomer)
		assert.ErrorIs(t, err, ErrCustomerCancelOnly)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		order := testOrder(models.OrderPlaced, customer, artisan)
		err := ValidateTransition(order, models.OrderCancelled, primitive.NewObjectID().Hex(), models.RoleCustomer)
		assert.ErrorIs(t, err, ErrNotOrderOwner)
	})
}

func TestValidateTransitionArtisan(t *testing.T) {
	customer := primitive.NewObjectID()
	artisan := primitive.NewObjectID()

	t.Run("artisan advances own order", func(t *testing.T) {
		order := testOrder(models.OrderConfirmed, customer, artisan)
		err := ValidateTransition(order, models.OrderShipped, artisan.Hex(), models.RoleArtisan)
		assert.NoError(t, err)
	})

	t.Run("artisan cannot move status backwards", func(t *testing.T) {
		order := testOrder(models.OrderShipped, customer, artisan)
		err := ValidateTransition(order, models.OrderConfirmed, artisan.Hex(), models.RoleArtisan)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("artisan may cancel", func(t *testing.T) {
		order := testOrder(models.OrderConfirmed, customer, artisan)
		err := ValidateTransition(order, models.OrderCancelled, artisan.Hex(), models.RoleArtisan)
		assert.NoError(t, err)
	})

	t.Run("artisan without items in the order", func(t *testing.T) {
		order := testOrder(models.OrderConfirmed, customer, artisan)
		err := ValidateTransition(order, models.OrderShipped, primitive.NewObjectID().Hex(), models.RoleArtisan)
		assert.ErrorIs(t, err, ErrNoArtisanItems)
	})
}

func TestValidateTransitionAdmin(t *testing.T) {
	customer := primitive.NewObjectID()
	artisan := primitive.NewObjectID()

	t.Run("admin advances any order", func(t *testing.T) {
		order := testOrder(models.OrderPlaced, customer, artisan)
		err := ValidateTransition(order, models.OrderShipped, "admin-system", models.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("unknown target status", func(t *testing.T) {
		order := testOrder(models.OrderPlaced, customer, artisan)
		err := ValidateTransition(order, "lost", "admin-system", models.RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestValidateTransitionTerminalStates(t *testing.T) {
	customer := primitive.NewObjectID()
	artisan := primitive.NewObjectID()

	for _, terminal := range []string{models.OrderDelivered, models.OrderCancelled} {
		order := testOrder(terminal, customer, artisan)

		err := ValidateTransition(order, models.OrderShipped, "admin-system", models.RoleAdmin)
		assert.ErrorIs(t, err, ErrTerminalOrder, "admin out of %s", terminal)

		err = ValidateTransition(order, models.OrderCancelled, customer.Hex(), models.RoleCustomer)
		assert.ErrorIs(t, err, ErrTerminalOrder, "customer out of %s", terminal)

		err = ValidateTransition(order, models.OrderDelivered, artisan.Hex(), models.RoleArtisan)
		assert.ErrorIs(t, err, ErrTerminalOrder, "artisan out of %s", terminal)
	}
}

func TestNeedsGatewayOrder(t *testing.T) {
	order := models.Order{ID: primitive.NewObjectID()}
	assert.True(t, NeedsGatewayOrder(order))

	// A second payment-create call must reuse the existing gateway order.
	order.GatewayOrderID = "order_MkWq3x1"
	assert.False(t, NeedsGatewayOrder(order))
}

func TestPaymentMatchesOrder(t *testing.T) {
	order := models.Order{ID: primitive.NewObjectID(), GatewayOrderID: "order_MkWq3x1"}

	assert.True(t, PaymentMatchesOrder(order, "order_MkWq3x1"))
	assert.False(t, PaymentMatchesOrder(order, "order_OtherOrd"))

	// An order that never got a gateway order matches nothing.
	assert.False(t, PaymentMatchesOrder(models.Order{}, ""))
	assert.False(t, PaymentMatchesOrder(models.Order{}, "order_MkWq3x1"))
}

func TestIsElectronicPayment(t *testing.T) {
	assert.True(t, IsElectronicPayment(models.MethodRazorpay))
	assert.True(t, IsElectronicPayment(models.MethodUPI))
	assert.False(t, IsElectronicPayment(models.MethodCOD))
	assert.False(t, IsElectronicPayment(models.MethodBankTransfer))
}
