package services

import (
	"errors"
	"math"

	"ikkat-bazaar/models"
)

// TaxRate is 18% GST applied on the order total.
const TaxRate = 0.18

var (
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTerminalOrder      = errors.New("order is in a terminal state")
	ErrCustomerCancelOnly = errors.New("customers can only cancel orders")
	ErrCancelOnlyPlaced   = errors.New("only placed orders can be cancelled")
	ErrNotOrderOwner      = errors.New("not the owner of this order")
	ErrNoArtisanItems     = errors.New("no items of this artisan in the order")
)

// forward position of each status on the placed→delivered track.
var statusRank = map[string]int{
	models.OrderPlaced:    0,
	models.OrderConfirmed: 1,
	models.OrderShipped:   2,
	models.OrderDelivered: 3,
}

func IsValidOrderStatus(status string) bool {
	if status == models.OrderCancelled {
		return true
	}
	_, ok := statusRank[status]
	return ok
}

func IsTerminalStatus(status string) bool {
	return status == models.OrderDelivered || status == models.OrderCancelled
}

// ComputeOrderTotals sums line-item subtotals and applies rounded 18% tax.
func ComputeOrderTotals(items []models.OrderItem) (totalAmount, tax, finalAmount float64) {
	for _, item := range items {
		totalAmount += item.Subtotal
	}
	tax = math.Round(totalAmount * TaxRate)
	finalAmount = totalAmount + tax
	return totalAmount, tax, finalAmount
}

// ValidateTransition decides whether actor may move order to target.
//
// Rules: delivered and cancelled accept no further transition for any role.
// The owning customer may only cancel, and only from placed. An artisan must
// have a line item in the order and may only move status forward. Admin may
// set any non-terminal order to any status.
func ValidateTransition(order models.Order, target string, actorID string, role string) error {
	if !IsValidOrderStatus(target) {
		return ErrInvalidStatus
	}
	if IsTerminalStatus(order.OrderStatus) {
		return ErrTerminalOrder
	}

	switch role {
	case models.RoleCustomer:
		if order.CustomerID.Hex() != actorID {
			return ErrNotOrderOwner
		}
		if target != models.OrderCancelled {
			return ErrCustomerCancelOnly
		}
		if order.OrderStatus != models.OrderPlaced {
			return ErrCancelOnlyPlaced
		}
		return nil

	case models.RoleArtisan:
		if !orderContainsArtisan(order, actorID) {
			return ErrNoArtisanItems
		}
		if target == models.OrderCancelled {
			return nil
		}
		if statusRank[target] <= statusRank[order.OrderStatus] {
			return ErrInvalidTransition
		}
		return nil

	case models.RoleAdmin:
		return nil
	}

	return ErrInvalidTransition
}

func orderContainsArtisan(order models.Order, artisanID string) bool {
	for _, item := range order.Items {
		if item.ArtisanID.Hex() == artisanID {
			return true
		}
	}
	return false
}

// IsElectronicPayment reports whether the method goes through the gateway.
func IsElectronicPayment(method string) bool {
	return method == models.MethodRazorpay || method == models.MethodUPI
}

// NeedsGatewayOrder reports whether checkout still has to create a gateway
// order. An order that already carries one is reused as-is, so repeated
// payment-create calls stay idempotent.
func NeedsGatewayOrder(order models.Order) bool {
	return order.GatewayOrderID == ""
}

// PaymentMatchesOrder reports whether a callback's gateway order id belongs
// to this order. False for orders that never got a gateway order.
func PaymentMatchesOrder(order models.Order, gatewayOrderID string) bool {
	return order.GatewayOrderID != "" && gatewayOrderID == order.GatewayOrderID
}
