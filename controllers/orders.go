package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	db "ikkat-bazaar/database"
	"ikkat-bazaar/models"
	"ikkat-bazaar/payment"
	"ikkat-bazaar/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateOrder resolves the cart against live product prices, snapshots the
// line items, and persists the order as placed/pending. Electronic payment
// methods get a gateway order up front; if the gateway call fails the order
// is rolled back so no unpayable order is left behind.
func CreateOrder(c *gin.Context) {
	customerID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Items []struct {
			ProductID string `json:"productId" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"required,min=1"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod" binding:"required,oneof=razorpay upi bank-transfer cod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var orderItems []models.OrderItem
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID: " + item.ProductID})
			return
		}

		product, err := models.GetProductByID(productID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product " + item.ProductID + " not found"})
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			ArtisanID: product.ArtisanID,
			Quantity:  item.Quantity,
			Price:     product.FinalPrice,
			Subtotal:  product.FinalPrice * float64(item.Quantity),
		})
	}

	totalAmount, tax, finalAmount := services.ComputeOrderTotals(orderItems)

	order, err := models.CreateOrder(models.Order{
		CustomerID:      customerID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		Tax:             tax,
		FinalAmount:     finalAmount,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.OrderPlaced,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if services.IsElectronicPayment(input.PaymentMethod) {
		notes := map[string]string{
			"orderId":    order.ID.Hex(),
			"customerId": customerID.Hex(),
		}
		gwOrder, err := gateway.CreateOrder(payment.ToPaise(order.FinalAmount), "IB-"+order.ID.Hex(), notes)
		if err != nil {
			// No recovery path for an order the gateway never saw.
			log.Printf("Gateway order creation failed, rolling back order %s: %v", order.ID.Hex(), err)
			models.DeleteOrder(order.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err = db.OrderCollection.UpdateByID(ctx, order.ID, bson.M{"$set": bson.M{
			"gatewayOrderId": gwOrder.ID,
			"paymentNotes":   notes,
			"updatedAt":      time.Now(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gateway order"})
			return
		}
		order.GatewayOrderID = gwOrder.ID
		order.PaymentNotes = notes
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created", "order": order})
}

// GetOrder returns one order to its owner or to admin.
func GetOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.CustomerID.Hex() != c.GetString("user_id") && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetMyOrders returns the authenticated customer's order history.
func GetMyOrders(c *gin.Context) {
	customerID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	orders, err := models.GetOrdersByCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetArtisanOrders returns orders containing the acting artisan's items.
func GetArtisanOrders(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	artisan, err := models.GetArtisanByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artisan profile not found"})
		return
	}

	orders, err := models.GetOrdersByArtisan(artisan.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order through the status machine; who may move
// what is decided in services.ValidateTransition.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	role := c.GetString("role")
	actorID := c.GetString("user_id")
	if role == models.RoleArtisan {
		// Line items carry the artisan document id, not the user id.
		userID, err := primitive.ObjectIDFromHex(actorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		artisan, err := models.GetArtisanByUserID(userID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Artisan profile not found"})
			return
		}
		actorID = artisan.ID.Hex()
	}

	if err := services.ValidateTransition(order, input.Status, actorID, role); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotOrderOwner) || errors.Is(err, services.ErrNoArtisanItems) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := models.UpdateOrderStatus(orderID, input.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	order, _ = models.GetOrderByID(orderID)
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// CancelOrder is the customer's dedicated cancel endpoint; only the owner
// and only from placed.
func CancelOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.CustomerID.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}
	if order.OrderStatus != models.OrderPlaced {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only placed orders can be cancelled"})
		return
	}

	if err := models.UpdateOrderStatus(orderID, models.OrderCancelled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	order, _ = models.GetOrderByID(orderID)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
}

// CreatePayment returns the gateway order for checkout. First call wins: an
// order that already carries a gatewayOrderId is returned as-is without a
// second gateway round trip.
func CreatePayment(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	if !services.NeedsGatewayOrder(order) {
		c.JSON(http.StatusOK, gin.H{
			"message":         "Payment order created",
			"razorpayOrderId": order.GatewayOrderID,
			"amount":          order.FinalAmount,
			"orderId":         order.ID.Hex(),
		})
		return
	}

	notes := map[string]string{
		"orderId":    order.ID.Hex(),
		"customerId": order.CustomerID.Hex(),
	}
	gwOrder, err := gateway.CreateOrder(payment.ToPaise(order.FinalAmount), "IB-"+order.ID.Hex(), notes)
	if err != nil {
		log.Printf("Gateway order creation failed for order %s: %v", order.ID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.OrderCollection.UpdateByID(ctx, order.ID, bson.M{"$set": bson.M{
		"gatewayOrderId": gwOrder.ID,
		"paymentNotes":   notes,
		"updatedAt":      time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gateway order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Payment order created",
		"razorpayOrderId": gwOrder.ID,
		"amount":          order.FinalAmount,
		"orderId":         order.ID.Hex(),
	})
}

// VerifyPayment checks the gateway callback signature. On success the order
// is marked paid and confirmed in one document update; a mismatch changes
// nothing and reports a generic failure.
func VerifyPayment(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var input struct {
		RazorpayOrderID   string `json:"razorpayOrderId" binding:"required"`
		RazorpayPaymentID string `json:"razorpayPaymentId" binding:"required"`
		RazorpaySignature string `json:"razorpaySignature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	// The signature must be for this order's own gateway order; a valid
	// signature replayed from another order proves nothing here.
	if !services.PaymentMatchesOrder(order, input.RazorpayOrderID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		return
	}

	if !gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.OrderCollection.UpdateByID(ctx, order.ID, bson.M{"$set": bson.M{
		"paymentId":     input.RazorpayPaymentID,
		"paymentStatus": models.PaymentCompleted,
		"orderStatus":   models.OrderConfirmed,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	order, _ = models.GetOrderByID(orderID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified successfully",
		"order":   order,
		"paymentDetails": gin.H{
			"orderId": order.ID.Hex(),
			"amount":  order.FinalAmount,
			"status":  order.PaymentStatus,
		},
	})
}

// GetRazorpayKey exposes the public key id for the checkout widget.
func GetRazorpayKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"key": gateway.KeyID()})
}
