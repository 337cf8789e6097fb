package models

import (
	"context"
	"time"

	db "ikkat-bazaar/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Order statuses. delivered and cancelled are terminal.
const (
	OrderPlaced    = "placed"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

const (
	MethodRazorpay     = "razorpay"
	MethodUPI          = "upi"
	MethodBankTransfer = "bank-transfer"
	MethodCOD          = "cod"
)

// OrderItem is a snapshot of a product at order time; it is never re-linked
// to the live product price.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	ArtisanID primitive.ObjectID `json:"artisanId" bson:"artisanId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
	Subtotal  float64            `json:"subtotal" bson:"subtotal"`
}

type ShippingAddress struct {
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerID      primitive.ObjectID `json:"customerId" bson:"customerId"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"totalAmount" bson:"totalAmount"`
	Tax             float64            `json:"tax" bson:"tax"`
	FinalAmount     float64            `json:"finalAmount" bson:"finalAmount"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus   string             `json:"paymentStatus" bson:"paymentStatus"`
	PaymentID       string             `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	GatewayOrderID  string             `json:"gatewayOrderId,omitempty" bson:"gatewayOrderId,omitempty"`
	PaymentNotes    map[string]string  `json:"paymentNotes,omitempty" bson:"paymentNotes,omitempty"`
	OrderStatus     string             `json:"orderStatus" bson:"orderStatus"`
	TrackingNumber  string             `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func CreateOrder(order Order) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	_, err := db.OrderCollection.InsertOne(ctx, order)
	return order, err
}

func GetOrderByID(orderID primitive.ObjectID) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	return order, err
}

func GetOrdersByCustomer(customerID primitive.ObjectID) ([]Order, error) {
	return findOrders(bson.M{"customerId": customerID})
}

// GetOrdersByArtisan returns orders containing at least one of the artisan's
// line items.
func GetOrdersByArtisan(artisanID primitive.ObjectID) ([]Order, error) {
	return findOrders(bson.M{"items.artisanId": artisanID})
}

func findOrders(filter bson.M) ([]Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets orderStatus and stamps updatedAt.
func UpdateOrderStatus(orderID primitive.ObjectID, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OrderCollection.UpdateByID(ctx, orderID, bson.M{
		"$set": bson.M{"orderStatus": status, "updatedAt": time.Now()},
	})
	return err
}

// DeleteOrder removes an order; used to roll back when gateway order
// creation fails right after the insert.
func DeleteOrder(orderID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OrderCollection.DeleteOne(ctx, bson.M{"_id": orderID})
	return err
}
