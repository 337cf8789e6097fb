package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// ToPaise converts a rupee amount to the gateway's integer paise unit.
// Rounded, not truncated: 2.26 in binary floating point is fractionally
// below 226 paise and plain conversion would charge one paisa short.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Gateway wraps the Razorpay client. Keys are injected at construction; the
// secret never leaves this package.
type Gateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// GatewayOrder is the subset of the gateway response the app cares about.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

func NewGateway(keyID, keySecret string) *Gateway {
	return &Gateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// KeyID returns the public key the frontend needs for checkout.
func (g *Gateway) KeyID() string {
	return g.keyID
}

// CreateOrder creates a gateway-side order for the given amount in paise.
func (g *Gateway) CreateOrder(amountPaise int64, receipt string, notes map[string]string) (GatewayOrder, error) {
	noteData := map[string]interface{}{}
	for k, v := range notes {
		noteData[k] = v
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
		"notes":    noteData,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return GatewayOrder{}, err
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return GatewayOrder{}, fmt.Errorf("gateway returned no order id")
	}

	return GatewayOrder{ID: id, Amount: amountPaise, Currency: "INR"}, nil
}

// VerifySignature checks the callback signature: HMAC-SHA256 over
// "<gatewayOrderID>|<paymentID>" keyed with the secret, compared in
// constant time. A mismatch is a normal false, not an error.
func (g *Gateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
