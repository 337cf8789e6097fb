package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewGateway("rzp_test_key", "test_secret")

	orderID := "order_MkWq3x1"
	paymentID := "pay_NvTr8y2"
	valid := sign("test_secret", orderID, paymentID)

	assert.True(t, g.VerifySignature(orderID, paymentID, valid))
}

func TestVerifySignatureTampered(t *testing.T) {
	g := NewGateway("rzp_test_key", "test_secret")

	orderID := "order_MkWq3x1"
	paymentID := "pay_NvTr8y2"
	valid := sign("test_secret", orderID, paymentID)

	// Flip one nibble anywhere and verification must fail.
	for i := 0; i < len(valid); i += 7 {
		tampered := []byte(valid)
		if tampered[i] == 'a' {
			tampered[i] = 'b'
		} else {
			tampered[i] = 'a'
		}
		assert.False(t, g.VerifySignature(orderID, paymentID, string(tampered)))
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	g := NewGateway("rzp_test_key", "test_secret")
	other := sign("another_secret", "order_MkWq3x1", "pay_NvTr8y2")
	assert.False(t, g.VerifySignature("order_MkWq3x1", "pay_NvTr8y2", other))
}

func TestVerifySignatureSwappedIDs(t *testing.T) {
	g := NewGateway("rzp_test_key", "test_secret")
	valid := sign("test_secret", "order_MkWq3x1", "pay_NvTr8y2")
	assert.False(t, g.VerifySignature("pay_NvTr8y2", "order_MkWq3x1", valid))
}

func TestToPaise(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		// 2.26*100 is 225.999... in binary floating point; truncation
		// would charge one paisa short.
		{2.26, 226},
		{590, 59000},
		{0.1, 10},
		{1234.56, 123456},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPaise(tt.amount), "amount=%v", tt.amount)
	}
}

func TestKeyID(t *testing.T) {
	g := NewGateway("rzp_test_key", "test_secret")
	assert.Equal(t, "rzp_test_key", g.KeyID())
}
