package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		assert.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, ch := range otp {
			assert.True(t, ch >= '0' && ch <= '9')
		}
		seen[otp] = true
	}
	// 50 draws from a million values should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestHashOTP(t *testing.T) {
	h := HashOTP("123456")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashOTP("123456"))
	assert.NotEqual(t, h, HashOTP("123457"))
	assert.NotEqual(t, "123456", h)
}

func TestCheckOTP(t *testing.T) {
	now := time.Now()
	expiry := now.Add(10 * time.Minute)
	stored := HashOTP("123456")

	t.Run("correct code", func(t *testing.T) {
		assert.Equal(t, OTPValid, CheckOTP(stored, expiry, 0, "123456", now))
	})

	t.Run("wrong code", func(t *testing.T) {
		assert.Equal(t, OTPMismatch, CheckOTP(stored, expiry, 0, "654321", now))
	})

	t.Run("expired code", func(t *testing.T) {
		past := now.Add(-time.Second)
		assert.Equal(t, OTPExpired, CheckOTP(stored, past, 0, "123456", now))
	})

	t.Run("sixth attempt is rate-limited", func(t *testing.T) {
		attempts := 0
		for i := 0; i < MaxOTPAttempts; i++ {
			assert.Equal(t, OTPMismatch, CheckOTP(stored, expiry, attempts, "000000", now))
			attempts++
		}
		// Even the right code is refused once the budget is spent.
		assert.Equal(t, OTPRateLimited, CheckOTP(stored, expiry, attempts, "123456", now))
		assert.Equal(t, OTPRateLimited, CheckOTP(stored, expiry, attempts, "000000", now))
	})
}
