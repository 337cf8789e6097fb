package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// MaxOTPAttempts is how many wrong OTPs are tolerated before the OTP is
// invalidated and the caller is rate-limited.
const MaxOTPAttempts = 5

// OTPStatus is the outcome of checking a submitted OTP.
type OTPStatus int

const (
	OTPValid OTPStatus = iota
	OTPExpired
	OTPRateLimited
	OTPMismatch
)

// CheckOTP evaluates a submitted code against the stored digest state.
// Expiry is checked first, then the attempt budget: once MaxOTPAttempts
// wrong codes have been counted, the next submission is rate-limited even
// if it carries the right code.
func CheckOTP(storedHash string, expiry time.Time, attempts int, candidate string, now time.Time) OTPStatus {
	if now.After(expiry) {
		return OTPExpired
	}
	if attempts >= MaxOTPAttempts {
		return OTPRateLimited
	}
	if HashOTP(candidate) != storedHash {
		return OTPMismatch
	}
	return OTPValid
}

// GenerateOTP returns a random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashOTP digests an OTP for at-rest storage; the plaintext only travels in
// the email.
func HashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}
