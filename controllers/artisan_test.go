package controllers

import (
	"net/http"
	"testing"

	"ikkat-bazaar/models"

	"github.com/stretchr/testify/assert"
)

func TestVerificationGate(t *testing.T) {
	t.Run("pending artisan is blocked with status echoed", func(t *testing.T) {
		status, body, ok := verificationGate(models.Artisan{VerificationStatus: models.VerificationPending})
		assert.False(t, ok)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, models.VerificationPending, body["verificationStatus"])
	})

	t.Run("rejected artisan is blocked with status echoed", func(t *testing.T) {
		status, body, ok := verificationGate(models.Artisan{VerificationStatus: models.VerificationRejected})
		assert.False(t, ok)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, models.VerificationRejected, body["verificationStatus"])
	})

	t.Run("verified artisan passes", func(t *testing.T) {
		_, body, ok := verificationGate(models.Artisan{VerificationStatus: models.VerificationVerified})
		assert.True(t, ok)
		assert.Nil(t, body)
	})
}
