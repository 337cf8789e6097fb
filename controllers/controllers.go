package controllers

import (
	"time"

	"ikkat-bazaar/config"
	"ikkat-bazaar/payment"
	"ikkat-bazaar/utils"

	"github.com/golang-jwt/jwt/v4"
)

var (
	jwtSecret     []byte
	adminEmail    string
	adminPassword string

	gateway *payment.Gateway
	mailer  *utils.Mailer
)

// Init wires the shared adapters into the handler package.
func Init(cfg *config.Config, g *payment.Gateway, m *utils.Mailer) {
	jwtSecret = []byte(cfg.JWTSecret)
	adminEmail = cfg.AdminEmail
	adminPassword = cfg.AdminPassword
	gateway = g
	mailer = m
}

func generateJWT(id, role, email string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    id,
		"role":  role,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}
