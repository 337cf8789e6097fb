package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every credential and endpoint the server needs. It is loaded
// once in main and handed to the adapters that use it, so nothing below the
// bootstrap reads the environment directly.
type Config struct {
	Port          string
	MongoURI      string
	DatabaseName  string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	RazorpayKeyID     string
	RazorpayKeySecret string

	EmailFrom     string
	EmailPassword string

	GCSBucket string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		MongoURI:          os.Getenv("MONGODB_URI"),
		DatabaseName:      getEnv("DB_NAME", "ikkatbazaar_db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@ikkatbazaar.com"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123456"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		EmailFrom:         os.Getenv("EMAIL_USER"),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
		GCSBucket:         getEnv("GCS_BUCKET", "ikkatbazaar-media"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI not set in .env")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in .env")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
