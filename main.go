package main

import (
	"log"

	"ikkat-bazaar/config"
	"ikkat-bazaar/controllers"
	db "ikkat-bazaar/database"
	"ikkat-bazaar/gcs"
	middlewares "ikkat-bazaar/middleware"
	"ikkat-bazaar/payment"
	"ikkat-bazaar/routes"
	"ikkat-bazaar/utils"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	db.InitDB(cfg.MongoURI, cfg.DatabaseName)
	defer db.DisconnectDB()

	gcs.InitGCS(cfg.GCSBucket)
	defer gcs.Close()

	gateway := payment.NewGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	mailer := utils.NewMailer(cfg.EmailFrom, cfg.EmailPassword)

	middlewares.Init(cfg.JWTSecret)
	controllers.Init(cfg, gateway, mailer)

	// Sweep stale password-reset OTPs.
	scheduler := cron.New()
	scheduler.AddFunc("@every 10m", controllers.ClearExpiredOTPs)
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
