package routes

import (
	"ikkat-bazaar/controllers"
	middlewares "ikkat-bazaar/middleware"
	"ikkat-bazaar/models"

	"github.com/gin-gonic/gin"
)

func SetupArtisanRoutes(r *gin.Engine) {
	artisan := r.Group("/api/artisan")

	// Public artisan detail.
	artisan.GET("/:artisanId", controllers.GetArtisanByID)

	protected := artisan.Group("", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleArtisan))
	protected.POST("/profile", controllers.UpsertArtisanProfile)
	protected.PUT("/profile", controllers.UpsertArtisanProfile)
	protected.GET("/profile", controllers.GetArtisanProfile)
	protected.GET("/products", controllers.GetArtisanProducts)
	protected.GET("/sales/summary", controllers.GetArtisanSalesSummary)
}
