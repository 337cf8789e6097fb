package routes

import (
	"ikkat-bazaar/controllers"
	middlewares "ikkat-bazaar/middleware"
	"ikkat-bazaar/models"

	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(r *gin.Engine) {
	products := r.Group("/api/products")

	// Public catalog.
	products.GET("", controllers.ListProducts)
	products.GET("/:productId", controllers.GetProduct)
	products.GET("/:productId/reviews", controllers.GetReviews)

	products.POST("/:productId/review", middlewares.AuthMiddleware(), controllers.AddReview)

	// Artisan mutations, all behind the verification gate.
	artisanOnly := products.Group("", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleArtisan))
	artisanOnly.POST("", controllers.CreateProduct)
	artisanOnly.PUT("/:productId", controllers.UpdateProduct)
	artisanOnly.DELETE("/:productId", controllers.DeleteProduct)
}
