package routes

import (
	"ikkat-bazaar/controllers"
	middlewares "ikkat-bazaar/middleware"
	"ikkat-bazaar/models"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))

	protected.GET("/products", controllers.AdminListProducts)
	protected.GET("/products/:productId", controllers.AdminGetProduct)
	protected.PUT("/products/:productId", controllers.AdminUpdateProduct)
	protected.PATCH("/products/:productId/toggle", controllers.AdminToggleProduct)
	protected.DELETE("/products/:productId", controllers.AdminDeleteProduct)

	protected.GET("/artisans", controllers.AdminListArtisans)
	protected.GET("/artisans/pending", controllers.AdminListPendingArtisans)
	protected.POST("/artisans/:artisanId/verify", controllers.AdminVerifyArtisan)

	protected.GET("/orders", controllers.AdminListOrders)
	protected.PATCH("/orders/:orderId", controllers.AdminUpdateOrderStatus)

	protected.GET("/statistics", controllers.AdminStatistics)
}
