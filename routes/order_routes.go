package routes

import (
	"ikkat-bazaar/controllers"
	middlewares "ikkat-bazaar/middleware"

	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine) {
	orders := r.Group("/api/orders")

	// Public key fetch for the checkout widget.
	orders.GET("/payment/razorpay-key", controllers.GetRazorpayKey)

	auth := orders.Group("", middlewares.AuthMiddleware())
	auth.POST("", controllers.CreateOrder)
	auth.GET("/customer/my-orders", controllers.GetMyOrders)
	auth.GET("/artisan/orders", controllers.GetArtisanOrders)
	auth.GET("/:orderId", controllers.GetOrder)
	auth.PATCH("/:orderId/status", controllers.UpdateOrderStatus)
	auth.PATCH("/:orderId/cancel", controllers.CancelOrder)
	auth.POST("/:orderId/payment/create", controllers.CreatePayment)
	auth.POST("/:orderId/payment/verify", controllers.VerifyPayment)
}
