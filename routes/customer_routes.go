package routes

import (
	"ikkat-bazaar/controllers"
	middlewares "ikkat-bazaar/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCustomerRoutes(r *gin.Engine) {
	customer := r.Group("/api/customer", middlewares.AuthMiddleware())

	customer.GET("/profile", controllers.GetCustomerProfile)
	customer.PUT("/profile", controllers.UpdateCustomerProfile)
	customer.GET("/orders", controllers.GetCustomerOrders)
}
