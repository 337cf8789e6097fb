package routes

import (
	"ikkat-bazaar/controllers"
	middlewares "ikkat-bazaar/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")

	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)
	auth.GET("/me", middlewares.AuthMiddleware(), controllers.Me)

	// OTP-based password reset.
	auth.POST("/forgot-password-otp", controllers.ForgotPasswordOTP)
	auth.POST("/verify-otp", controllers.VerifyOTP)
	auth.POST("/change-password-otp", controllers.ChangePasswordOTP)

	auth.POST("/upload-profile-image", middlewares.AuthMiddleware(), controllers.UploadProfileImage)
}
