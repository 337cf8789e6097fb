package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	db "ikkat-bazaar/database"
	"ikkat-bazaar/models"
	"ikkat-bazaar/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a customer or artisan account and returns a token.
func Register(c *gin.Context) {
	var input struct {
		Name     string          `json:"name" binding:"required"`
		Email    string          `json:"email" binding:"required,email"`
		Password string          `json:"password" binding:"required,min=6"`
		Role     string          `json:"role" binding:"omitempty,oneof=customer artisan"`
		Phone    string          `json:"phone"`
		Address  *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	email := strings.ToLower(input.Email)
	if _, err := models.GetUserByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	user, err := models.CreateUser(models.User{
		Name:     input.Name,
		Email:    email,
		Password: hashed,
		Phone:    input.Phone,
		Role:     role,
		Address:  input.Address,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	token, err := generateJWT(user.ID.Hex(), user.Role, user.Email, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login verifies credentials and issues a 7-day token.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := models.GetUserByEmail(strings.ToLower(input.Email))
	if err != nil || !checkPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateJWT(user.ID.Hex(), user.Role, user.Email, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Me returns the authenticated user.
func Me(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := models.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ForgotPasswordOTP generates a reset OTP, stores its digest, and mails the
// plaintext to the account's address.
func ForgotPasswordOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	user, err := models.GetUserByEmail(strings.ToLower(input.Email))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found with this email"})
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	expiry := time.Now().Add(10 * time.Minute)
	err = models.UpdateUserFields(user.ID, bson.M{
		"otpHash":     utils.HashOTP(otp),
		"otpExpiry":   expiry,
		"otpAttempts": 0,
		"otpVerified": false,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save OTP"})
		return
	}

	if err := mailer.SendOTPEmail(user.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully to your email", "email": user.Email})
}

// VerifyOTP checks the submitted code against the stored digest. Expired
// codes are cleared on first sight; the 6th consecutive wrong attempt clears
// the OTP and returns 429.
func VerifyOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}

	user, err := models.GetUserByEmail(strings.ToLower(input.Email))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.OTPHash == "" || user.OTPExpiry == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No OTP requested"})
		return
	}

	switch utils.CheckOTP(user.OTPHash, *user.OTPExpiry, user.OTPAttempts, input.OTP, time.Now()) {
	case utils.OTPExpired:
		models.ClearOTP(user.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired"})
		return
	case utils.OTPRateLimited:
		models.ClearOTP(user.ID)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts, request a new OTP"})
		return
	case utils.OTPMismatch:
		models.UpdateUserFields(user.ID, bson.M{"otpAttempts": user.OTPAttempts + 1})
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}

	err = models.UpdateUserFields(user.ID, bson.M{"otpVerified": true, "otpAttempts": 0})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully", "verified": true})
}

// ChangePasswordOTP sets a new password once the OTP has been verified.
func ChangePasswordOTP(c *gin.Context) {
	var input struct {
		Email           string `json:"email" binding:"required,email"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	if input.NewPassword != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	user, err := models.GetUserByEmail(strings.ToLower(input.Email))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.OTPVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP not verified"})
		return
	}

	hashed, err := hashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	if err := models.UpdateUserFields(user.ID, bson.M{"password": hashed}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}
	models.ClearOTP(user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// UploadProfileImage stores the uploaded image in GCS and saves its URL on
// the user.
func UploadProfileImage(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	file, header, err := c.Request.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	url, err := UploadImageToGCS(file, contentType, "profiles")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := models.UpdateUserFields(userID, bson.M{"profileImage": url}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile image"})
		return
	}

	user, _ := models.GetUserByID(userID)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Profile image uploaded successfully",
		"user":         user,
		"profileImage": url,
	})
}

// ClearExpiredOTPs removes stale OTP state; scheduled from main.
func ClearExpiredOTPs() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateMany(ctx,
		bson.M{"otpExpiry": bson.M{"$lt": time.Now()}},
		bson.M{"$unset": bson.M{
			"otpHash":     "",
			"otpExpiry":   "",
			"otpAttempts": "",
			"otpVerified": "",
		}},
	)
	if err != nil {
		log.Printf("Failed to clear expired OTPs: %v", err)
		return
	}
	if result.ModifiedCount > 0 {
		log.Printf("Cleared %d expired OTPs", result.ModifiedCount)
	}
}
