package controllers

import (
	"net/http"

	"ikkat-bazaar/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetCustomerProfile returns the authenticated user's profile.
func GetCustomerProfile(c *gin.Context) {
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

// UpdateCustomerProfile patches name, phone, and address.
func UpdateCustomerProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Name    *string         `json:"name"`
		Phone   *string         `json:"phone"`
		Address *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	fields := bson.M{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := models.UpdateUserFields(userID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	user, _ := models.GetUserByID(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

// GetCustomerOrders returns the customer's order history.
func GetCustomerOrders(c *gin.Context) {
	customerID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	orders, err := models.GetOrdersByCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
