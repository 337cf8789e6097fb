package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	db "ikkat-bazaar/database"
	"ikkat-bazaar/models"
	"ikkat-bazaar/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminSystemID is the sentinel subject of admin tokens; it never matches a
// user document.
const AdminSystemID = "admin-system"

// AdminLogin authenticates against the fixed admin credentials and issues a
// 24h token.
func AdminLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if input.Email != adminEmail || input.Password != adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	token, err := generateJWT(AdminSystemID, models.RoleAdmin, input.Email, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin login successful", "token": token})
}

// AdminListProducts lists all products with optional status/category/artisan
// filters.
func AdminListProducts(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["isActive"] = status == "active"
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if artisanID := c.Query("artisanId"); artisanID != "" {
		id, err := primitive.ObjectIDFromHex(artisanID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artisan ID"})
			return
		}
		filter["artisanId"] = id
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AdminGetProduct returns a single product.
func AdminGetProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdminUpdateProduct patches product fields; the derived finalPrice is
// recomputed on the same paths as artisan updates.
func AdminUpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var input struct {
		Name        *string                `json:"name"`
		Description *string                `json:"description"`
		Price       *float64               `json:"price" binding:"omitempty,gt=0"`
		Discount    *float64               `json:"discount" binding:"omitempty,gte=0,lte=100"`
		Category    *string                `json:"category"`
		Inventory   *models.Inventory      `json:"inventory"`
		Details     *models.ProductDetails `json:"details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	fields := bson.M{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Discount != nil {
		fields["discount"] = *input.Discount
	}
	if input.Category != nil {
		if !models.IsValidCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + *input.Category})
			return
		}
		fields["category"] = *input.Category
	}
	if input.Inventory != nil {
		fields["inventory"] = *input.Inventory
	}
	if input.Details != nil {
		fields["details"] = *input.Details
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	product, err := models.UpdateProductFields(productID, fields)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// AdminToggleProduct flips a product's isActive flag.
func AdminToggleProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	updated, err := models.UpdateProductFields(productID, bson.M{"isActive": !product.IsActive})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle product"})
		return
	}

	message := "Product deactivated"
	if updated.IsActive {
		message = "Product activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "product": updated})
}

// AdminDeleteProduct hard-deletes a product and adjusts the owning
// artisan's counter.
func AdminDeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := models.DeleteProduct(productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	models.AdjustProductCount(product.ArtisanID, -1)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// AdminListArtisans lists artisans, optionally by verification status.
func AdminListArtisans(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["verificationStatus"] = status
	}
	listArtisans(c, filter)
}

// AdminListPendingArtisans lists artisans awaiting verification.
func AdminListPendingArtisans(c *gin.Context) {
	listArtisans(c, bson.M{"verificationStatus": models.VerificationPending})
}

func listArtisans(c *gin.Context, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.ArtisanCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artisans"})
		return
	}
	defer cursor.Close(ctx)

	var artisans []models.Artisan
	if err := cursor.All(ctx, &artisans); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse artisans"})
		return
	}
	c.JSON(http.StatusOK, artisans)
}

// AdminVerifyArtisan sets the verification outcome and mirrors it onto the
// linked user record.
func AdminVerifyArtisan(c *gin.Context) {
	artisanID, err := primitive.ObjectIDFromHex(c.Param("artisanId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artisan ID"})
		return
	}

	var input struct {
		Status            string `json:"status" binding:"required,oneof=pending verified rejected"`
		VerificationNotes string `json:"verificationNotes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"verificationStatus": input.Status,
		"verificationNotes":  input.VerificationNotes,
		"verifiedAt":         now,
	}
	// Admin tokens carry a sentinel id, only store verifiedBy when it is a
	// real ObjectID.
	if verifier, err := primitive.ObjectIDFromHex(c.GetString("user_id")); err == nil {
		update["verifiedBy"] = verifier
	}

	result := db.ArtisanCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": artisanID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var artisan models.Artisan
	if err := result.Decode(&artisan); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artisan not found"})
		return
	}

	isVerified := input.Status == models.VerificationVerified
	fields := bson.M{"isVerified": isVerified}
	if isVerified {
		fields["verifiedAt"] = now
	}
	models.UpdateUserFields(artisan.UserID, fields)

	c.JSON(http.StatusOK, gin.H{"message": "Artisan verification updated", "artisan": artisan})
}

// AdminListOrders lists all orders, newest first.
func AdminListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AdminUpdateOrderStatus moves any order through the status machine with
// admin authority; terminal states still refuse transitions.
func AdminUpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var input struct {
		OrderStatus string `json:"orderStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order status is required"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := services.ValidateTransition(order, input.OrderStatus, c.GetString("user_id"), models.RoleAdmin); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotOrderOwner) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := models.UpdateOrderStatus(orderID, input.OrderStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	order, _ = models.GetOrderByID(orderID)
	c.JSON(http.StatusOK, order)
}

// AdminStatistics returns platform-wide counters and total revenue.
func AdminStatistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}
	verifiedArtisans, _ := db.ArtisanCollection.CountDocuments(ctx, bson.M{"verificationStatus": models.VerificationVerified})
	pendingArtisans, _ := db.ArtisanCollection.CountDocuments(ctx, bson.M{"verificationStatus": models.VerificationPending})
	totalOrders, _ := db.OrderCollection.CountDocuments(ctx, bson.M{})

	cursor, err := db.OrderCollection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$finalAmount"},
		}}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
		return
	}
	defer cursor.Close(ctx)

	totalRevenue := 0.0
	var agg []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &agg); err == nil && len(agg) > 0 {
		totalRevenue = agg[0].Total
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":       totalUsers,
		"verifiedArtisans": verifiedArtisans,
		"pendingArtisans":  pendingArtisans,
		"totalOrders":      totalOrders,
		"totalRevenue":     totalRevenue,
	})
}
