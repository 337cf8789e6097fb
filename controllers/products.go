package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	db "ikkat-bazaar/database"
	"ikkat-bazaar/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productInput struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Category    string                 `json:"category" binding:"required"`
	Price       float64                `json:"price" binding:"required,gt=0"`
	Discount    float64                `json:"discount" binding:"gte=0,lte=100"`
	Images      []string               `json:"images"`
	Inventory   models.Inventory       `json:"inventory"`
	Details     *models.ProductDetails `json:"details"`
}

// CreateProduct adds a product for a verified artisan and bumps the
// artisan's product counter.
func CreateProduct(c *gin.Context) {
	artisan, ok := requireVerifiedArtisan(c)
	if !ok {
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	if !models.IsValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + input.Category})
		return
	}

	thumbnail := ""
	if len(input.Images) > 0 {
		thumbnail = input.Images[0]
	}

	product, err := models.CreateProduct(models.Product{
		ArtisanID:   artisan.ID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Discount:    input.Discount,
		Images:      input.Images,
		Thumbnail:   thumbnail,
		Inventory:   input.Inventory,
		Details:     input.Details,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	models.AdjustProductCount(artisan.ID, 1)

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// ListProducts is the public catalog: active products with optional
// category filter, name search, and pagination.
func ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{"isActive": true}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

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

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"pages": pages,
		},
	})
}

// GetProduct is the public product detail endpoint.
func GetProduct(c *gin.Context) {
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

// UpdateProduct patches a product owned by the acting verified artisan.
// finalPrice is recomputed inside the model whenever price or discount move.
func UpdateProduct(c *gin.Context) {
	artisan, ok := requireVerifiedArtisan(c)
	if !ok {
		return
	}

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
	if product.ArtisanID != artisan.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Name        *string                `json:"name"`
		Description *string                `json:"description"`
		Category    *string                `json:"category"`
		Price       *float64               `json:"price" binding:"omitempty,gt=0"`
		Discount    *float64               `json:"discount" binding:"omitempty,gte=0,lte=100"`
		Images      []string               `json:"images"`
		Inventory   *models.Inventory      `json:"inventory"`
		Details     *models.ProductDetails `json:"details"`
		IsActive    *bool                  `json:"isActive"`
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
	if input.Category != nil {
		if !models.IsValidCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + *input.Category})
			return
		}
		fields["category"] = *input.Category
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Discount != nil {
		fields["discount"] = *input.Discount
	}
	if input.Images != nil {
		fields["images"] = input.Images
		if len(input.Images) > 0 {
			fields["thumbnail"] = input.Images[0]
		}
	}
	if input.Inventory != nil {
		fields["inventory"] = *input.Inventory
	}
	if input.Details != nil {
		fields["details"] = *input.Details
	}
	if input.IsActive != nil {
		fields["isActive"] = *input.IsActive
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	updated, err := models.UpdateProductFields(productID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
}

// DeleteProduct removes a product owned by the acting verified artisan and
// decrements the artisan's product counter.
func DeleteProduct(c *gin.Context) {
	artisan, ok := requireVerifiedArtisan(c)
	if !ok {
		return
	}

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
	if product.ArtisanID != artisan.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	if err := models.DeleteProduct(productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	models.AdjustProductCount(artisan.ID, -1)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// AddReview lets a purchaser review a product once. The push and the rating
// recompute run as a single update on the product document.
func AddReview(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Artisans cannot review their own products.
	if artisan, err := models.GetArtisanByUserID(userID); err == nil && artisan.ID == product.ArtisanID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Artisans cannot review their own products"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Only purchasers whose order got past payment can review.
	hasOrdered, err := db.OrderCollection.CountDocuments(ctx, bson.M{
		"customerId":      userID,
		"items.productId": productID,
		"orderStatus":     bson.M{"$in": []string{models.OrderConfirmed, models.OrderShipped, models.OrderDelivered}},
	})
	if err != nil || hasOrdered == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review products you have purchased and received"})
		return
	}

	for _, r := range product.Reviews {
		if r.CustomerID == userID {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
			return
		}
	}

	user, err := models.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updated, err := models.AppendProductReview(productID, models.ProductReview{
		CustomerID:   userID,
		CustomerName: user.Name,
		Rating:       input.Rating,
		Comment:      input.Comment,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review added successfully", "product": updated})
}

// GetReviews returns a product's reviews with the aggregate rating.
func GetReviews(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"reviews":       product.Reviews,
		"averageRating": product.Rating,
		"totalReviews":  len(product.Reviews),
	})
}
