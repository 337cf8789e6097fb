package controllers

import (
	"context"
	"net/http"
	"time"

	db "ikkat-bazaar/database"
	"ikkat-bazaar/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type artisanProfileInput struct {
	BusinessName      string                   `json:"businessName"`
	YearsOfExperience int                      `json:"yearsOfExperience"`
	Specialties       []string                 `json:"specialties"`
	Bio               string                   `json:"bio"`
	Certifications    []string                 `json:"certifications"`
	BankDetails       *models.BankDetails      `json:"bankDetails"`
	Documents         *models.ArtisanDocuments `json:"documents"`
}

// verificationGate decides whether the artisan may reach seller operations.
// Blocked responses echo the current status so the artisan knows whether the
// profile is still pending or was rejected.
func verificationGate(artisan models.Artisan) (int, gin.H, bool) {
	if artisan.VerificationStatus != models.VerificationVerified {
		return http.StatusForbidden, gin.H{
			"error":              "Your artisan profile must be verified first",
			"verificationStatus": artisan.VerificationStatus,
		}, false
	}
	return http.StatusOK, nil, true
}

// requireVerifiedArtisan loads the artisan record for the acting user and
// enforces the verification gate. The status is read fresh on every request
// since admin can flip it at any time.
func requireVerifiedArtisan(c *gin.Context) (models.Artisan, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return models.Artisan{}, false
	}

	artisan, err := models.GetArtisanByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artisan profile not found"})
		return models.Artisan{}, false
	}

	if status, body, ok := verificationGate(artisan); !ok {
		c.JSON(status, body)
		return models.Artisan{}, false
	}
	return artisan, true
}

// UpsertArtisanProfile creates the artisan profile or updates it in place.
func UpsertArtisanProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input artisanProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	existing, err := models.GetArtisanByUserID(userID)
	if err != nil {
		artisan, err := models.CreateArtisan(models.Artisan{
			UserID:            userID,
			BusinessName:      input.BusinessName,
			YearsOfExperience: input.YearsOfExperience,
			Specialties:       input.Specialties,
			Bio:               input.Bio,
			Certifications:    input.Certifications,
			BankDetails:       input.BankDetails,
			Documents:         input.Documents,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artisan profile"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Artisan profile created", "artisan": artisan})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.ArtisanCollection.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{
		"businessName":      input.BusinessName,
		"yearsOfExperience": input.YearsOfExperience,
		"specialties":       input.Specialties,
		"bio":               input.Bio,
		"certifications":    input.Certifications,
		"bankDetails":       input.BankDetails,
		"documents":         input.Documents,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artisan profile"})
		return
	}

	artisan, _ := models.GetArtisanByID(existing.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Artisan profile updated successfully", "artisan": artisan})
}

// GetArtisanProfile returns the acting artisan's own profile.
func GetArtisanProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	artisan, err := models.GetArtisanByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, artisan)
}

// GetArtisanProducts lists the artisan's own products; gated on verification.
func GetArtisanProducts(c *gin.Context) {
	artisan, ok := requireVerifiedArtisan(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.ProductCollection.Find(ctx, bson.M{"artisanId": artisan.ID}, opts)
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
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetArtisanByID is the public artisan detail endpoint.
func GetArtisanByID(c *gin.Context) {
	artisanID, err := primitive.ObjectIDFromHex(c.Param("artisanId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artisan ID"})
		return
	}

	artisan, err := models.GetArtisanByID(artisanID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artisan not found"})
		return
	}
	c.JSON(http.StatusOK, artisan)
}

// GetArtisanSalesSummary returns the artisan's aggregate counters.
func GetArtisanSalesSummary(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	artisan, err := models.GetArtisanByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artisan profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProducts": artisan.TotalProducts,
		"totalSales":    artisan.TotalSales,
		"rating":        artisan.Rating,
	})
}
