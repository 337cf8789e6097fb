package models

import (
	"context"
	"time"

	db "ikkat-bazaar/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type BankDetails struct {
	AccountHolder string `json:"accountHolder,omitempty" bson:"accountHolder,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty" bson:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty" bson:"bankName,omitempty"`
	IFSCCode      string `json:"ifscCode,omitempty" bson:"ifscCode,omitempty"`
}

type ArtisanDocuments struct {
	AadharCard      string `json:"aadharCard,omitempty" bson:"aadharCard,omitempty"`
	PanCard         string `json:"panCard,omitempty" bson:"panCard,omitempty"`
	BusinessLicense string `json:"businessLicense,omitempty" bson:"businessLicense,omitempty"`
}

type ArtisanReview struct {
	CustomerID primitive.ObjectID `json:"customerId" bson:"customerId"`
	Rating     int                `json:"rating" bson:"rating"`
	Comment    string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type Artisan struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID             primitive.ObjectID  `json:"userId" bson:"userId"`
	BusinessName       string              `json:"businessName,omitempty" bson:"businessName,omitempty"`
	YearsOfExperience  int                 `json:"yearsOfExperience,omitempty" bson:"yearsOfExperience,omitempty"`
	Specialties        []string            `json:"specialties,omitempty" bson:"specialties,omitempty"`
	Bio                string              `json:"bio,omitempty" bson:"bio,omitempty"`
	Certifications     []string            `json:"certifications,omitempty" bson:"certifications,omitempty"`
	BankDetails        *BankDetails        `json:"bankDetails,omitempty" bson:"bankDetails,omitempty"`
	Documents          *ArtisanDocuments   `json:"documents,omitempty" bson:"documents,omitempty"`
	VerificationStatus string              `json:"verificationStatus" bson:"verificationStatus"`
	VerificationNotes  string              `json:"verificationNotes,omitempty" bson:"verificationNotes,omitempty"`
	VerifiedBy         *primitive.ObjectID `json:"verifiedBy,omitempty" bson:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time          `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
	TotalProducts      int                 `json:"totalProducts" bson:"totalProducts"`
	TotalSales         float64             `json:"totalSales" bson:"totalSales"`
	Rating             float64             `json:"rating" bson:"rating"`
	Reviews            []ArtisanReview     `json:"reviews,omitempty" bson:"reviews,omitempty"`
	CreatedAt          time.Time           `json:"createdAt" bson:"createdAt"`
}

func GetArtisanByUserID(userID primitive.ObjectID) (Artisan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var artisan Artisan
	err := db.ArtisanCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&artisan)
	return artisan, err
}

func GetArtisanByID(id primitive.ObjectID) (Artisan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var artisan Artisan
	err := db.ArtisanCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&artisan)
	return artisan, err
}

func CreateArtisan(artisan Artisan) (Artisan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	artisan.ID = primitive.NewObjectID()
	artisan.VerificationStatus = VerificationPending
	artisan.CreatedAt = time.Now()

	_, err := db.ArtisanCollection.InsertOne(ctx, artisan)
	return artisan, err
}

// AdjustProductCount bumps the artisan's totalProducts counter by delta.
func AdjustProductCount(artisanID primitive.ObjectID, delta int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ArtisanCollection.UpdateByID(ctx, artisanID, bson.M{
		"$inc": bson.M{"totalProducts": delta},
	})
	return err
}
