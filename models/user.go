package models

import (
	"context"
	"time"

	db "ikkat-bazaar/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleArtisan  = "artisan"
	RoleCustomer = "customer"
)

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role         string             `json:"role" bson:"role"`
	IsVerified   bool               `json:"isVerified" bson:"isVerified"`
	VerifiedAt   *time.Time         `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Address      *Address           `json:"address,omitempty" bson:"address,omitempty"`

	// Password reset via OTP. The OTP is stored as a sha256 digest and
	// cleared on success, expiry, or attempt exhaustion.
	OTPHash     string     `json:"-" bson:"otpHash,omitempty"`
	OTPExpiry   *time.Time `json:"-" bson:"otpExpiry,omitempty"`
	OTPAttempts int        `json:"-" bson:"otpAttempts,omitempty"`
	OTPVerified bool       `json:"-" bson:"otpVerified,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func CreateUser(user User) (User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := db.UserCollection.InsertOne(ctx, user)
	return user, err
}

func GetUserByEmail(email string) (User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func GetUserByID(id primitive.ObjectID) (User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, err
}

// UpdateUserFields applies a $set on the user document and stamps updatedAt.
func UpdateUserFields(id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	_, err := db.UserCollection.UpdateByID(ctx, id, bson.M{"$set": fields})
	return err
}

// ClearOTP removes all reset-OTP state from the user document.
func ClearOTP(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateByID(ctx, id, bson.M{
		"$unset": bson.M{
			"otpHash":     "",
			"otpExpiry":   "",
			"otpAttempts": "",
			"otpVerified": "",
		},
	})
	return err
}
