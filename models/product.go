package models

import (
	"context"
	"math"
	"time"

	db "ikkat-bazaar/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Inventory struct {
	Quantity int    `json:"quantity" bson:"quantity"`
	Unit     string `json:"unit,omitempty" bson:"unit,omitempty"`
}

type ProductDetails struct {
	Material         string `json:"material,omitempty" bson:"material,omitempty"`
	Color            string `json:"color,omitempty" bson:"color,omitempty"`
	Size             string `json:"size,omitempty" bson:"size,omitempty"`
	Weight           string `json:"weight,omitempty" bson:"weight,omitempty"`
	CareInstructions string `json:"careInstructions,omitempty" bson:"careInstructions,omitempty"`
}

type ProductReview struct {
	CustomerID   primitive.ObjectID `json:"customerId" bson:"customerId"`
	CustomerName string             `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Rating       int                `json:"rating" bson:"rating"`
	Comment      string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ArtisanID   primitive.ObjectID `json:"artisanId" bson:"artisanId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Price       float64            `json:"price" bson:"price"`
	Discount    float64            `json:"discount" bson:"discount"`
	FinalPrice  float64            `json:"finalPrice" bson:"finalPrice"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Thumbnail   string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Inventory   Inventory          `json:"inventory" bson:"inventory"`
	Details     *ProductDetails    `json:"details,omitempty" bson:"details,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	Rating      float64            `json:"rating" bson:"rating"`
	Reviews     []ProductReview    `json:"reviews,omitempty" bson:"reviews,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductCategories is the closed set of catalog categories.
var ProductCategories = []string{"sarees", "dupattas", "fabrics", "clothing", "accessories", "home-decor"}

func IsValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ComputeFinalPrice derives the discounted price rounded to 2 decimals.
// ok is false when either input is not a finite number.
func ComputeFinalPrice(price, discount float64) (float64, bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) || math.IsNaN(discount) || math.IsInf(discount, 0) {
		return 0, false
	}
	computed := price - (price * discount / 100)
	if math.IsNaN(computed) || math.IsInf(computed, 0) {
		return 0, false
	}
	return math.Round(computed*100) / 100, true
}

func CreateProduct(product Product) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	if fp, ok := ComputeFinalPrice(product.Price, product.Discount); ok {
		product.FinalPrice = fp
	}
	product.IsActive = true
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	_, err := db.ProductCollection.InsertOne(ctx, product)
	return product, err
}

func GetProductByID(id primitive.ObjectID) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, err
}

// resolveFinalPrice derives the new finalPrice for a partial update. The
// untouched side of the price/discount pair falls back to the stored value
// so the derived price never drifts. ok is false when the patch touches
// neither field or the inputs are not finite.
func resolveFinalPrice(fields bson.M, storedPrice, storedDiscount float64) (float64, bool) {
	price, priceChanged := fields["price"].(float64)
	discount, discountChanged := fields["discount"].(float64)

	if !priceChanged && !discountChanged {
		return 0, false
	}
	if !priceChanged {
		price = storedPrice
	}
	if !discountChanged {
		discount = storedDiscount
	}
	return ComputeFinalPrice(price, discount)
}

// UpdateProductFields applies a partial update. Whenever price or discount is
// touched, finalPrice is recomputed; the untouched one of the pair is read
// back from the stored document first.
func UpdateProductFields(id primitive.ObjectID, fields bson.M) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, priceChanged := fields["price"].(float64)
	_, discountChanged := fields["discount"].(float64)

	if priceChanged || discountChanged {
		var current Product
		if !priceChanged || !discountChanged {
			err := db.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
			if err != nil {
				return Product{}, err
			}
		}
		if fp, ok := resolveFinalPrice(fields, current.Price, current.Discount); ok {
			fields["finalPrice"] = fp
		}
	}

	fields["updatedAt"] = time.Now()
	_, err := db.ProductCollection.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return Product{}, err
	}

	var updated Product
	err = db.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated)
	return updated, err
}

func DeleteProduct(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ProductCollection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AppendProductReview pushes a review and recomputes the average rating in a
// single pipeline update, so concurrent reviews cannot lose each other.
func AppendProductReview(productID primitive.ObjectID, review ProductReview) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
				bson.A{review},
			}},
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"rating": bson.M{"$round": bson.A{bson.M{"$avg": "$reviews.rating"}, 1}},
			"updatedAt": "$$NOW",
		}}},
	}

	_, err := db.ProductCollection.UpdateByID(ctx, productID, pipeline)
	if err != nil {
		return Product{}, err
	}

	var updated Product
	err = db.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&updated)
	return updated, err
}
