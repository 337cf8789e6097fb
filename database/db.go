package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is the shared MongoDB connection.
var Client *mongo.Client

var databaseName string

var UserCollection *mongo.Collection
var ArtisanCollection *mongo.Collection
var ProductCollection *mongo.Collection
var OrderCollection *mongo.Collection

// InitDB connects to MongoDB and binds the collections used across the app.
func InitDB(mongoURI, dbName string) {
	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Client = client
	databaseName = dbName
	UserCollection = client.Database(dbName).Collection("users")
	ArtisanCollection = client.Database(dbName).Collection("artisans")
	ProductCollection = client.Database(dbName).Collection("products")
	OrderCollection = client.Database(dbName).Collection("orders")

	log.Println("MongoDB connected")
}

// DisconnectDB closes the MongoDB connection.
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		log.Println("Failed to disconnect MongoDB:", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// OpenCollection returns a collection by name.
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(databaseName).Collection(collectionName)
}
