package gcs

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
)

var Client *storage.Client

// Bucket is the media bucket all uploads land in.
var Bucket string

func InitGCS(bucketName string) {
	ctx := context.Background()
	var err error
	Client, err = storage.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to Google Cloud Storage: %v", err)
	}

	if _, err = Client.Bucket(bucketName).Attrs(ctx); err != nil {
		log.Fatalf("Cannot access bucket %s: %v", bucketName, err)
	}
	Bucket = bucketName
	log.Printf("Bucket %s ready", bucketName)
}

func Close() {
	if Client != nil {
		Client.Close()
	}
}
