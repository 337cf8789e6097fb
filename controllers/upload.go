package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"ikkat-bazaar/gcs"

	"github.com/google/uuid"
)

// UploadImageToGCS streams an image into the media bucket and returns its
// public URL.
func UploadImageToGCS(reader io.Reader, contentType, folder string) (string, error) {
	ctx := context.Background()

	extension := "jpg"
	switch strings.ToLower(contentType) {
	case "image/png":
		extension = "png"
	case "image/jpeg", "image/jpg":
		extension = "jpeg"
	case "image/gif":
		extension = "gif"
	default:
		log.Printf("Unsupported content type: %s, defaulting to .jpg", contentType)
	}

	// UUID + nano timestamp keeps object names unique.
	objectName := fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extension)

	writer := gcs.Client.Bucket(gcs.Bucket).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, reader); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gcs.Bucket, objectName), nil
}
