package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/kurin/blazer/b2"
)

// ImageService stores report photos in a private B2 bucket and hands
// out signed URLs for viewing them.
type ImageService struct {
	client     *b2.Client
	bucketName string
	bucket     *b2.Bucket
}

const imageURLExpiry = 24 * time.Hour

func NewImageService(keyID, applicationKey, bucketName string) (*ImageService, error) {
	ctx := context.Background()

	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &ImageService{
		client:     client,
		bucketName: bucketName,
		bucket:     bucket,
	}, nil
}

// UploadReportImage streams an item photo into the bucket under a path
// scoped to the uploading user and returns a signed view URL.
func (s *ImageService) UploadReportImage(ctx context.Context, file multipart.File, filename string, userID string) (string, error) {
	objectName := fmt.Sprintf("reports/%s/%d_%s", userID, time.Now().UnixNano(), filename)

	obj := s.bucket.Object(objectName)
	writer := obj.NewWriter(ctx)

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload image to B2: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close B2 writer: %w", err)
	}

	return s.GetViewURL(ctx, objectName)
}

// GetViewURL generates a signed URL for displaying an image from the
// private bucket.
func (s *ImageService) GetViewURL(ctx context.Context, objectName string) (string, error) {
	obj := s.bucket.Object(objectName)

	urlObj, err := obj.AuthURL(ctx, imageURLExpiry, "GET")
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return urlObj.String(), nil
}

func (s *ImageService) DeleteImage(ctx context.Context, objectName string) error {
	obj := s.bucket.Object(objectName)

	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete image from B2: %w", err)
	}
	return nil
}
