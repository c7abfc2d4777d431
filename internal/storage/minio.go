package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"wanderlust/internal/config"
	"wanderlust/internal/models"
)

// ImageStore uploads listing photos to the external media host and
// hands back the metadata the listing keeps.
type ImageStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error)
	Remove(ctx context.Context, image models.Image) error
}

type MinioStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioStore connects to MinIO and makes sure the image bucket exists.
func NewMinioStore(cfg config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		logrus.WithError(err).Warn("failed to check bucket existence")
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			logrus.WithError(err).Warn("failed to create bucket")
		} else {
			logrus.WithField("bucket", cfg.MinioBucket).Info("created bucket")
		}
	}

	logrus.Info("connected to MinIO")
	return &MinioStore{
		client:   client,
		bucket:   cfg.MinioBucket,
		endpoint: cfg.MinioEndpoint,
		useSSL:   cfg.MinioUseSSL,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (models.Image, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(fileHeader.Filename))
	_, err = s.client.PutObject(ctx, s.bucket, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to upload image: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return models.Image{
		URL:      fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName),
		Filename: objectName,
	}, nil
}

func (s *MinioStore) Remove(ctx context.Context, image models.Image) error {
	if image.Filename == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, image.Filename, minio.RemoveObjectOptions{})
}
