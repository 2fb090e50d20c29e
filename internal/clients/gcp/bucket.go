package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
)

type BucketCategory string

const (
	BucketCategoryAttachment BucketCategory = "attachment"
	BucketCategoryBranding   BucketCategory = "branding"
)

type ObjectAttrs struct {
	Size        int64
	ContentType string
	Updated     time.Time
	ETag        string
}

// BucketService is the object storage collaborator: originals and converted
// artifacts live in the attachment bucket, org and client logos in the
// branding bucket.
type BucketService interface {
	UploadFile(ctx context.Context, category BucketCategory, key string, file io.Reader) error
	DownloadFile(ctx context.Context, category BucketCategory, key string) (io.ReadCloser, error)
	DownloadBytes(ctx context.Context, category BucketCategory, key string) ([]byte, error)
	DeleteFile(ctx context.Context, category BucketCategory, key string) error
	GetObjectAttrs(ctx context.Context, category BucketCategory, key string) (*ObjectAttrs, error)
	GetPublicURL(category BucketCategory, key string) string
}

type bucketService struct {
	log              *logger.Logger
	storageClient    *storage.Client
	attachmentBucket string
	brandingBucket   string
	publicBaseURL    string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	attachmentBucket := os.Getenv("ATTACHMENT_GCS_BUCKET_NAME")
	brandingBucket := os.Getenv("BRANDING_GCS_BUCKET_NAME")
	if attachmentBucket == "" {
		return nil, fmt.Errorf("missing env var ATTACHMENT_GCS_BUCKET_NAME")
	}
	if brandingBucket == "" {
		return nil, fmt.Errorf("missing env var BRANDING_GCS_BUCKET_NAME")
	}

	ctx := context.Background()
	emulatorHost := strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/")

	var stClient *storage.Client
	var err error
	if emulatorHost != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", emulatorHost)
		stClient, err = storage.NewClient(ctx, option.WithoutAuthentication())
	} else {
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicBaseURL := "https://storage.googleapis.com"
	if emulatorHost != "" {
		publicBaseURL = emulatorHost
	}

	serviceLog.Info(
		"Object storage initialized",
		"emulator_host", emulatorHost,
		"attachment_bucket", attachmentBucket,
		"branding_bucket", brandingBucket,
	)

	return &bucketService{
		log:              serviceLog,
		storageClient:    stClient,
		attachmentBucket: attachmentBucket,
		brandingBucket:   brandingBucket,
		publicBaseURL:    publicBaseURL,
	}, nil
}

func (s *bucketService) bucketName(category BucketCategory) string {
	if category == BucketCategoryBranding {
		return s.brandingBucket
	}
	return s.attachmentBucket
}

func (s *bucketService) UploadFile(ctx context.Context, category BucketCategory, key string, file io.Reader) error {
	w := s.storageClient.Bucket(s.bucketName(category)).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s/%s: %w", category, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload %s/%s: %w", category, key, err)
	}
	return nil
}

func (s *bucketService) DownloadFile(ctx context.Context, category BucketCategory, key string) (io.ReadCloser, error) {
	r, err := s.storageClient.Bucket(s.bucketName(category)).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", category, key, err)
	}
	return r, nil
}

func (s *bucketService) DownloadBytes(ctx context.Context, category BucketCategory, key string) ([]byte, error) {
	r, err := s.DownloadFile(ctx, category, key)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", category, key, err)
	}
	return b, nil
}

func (s *bucketService) DeleteFile(ctx context.Context, category BucketCategory, key string) error {
	if err := s.storageClient.Bucket(s.bucketName(category)).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", category, key, err)
	}
	return nil
}

func (s *bucketService) GetObjectAttrs(ctx context.Context, category BucketCategory, key string) (*ObjectAttrs, error) {
	attrs, err := s.storageClient.Bucket(s.bucketName(category)).Object(key).Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("attrs %s/%s: %w", category, key, err)
	}
	return &ObjectAttrs{
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Updated:     attrs.Updated,
		ETag:        attrs.Etag,
	}, nil
}

func (s *bucketService) GetPublicURL(category BucketCategory, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucketName(category), key)
}
