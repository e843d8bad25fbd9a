package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/policy"

	"bistro_back_end/internal/config"
)

var ErrNotImage = errors.New("uploaded file is not an image")

const menuPrefix = "menu/"

// ImageStore keeps menu pictures in a MinIO bucket.
type ImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// ConnectImageStore returns nil when MinIO is not configured or cannot be
// reached; the upload route then answers 503.
func ConnectImageStore(ctx context.Context, cfg config.MinIOConfig) *ImageStore {
	if !cfg.Enabled() {
		return nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Println("⚠️ MinIO not configured:", err)
		return nil
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Println("⚠️ MinIO bucket check failed:", err)
		return nil
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ MinIO bucket creation failed:", err)
			return nil
		}
		log.Println("🪣 Bucket created:", cfg.Bucket)

		doc, err := readOnlyPolicy(cfg.Bucket, menuPrefix)
		if err == nil {
			err = client.SetBucketPolicy(ctx, cfg.Bucket, doc)
		}
		if err != nil {
			log.Println("⚠️ MinIO public-read policy not set:", err)
			return nil
		}
	}

	log.Println("✅ Connected to MinIO:", cfg.Endpoint)
	return &ImageStore{client: client, bucket: cfg.Bucket, baseURL: publicBaseURL(cfg)}
}

// Upload stores file under a random name and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	objectName := ObjectName(file.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", objectName, err)
	}
	return s.baseURL + "/" + objectName, nil
}

// ObjectName builds "menu/<uuid><ext>" keeping the original lower-cased extension.
func ObjectName(filename string) string {
	return menuPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// readOnlyPolicy lets anonymous clients read objects under prefix, so the
// URLs returned by Upload resolve without credentials.
func readOnlyPolicy(bucket, prefix string) (string, error) {
	doc := policy.BucketAccessPolicy{
		Version:    "2012-10-17",
		Statements: policy.SetPolicy(nil, policy.BucketPolicyReadOnly, bucket, prefix),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode bucket policy: %w", err)
	}
	return string(b), nil
}

func publicBaseURL(cfg config.MinIOConfig) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}
