package cache

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

// MinioBackend implements the Backend interface for MinIO/S3 storage
type MinioBackend struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioBackend creates a new MinioBackend
func NewMinioBackend() *MinioBackend {
	return &MinioBackend{}
}

// Name returns the backend name
func (m *MinioBackend) Name() string {
	return "minio"
}

// Configure sets up the MinIO client with the given configuration
func (m *MinioBackend) Configure(ctx context.Context, config confmap.Map) error {
	endpoint, ok := config.String("endpoint")
	if !ok || endpoint == "" {
		return fmt.Errorf("minio: endpoint is required")
	}

	accessKey, ok := config.String("access_key")
	if !ok {
		return fmt.Errorf("minio: access_key is required")
	}

	secretKey, ok := config.String("secret_key")
	if !ok {
		return fmt.Errorf("minio: secret_key is required")
	}

	bucket, ok := config.String("bucket")
	if !ok || bucket == "" {
		return fmt.Errorf("minio: bucket is required")
	}

	// Optional configuration with defaults
	secure := config.Bool("secure", true)
	region := config.StringOr("region", "us-east-1")
	prefix := strings.Trim(config.StringOr("prefix", ""), "/")

	host, schemeSecure, hasScheme, err := parseEndpoint(endpoint)
	if err != nil {
		return err
	}
	// An explicit scheme wins over the secure setting
	if hasScheme {
		secure = schemeSecure
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, config.StringOr("session_token", "")),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return fmt.Errorf("minio: failed to create client: %w", err)
	}

	m.client = client
	m.bucket = bucket
	m.prefix = prefix

	// Check if bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio: failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("minio: bucket %s does not exist", bucket)
	}

	return nil
}

// parseEndpoint strips an http:// or https:// scheme from endpoint
func parseEndpoint(endpoint string) (host string, secure, hasScheme bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, false, false, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, false, fmt.Errorf("minio: invalid endpoint URL %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, false, fmt.Errorf("minio: invalid endpoint URL %q: missing host", endpoint)
	}

	switch u.Scheme {
	case "http":
		return u.Host, false, true, nil
	case "https":
		return u.Host, true, true, nil
	default:
		return "", false, false, fmt.Errorf("minio: invalid endpoint URL %q: unsupported scheme %s", endpoint, u.Scheme)
	}
}

// Upload uploads the archive to MinIO
func (m *MinioBackend) Upload(ctx context.Context, reader io.Reader, size int64, object string) error {
	if m.client == nil {
		return fmt.Errorf("minio: backend not configured")
	}

	objectName := m.objectName(object)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: "application/zstd",
	})
	if err != nil {
		return fmt.Errorf("minio: failed to upload to %s: %w", objectName, err)
	}

	return nil
}

func (m *MinioBackend) objectName(object string) string {
	if m.prefix == "" {
		return object
	}
	return path.Join(m.prefix, object)
}
