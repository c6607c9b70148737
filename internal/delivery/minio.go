package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"ledger/internal/config"
	"ledger/internal/labels"
	"ledger/internal/logging"
	"ledger/internal/services"
	"ledger/internal/textutil"
)

// objectClient is the subset of *minio.Client the sink uses.
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// Minio uploads artifacts to an object storage bucket and returns a presigned
// download URL.
type Minio struct {
	client objectClient
	bucket string
	prefix string
	expiry time.Duration
	logger *slog.Logger

	mu          sync.Mutex
	bucketReady bool
}

// NewMinio connects a sink to the configured endpoint. Objects are stored
// under a folder named after the product prefix.
func NewMinio(cfg config.Minio, product string, logger *slog.Logger) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "delivery", "minio", "create client", err)
	}
	return newMinioWithClient(client, cfg, product, logger), nil
}

func newMinioWithClient(client objectClient, cfg config.Minio, product string, logger *slog.Logger) *Minio {
	return &Minio{
		client: client,
		bucket: cfg.Bucket,
		prefix: textutil.ObjectPrefix(product),
		expiry: time.Duration(cfg.PresignExpiryHours) * time.Hour,
		logger: logging.NewComponentLogger(logger, "delivery"),
	}
}

// Deliver uploads the artifact, creating the bucket on first use.
func (m *Minio) Deliver(ctx context.Context, artifact *labels.Artifact) (string, error) {
	if err := m.ensureBucket(ctx); err != nil {
		return "", err
	}
	name := m.objectName(artifact)
	disposition := fmt.Sprintf("attachment; filename=%q", artifact.Filename)
	info, err := m.client.PutObject(ctx, m.bucket, name, bytes.NewReader(artifact.Data), artifact.Size(), minio.PutObjectOptions{
		ContentType:        artifact.ContentType,
		ContentDisposition: disposition,
	})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "delivery", "minio upload", name, err)
	}

	params := url.Values{}
	params.Set("response-content-disposition", disposition)
	link, err := m.client.PresignedGetObject(ctx, m.bucket, name, m.expiry, params)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "delivery", "minio presign", name, err)
	}
	logging.WithContext(ctx, m.logger).Info("label document uploaded",
		logging.String("bucket", m.bucket),
		logging.String("object", name),
		logging.Int64("bytes", info.Size),
		logging.Duration("link_expiry", m.expiry),
	)
	return link.String(), nil
}

// objectName is "<product>/<YYYY-MM-DD>/<HHMMSS>-<filename>" in UTC.
func (m *Minio) objectName(artifact *labels.Artifact) string {
	at := artifact.GeneratedAt.UTC()
	return path.Join(m.prefix, at.Format(time.DateOnly), at.Format("150405")+"-"+textutil.SanitizeFileName(artifact.Filename))
}

func (m *Minio) ensureBucket(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bucketReady {
		return nil
	}
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "delivery", "minio bucket", "check "+m.bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return services.Wrap(services.ErrExternalTool, "delivery", "minio bucket", "create "+m.bucket, err)
		}
		m.logger.Info("created label bucket", logging.String("bucket", m.bucket))
	}
	m.bucketReady = true
	return nil
}
