package blob

import (
	"context"

	"go.uber.org/zap"

	"github.com/topcardetailing/booking-api/internal/config"
)

// Store is the file-storage boundary for job photos and receipts. The mock
// fabricates URLs; the S3 store uploads real bytes. Callers never know which
// one they hold.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
}

func NewFromConfig(cfg *config.Config, log *zap.Logger) Store {
	if cfg.S3Bucket != "" && cfg.S3AccessKey != "" {
		return NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey)
	}
	log.Info("no S3 bucket configured, using mock blob store")
	return NewMockStore()
}
