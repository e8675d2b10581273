package engagement

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL the client uses to talk to object storage directly
type PresignedURL struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// ObjectStorage holds file bodies. Implementations live in infrastructure/storage.
type ObjectStorage interface {
	PresignPut(ctx context.Context, key, contentType string) (PresignedURL, error)
	PresignGet(ctx context.Context, key, downloadName string) (PresignedURL, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
