package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	appengagement "github.com/salescrm/backend/internal/application/engagement"
)

var _ appengagement.ObjectStorage = (*StubStorage)(nil)

// StubStorage stands in for object storage when none is configured.
// It hands out fake URLs and remembers keys marked as uploaded so the confirm flow can run.
type StubStorage struct {
	BaseURL string
	// AssumeUploaded makes ObjectExists report true for every key
	AssumeUploaded bool

	mu      sync.RWMutex
	objects map[string]struct{}
}

// NewStubStorage creates a stub that reports every object as present
func NewStubStorage() *StubStorage {
	return &StubStorage{
		BaseURL:        "https://storage.invalid",
		AssumeUploaded: true,
		objects:        make(map[string]struct{}),
	}
}

// Put records key as uploaded
func (s *StubStorage) Put(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = struct{}{}
}

func (s *StubStorage) PresignPut(_ context.Context, key, contentType string) (appengagement.PresignedURL, error) {
	if key == "" {
		return appengagement.PresignedURL{}, errors.New("storage key is required")
	}
	return appengagement.PresignedURL{
		URL:       s.BaseURL + "/upload/" + url.PathEscape(key),
		Method:    http.MethodPut,
		Headers:   map[string]string{"Content-Type": contentType},
		ExpiresAt: time.Now().Add(DefaultPresignExpiry),
	}, nil
}

func (s *StubStorage) PresignGet(_ context.Context, key, _ string) (appengagement.PresignedURL, error) {
	if key == "" {
		return appengagement.PresignedURL{}, errors.New("storage key is required")
	}
	return appengagement.PresignedURL{
		URL:       s.BaseURL + "/download/" + url.PathEscape(key),
		Method:    http.MethodGet,
		ExpiresAt: time.Now().Add(DefaultPresignExpiry),
	}, nil
}

func (s *StubStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	if s.AssumeUploaded {
		return true, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *StubStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
