package engagement

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T, ws uuid.UUID) *engagement.File {
	t.Helper()
	deal := uuid.New()
	f, err := engagement.NewFile(ws, "proposal.pdf", "application/pdf", 2048, engagement.Links{DealID: &deal}, nil)
	require.NoError(t, err)
	return f
}

func TestFileService_RequestUpload(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws, deal := uuid.New(), uuid.New()
	signed := PresignedURL{URL: "https://bucket.example/put", Method: "PUT", ExpiresAt: time.Now().Add(15 * time.Minute)}

	storage.On("PresignPut", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, ws.String()+"/") && strings.HasSuffix(key, "-contract.pdf")
	}), "application/pdf").Return(signed, nil)
	files.On("Save", ctx, mock.AnythingOfType("*engagement.File")).Return(nil)

	resp, err := svc.RequestUpload(ctx, ws, RequestUploadRequest{
		Name:        "contract.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		LinkInput:   LinkInput{DealID: &deal},
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.File.Status)
	assert.Equal(t, signed, resp.Upload)
	assert.Equal(t, &deal, resp.File.DealID)
}

func TestFileService_RequestUpload_TooLarge(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)

	_, err := svc.RequestUpload(context.Background(), uuid.New(), RequestUploadRequest{
		Name: "video.mp4",
		Size: engagement.MaxFileSize + 1,
	})

	assert.ErrorIs(t, err, shared.NewDomainError("FILE_TOO_LARGE", ""))
	storage.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything, mock.Anything)
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFileService_ConfirmUpload(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws := uuid.New()
	f := newTestFile(t, ws)

	files.On("FindByIDForWorkspace", ctx, ws, f.ID).Return(f, nil)
	storage.On("ObjectExists", ctx, f.StorageKey).Return(true, nil)
	files.On("Save", ctx, f).Return(nil)

	resp, err := svc.ConfirmUpload(ctx, ws, f.ID)

	require.NoError(t, err)
	assert.Equal(t, "uploaded", resp.Status)
}

func TestFileService_ConfirmUpload_ObjectMissing(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws := uuid.New()
	f := newTestFile(t, ws)

	files.On("FindByIDForWorkspace", ctx, ws, f.ID).Return(f, nil)
	storage.On("ObjectExists", ctx, f.StorageKey).Return(false, nil)

	_, err := svc.ConfirmUpload(ctx, ws, f.ID)

	assert.ErrorIs(t, err, ErrObjectMissing)
	assert.Equal(t, engagement.FileStatusPending, f.Status)
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFileService_GetDownloadURL(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws := uuid.New()
	f := newTestFile(t, ws)
	require.NoError(t, f.MarkUploaded())
	signed := PresignedURL{URL: "https://bucket.example/get", Method: "GET"}

	files.On("FindByIDForWorkspace", ctx, ws, f.ID).Return(f, nil)
	storage.On("PresignGet", ctx, f.StorageKey, "proposal.pdf").Return(signed, nil)

	resp, err := svc.GetDownloadURL(ctx, ws, f.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/get", resp.Download.URL)
}

func TestFileService_GetDownloadURL_Pending(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws := uuid.New()
	f := newTestFile(t, ws)

	files.On("FindByIDForWorkspace", ctx, ws, f.ID).Return(f, nil)

	_, err := svc.GetDownloadURL(ctx, ws, f.ID)

	assert.ErrorIs(t, err, ErrObjectMissing)
}

func TestFileService_DeleteFile(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws := uuid.New()
	f := newTestFile(t, ws)

	files.On("FindByIDForWorkspace", ctx, ws, f.ID).Return(f, nil)
	storage.On("Delete", ctx, f.StorageKey).Return(nil)
	files.On("DeleteForWorkspace", ctx, ws, f.ID).Return(nil)

	require.NoError(t, svc.DeleteFile(ctx, ws, f.ID))
	files.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_DeleteFile_StorageFailureKeepsRow(t *testing.T) {
	files, storage := new(MockFileRepository), new(MockObjectStorage)
	svc := NewFileService(files, storage)
	ctx := context.Background()
	ws := uuid.New()
	f := newTestFile(t, ws)
	boom := errors.New("s3 unavailable")

	files.On("FindByIDForWorkspace", ctx, ws, f.ID).Return(f, nil)
	storage.On("Delete", ctx, f.StorageKey).Return(boom)

	err := svc.DeleteFile(ctx, ws, f.ID)

	assert.ErrorIs(t, err, boom)
	files.AssertNotCalled(t, "DeleteForWorkspace", mock.Anything, mock.Anything, mock.Anything)
}
