package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrObjectMissing is returned when an upload is confirmed before the object exists
var ErrObjectMissing = shared.NewDomainError("UPLOAD_INCOMPLETE", "The file has not been uploaded to storage yet")

// FileService issues presigned upload and download URLs and tracks file metadata.
// File bodies never pass through the API.
type FileService struct {
	files   engagement.FileRepository
	storage ObjectStorage
}

// NewFileService creates a FileService
func NewFileService(files engagement.FileRepository, storage ObjectStorage) *FileService {
	return &FileService{files: files, storage: storage}
}

// RequestUpload records a pending file and returns a presigned PUT URL for it
func (s *FileService) RequestUpload(ctx context.Context, workspaceID uuid.UUID, req RequestUploadRequest) (*UploadResponse, error) {
	f, err := engagement.NewFile(workspaceID, req.Name, req.ContentType, req.Size, req.links(), req.UploadedBy)
	if err != nil {
		return nil, err
	}
	upload, err := s.storage.PresignPut(ctx, f.StorageKey, f.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.files.Save(ctx, f); err != nil {
		return nil, err
	}
	return &UploadResponse{File: ToFileResponse(f), Upload: upload}, nil
}

// ConfirmUpload marks the file uploaded once the object is visible in storage
func (s *FileService) ConfirmUpload(ctx context.Context, workspaceID, id uuid.UUID) (*FileResponse, error) {
	f, err := s.files.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.storage.ObjectExists(ctx, f.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrObjectMissing
	}
	if err := f.MarkUploaded(); err != nil {
		return nil, err
	}
	if err := s.files.Save(ctx, f); err != nil {
		return nil, err
	}
	resp := ToFileResponse(f)
	return &resp, nil
}

// GetDownloadURL returns a presigned GET URL for an uploaded file
func (s *FileService) GetDownloadURL(ctx context.Context, workspaceID, id uuid.UUID) (*DownloadResponse, error) {
	f, err := s.files.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if f.Status != engagement.FileStatusUploaded {
		return nil, ErrObjectMissing
	}
	download, err := s.storage.PresignGet(ctx, f.StorageKey, f.Name)
	if err != nil {
		return nil, err
	}
	return &DownloadResponse{File: ToFileResponse(f), Download: download}, nil
}

// ListFiles lists file metadata
func (s *FileService) ListFiles(ctx context.Context, workspaceID uuid.UUID, f FileListFilter) (shared.Paginated[FileResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, "", "", "")
	if err := applyIDFilters(filter, map[string]string{
		"deal_id":    f.DealID,
		"contact_id": f.ContactID,
		"company_id": f.CompanyID,
	}); err != nil {
		return shared.Paginated[FileResponse]{}, err
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}

	list, err := s.files.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[FileResponse]{}, err
	}
	total, err := s.files.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[FileResponse]{}, err
	}
	items := make([]FileResponse, len(list))
	for i := range list {
		items[i] = ToFileResponse(&list[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// DeleteFile removes the stored object and then the metadata row.
// A storage failure keeps the row so the delete can be retried.
func (s *FileService) DeleteFile(ctx context.Context, workspaceID, id uuid.UUID) error {
	f, err := s.files.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
		logger.L(ctx).Warn("object delete failed",
			zap.String("file_id", f.ID.String()),
			zap.String("key", f.StorageKey),
			zap.Error(err),
		)
		return err
	}
	return s.files.DeleteForWorkspace(ctx, workspaceID, id)
}
