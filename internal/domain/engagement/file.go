package engagement

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// MaxFileSize is the largest accepted upload (50 MiB)
const MaxFileSize int64 = 50 << 20

// FileStatus tracks the upload lifecycle
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
)

// File is an object stored in object storage and attached to CRM records
type File struct {
	shared.WorkspaceEntity
	Name        string     `gorm:"type:varchar(255);not null"`
	StorageKey  string     `gorm:"type:varchar(500);not null;uniqueIndex"`
	ContentType string     `gorm:"type:varchar(150);not null"`
	SizeBytes   int64      `gorm:"not null"`
	Status      FileStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedBy  *uuid.UUID `gorm:"type:uuid"`
	DealID      *uuid.UUID `gorm:"type:uuid;index"`
	ContactID   *uuid.UUID `gorm:"type:uuid;index"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (File) TableName() string {
	return "files"
}

// NewFile creates a pending file record with a storage key under the workspace prefix
func NewFile(workspaceID uuid.UUID, name, contentType string, size int64, links Links, uploadedBy *uuid.UUID) (*File, error) {
	name = sanitizeFileName(name)
	if name == "" {
		return nil, shared.Validation("File name is required")
	}
	if size <= 0 {
		return nil, shared.Validation("File size must be greater than zero")
	}
	if size > MaxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the 50 MiB limit")
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f := &File{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		Name:            name,
		ContentType:     contentType,
		SizeBytes:       size,
		Status:          FileStatusPending,
		UploadedBy:      uploadedBy,
		DealID:          links.DealID,
		ContactID:       links.ContactID,
		CompanyID:       links.CompanyID,
	}
	f.StorageKey = path.Join(workspaceID.String(), time.Now().UTC().Format("2006/01"), f.ID.String()+"-"+name)
	return f, nil
}

// MarkUploaded records that the object now exists in storage
func (f *File) MarkUploaded() error {
	if f.Status == FileStatusUploaded {
		return shared.NewDomainError("INVALID_STATE", "File is already uploaded")
	}
	f.Status = FileStatusUploaded
	f.Touch()
	return nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if len(name) > 200 {
		name = name[len(name)-200:]
	}
	return name
}
