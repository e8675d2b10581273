package engagement

import (
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
)

// LinkInput references the records an item is attached to
type LinkInput struct {
	DealID    *uuid.UUID `json:"deal_id"`
	ContactID *uuid.UUID `json:"contact_id"`
	CompanyID *uuid.UUID `json:"company_id"`
}

func (l LinkInput) links() engagement.Links {
	return engagement.Links{DealID: l.DealID, ContactID: l.ContactID, CompanyID: l.CompanyID}
}

// =============================================================================
// Task DTOs
// =============================================================================

// CreateTaskRequest creates a task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=10000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DealID      *uuid.UUID `json:"deal_id"`
	ContactID   *uuid.UUID `json:"contact_id"`
}

// UpdateTaskRequest changes a task. Omitted fields keep their value.
type UpdateTaskRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=10000"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status        *string    `json:"status" binding:"omitempty,oneof=todo in_progress"`
	DueDate       *time.Time `json:"due_date"`
	AssigneeID    *uuid.UUID `json:"assignee_id"`
	DealID        *uuid.UUID `json:"deal_id"`
	ContactID     *uuid.UUID `json:"contact_id"`
	ClearDueDate  bool       `json:"clear_due_date"`
	ClearAssignee bool       `json:"clear_assignee"`
}

// TaskListFilter filters tasks
type TaskListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID string `form:"assignee_id" binding:"omitempty,uuid"`
	DealID     string `form:"deal_id" binding:"omitempty,uuid"`
	ContactID  string `form:"contact_id" binding:"omitempty,uuid"`
	Overdue    bool   `form:"overdue"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TaskResponse is a task
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Overdue     bool       `json:"overdue"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DealID      *uuid.UUID `json:"deal_id,omitempty"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToTaskResponse converts a task, computing the overdue flag at now
func ToTaskResponse(t *engagement.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Overdue:     t.IsOverdue(now),
		AssigneeID:  t.AssigneeID,
		DealID:      t.DealID,
		ContactID:   t.ContactID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// =============================================================================
// Note DTOs
// =============================================================================

// CreateNoteRequest creates a note on a deal, contact or company
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
	LinkInput
	AuthorID *uuid.UUID `json:"-"`
}

// UpdateNoteRequest edits a note
type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// NoteListFilter filters notes
type NoteListFilter struct {
	DealID    string `form:"deal_id" binding:"omitempty,uuid"`
	ContactID string `form:"contact_id" binding:"omitempty,uuid"`
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	AuthorID  string `form:"author_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// NoteResponse is a note
type NoteResponse struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	DealID    *uuid.UUID `json:"deal_id,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToNoteResponse converts a note
func ToNoteResponse(n *engagement.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Content:   n.Content,
		AuthorID:  n.AuthorID,
		DealID:    n.DealID,
		ContactID: n.ContactID,
		CompanyID: n.CompanyID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// =============================================================================
// Activity DTOs
// =============================================================================

// LogActivityRequest records a timeline entry
type LogActivityRequest struct {
	Type        string     `json:"type" binding:"required,oneof=call email meeting note task deal"`
	Subject     string     `json:"subject" binding:"required,min=1,max=300"`
	Description string     `json:"description" binding:"max=10000"`
	OccurredAt  *time.Time `json:"occurred_at"`
	LinkInput
	UserID *uuid.UUID `json:"-"`
}

// ActivityListFilter filters activities
type ActivityListFilter struct {
	Type      string `form:"type" binding:"omitempty,oneof=call email meeting note task deal"`
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	DealID    string `form:"deal_id" binding:"omitempty,uuid"`
	ContactID string `form:"contact_id" binding:"omitempty,uuid"`
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ActivityResponse is a timeline entry
type ActivityResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	DealID      *uuid.UUID `json:"deal_id,omitempty"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToActivityResponse converts an activity
func ToActivityResponse(a *engagement.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		Subject:     a.Subject,
		Description: a.Description,
		UserID:      a.UserID,
		DealID:      a.DealID,
		ContactID:   a.ContactID,
		CompanyID:   a.CompanyID,
		OccurredAt:  a.OccurredAt,
		CreatedAt:   a.CreatedAt,
	}
}

// =============================================================================
// File DTOs
// =============================================================================

// RequestUploadRequest reserves a file and asks for an upload URL
type RequestUploadRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"max=150"`
	Size        int64  `json:"size" binding:"required,min=1"`
	LinkInput
	UploadedBy *uuid.UUID `json:"-"`
}

// FileListFilter filters files
type FileListFilter struct {
	DealID    string `form:"deal_id" binding:"omitempty,uuid"`
	ContactID string `form:"contact_id" binding:"omitempty,uuid"`
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending uploaded"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FileResponse is file metadata
type FileResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	Status      string     `json:"status"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	DealID      *uuid.UUID `json:"deal_id,omitempty"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToFileResponse converts file metadata
func ToFileResponse(f *engagement.File) FileResponse {
	return FileResponse{
		ID:          f.ID,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.SizeBytes,
		Status:      string(f.Status),
		UploadedBy:  f.UploadedBy,
		DealID:      f.DealID,
		ContactID:   f.ContactID,
		CompanyID:   f.CompanyID,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// UploadResponse is the pending file plus the URL to PUT the body to
type UploadResponse struct {
	File   FileResponse `json:"file"`
	Upload PresignedURL `json:"upload"`
}

// DownloadResponse is a presigned GET URL
type DownloadResponse struct {
	File     FileResponse `json:"file"`
	Download PresignedURL `json:"download"`
}
