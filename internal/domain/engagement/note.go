package engagement

import (
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// maxNoteLength caps note content
const maxNoteLength = 50000

// Note is free text attached to a deal, contact or company
type Note struct {
	shared.WorkspaceEntity
	Content   string     `gorm:"type:text;not null"`
	AuthorID  *uuid.UUID `gorm:"type:uuid"`
	DealID    *uuid.UUID `gorm:"type:uuid;index"`
	ContactID *uuid.UUID `gorm:"type:uuid;index"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Note) TableName() string {
	return "notes"
}

// Links identifies the records an engagement item is attached to
type Links struct {
	DealID    *uuid.UUID
	ContactID *uuid.UUID
	CompanyID *uuid.UUID
}

// IsEmpty reports whether no record is referenced
func (l Links) IsEmpty() bool {
	return l.DealID == nil && l.ContactID == nil && l.CompanyID == nil
}

// NewNote creates a note. At least one link is required.
func NewNote(workspaceID uuid.UUID, content string, links Links, authorID *uuid.UUID) (*Note, error) {
	if links.IsEmpty() {
		return nil, shared.Validation("A note must reference a deal, contact or company")
	}
	n := &Note{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		AuthorID:        authorID,
		DealID:          links.DealID,
		ContactID:       links.ContactID,
		CompanyID:       links.CompanyID,
	}
	if err := n.Edit(content); err != nil {
		return nil, err
	}
	return n, nil
}

// Edit replaces the content
func (n *Note) Edit(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.Validation("Note content is required")
	}
	if len(content) > maxNoteLength {
		return shared.Validation("Note content is too long")
	}
	n.Content = content
	n.Touch()
	return nil
}
