package engagement

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// ActivityType classifies timeline entries
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityNote    ActivityType = "note"
	ActivityTask    ActivityType = "task"
	ActivityDeal    ActivityType = "deal"
)

// IsValid reports whether a is a known activity type
func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote, ActivityTask, ActivityDeal:
		return true
	}
	return false
}

// Activity is an entry in the workspace timeline
type Activity struct {
	shared.WorkspaceEntity
	Type        ActivityType `gorm:"type:varchar(20);not null;index"`
	Subject     string       `gorm:"type:varchar(300);not null"`
	Description string       `gorm:"type:text"`
	UserID      *uuid.UUID   `gorm:"type:uuid;index"`
	DealID      *uuid.UUID   `gorm:"type:uuid;index"`
	ContactID   *uuid.UUID   `gorm:"type:uuid;index"`
	CompanyID   *uuid.UUID   `gorm:"type:uuid;index"`
	OccurredAt  time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

// maxSubjectRunes caps timeline subjects in characters, not bytes
const maxSubjectRunes = 300

// NewActivity creates a timeline entry. A zero occurredAt means now.
func NewActivity(workspaceID uuid.UUID, activityType ActivityType, subject string, occurredAt time.Time) (*Activity, error) {
	if !activityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Activity type must be call, email, meeting, note, task or deal")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, shared.Validation("Activity subject is required")
	}
	if utf8.RuneCountInString(subject) > maxSubjectRunes {
		subject = string([]rune(subject)[:maxSubjectRunes])
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &Activity{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		Type:            activityType,
		Subject:         subject,
		OccurredAt:      occurredAt,
	}, nil
}

// Link attaches the activity to records
func (a *Activity) Link(links Links) {
	a.DealID = links.DealID
	a.ContactID = links.ContactID
	a.CompanyID = links.CompanyID
}
