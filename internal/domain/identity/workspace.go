package identity

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCurrency is used for workspaces created without an explicit currency
const DefaultCurrency = "USD"

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	currencyCode   = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Workspace is the tenant boundary. Every CRM record belongs to exactly one workspace.
type Workspace struct {
	shared.BaseAggregateRoot
	Name     string    `gorm:"type:varchar(200);not null"`
	Slug     string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Currency string    `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (Workspace) TableName() string {
	return "workspaces"
}

// NewWorkspace creates a workspace owned by the given user.
// An empty slug is derived from the name.
func NewWorkspace(ownerID uuid.UUID, name, slug string) (*Workspace, error) {
	if ownerID == uuid.Nil {
		return nil, shared.Validation("Workspace owner is required")
	}
	name = strings.TrimSpace(name)
	if err := validateWorkspaceName(name); err != nil {
		return nil, err
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if !slugPattern.MatchString(slug) || len(slug) > 100 {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, digits and dashes")
	}

	ws := &Workspace{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		OwnerID:           ownerID,
		Currency:          DefaultCurrency,
	}
	ws.AddDomainEvent(NewWorkspaceCreatedEvent(ws))
	return ws, nil
}

// Rename changes the display name
func (w *Workspace) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateWorkspaceName(name); err != nil {
		return err
	}
	w.Name = name
	w.Touch()
	return nil
}

// SetCurrency sets the ISO-4217 currency used for new deals and reports
func (w *Workspace) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyCode.MatchString(currency) {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	w.Currency = currency
	w.Touch()
	return nil
}

func validateWorkspaceName(name string) error {
	if name == "" {
		return shared.Validation("Workspace name is required")
	}
	if len(name) > 200 {
		return shared.Validation("Workspace name cannot exceed 200 characters")
	}
	return nil
}

// Slugify turns a display name into a URL-safe slug, folding accents to ASCII
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	slug := slugSeparators.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 100 {
		slug = strings.Trim(slug[:100], "-")
	}
	if slug == "" {
		slug = "workspace"
	}
	return slug
}
