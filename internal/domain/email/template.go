package email

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// Template is a reusable subject and body with {{variable}} placeholders
type Template struct {
	shared.WorkspaceEntity
	Name      string     `gorm:"type:varchar(150);not null"`
	Subject   string     `gorm:"type:varchar(300);not null"`
	Body      string     `gorm:"type:text;not null"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Template) TableName() string {
	return "email_templates"
}

// NewTemplate creates a template
func NewTemplate(workspaceID uuid.UUID, name, subject, body string, createdBy *uuid.UUID) (*Template, error) {
	t := &Template{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		CreatedBy:       createdBy,
	}
	if err := t.Update(name, subject, body); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the template content
func (t *Template) Update(name, subject, body string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validation("Template name is required")
	}
	if len(name) > 150 {
		return shared.Validation("Template name cannot exceed 150 characters")
	}
	if err := validateMessage(subject, body); err != nil {
		return err
	}
	t.Name = name
	t.Subject = strings.TrimSpace(subject)
	t.Body = body
	t.Touch()
	return nil
}

// Variables lists the distinct placeholder names used by the template, in order of appearance
func (t *Template) Variables() []string {
	return Placeholders(t.Subject + "\n" + t.Body)
}

// Render fills placeholders in subject and body
func (t *Template) Render(vars map[string]string) (subject, body string) {
	return Render(t.Subject, vars), Render(t.Body, vars)
}

// Render replaces every {{name}} in text. Unknown placeholders render empty.
func Render(text string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		return vars[name]
	})
}

// Placeholders returns the distinct placeholder names in text
func Placeholders(text string) []string {
	matches := placeholder.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

func validateMessage(subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return shared.Validation("Email subject is required")
	}
	if len(subject) > 300 {
		return shared.Validation("Email subject cannot exceed 300 characters")
	}
	if strings.TrimSpace(body) == "" {
		return shared.Validation("Email body is required")
	}
	return nil
}
