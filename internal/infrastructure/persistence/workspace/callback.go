// Package workspace guards GORM statements against cross-workspace access.
//
// Repositories filter on workspace_id explicitly. The callbacks registered here add the
// filter from the request context when a statement against a workspace-scoped table has
// none, and can refuse such statements outright when no workspace is known.
package workspace

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the workspace column carried by scoped tables
const Column = "workspace_id"

const skipKey = "workspace:skip"

var (
	// ErrWorkspaceRequired is returned when a scoped statement runs without a workspace
	ErrWorkspaceRequired = errors.New("workspace_id is required but not found in context")
	// ErrInvalidWorkspaceID is returned when the context carries a malformed workspace id
	ErrInvalidWorkspaceID = errors.New("invalid workspace_id format")
)

// Scope filters a query to one workspace
func Scope(workspaceID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(Column+" = ?", workspaceID)
	}
}

// Skip marks a statement as intentionally unscoped, e.g. API key lookup before the workspace is known
func Skip(db *gorm.DB) *gorm.DB {
	return db.Set(skipKey, true)
}

// Callback holds the guard configuration
type Callback struct {
	required bool
}

// Register installs the guard on query, row, update and delete statements.
// With required set, scoped statements without a workspace fail with ErrWorkspaceRequired.
func Register(db *gorm.DB, required bool) error {
	cb := &Callback{required: required}
	if err := db.Callback().Query().Before("gorm:query").Register("workspace:before_query", cb.apply); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("workspace:before_row", cb.apply); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("workspace:before_update", cb.apply); err != nil {
		return err
	}
	return db.Callback().Delete().Before("gorm:delete").Register("workspace:before_delete", cb.apply)
}

func (cb *Callback) apply(db *gorm.DB) {
	stmt := db.Statement
	if stmt.Schema == nil || stmt.Schema.LookUpField(Column) == nil {
		return
	}
	if skip, ok := db.Get(skipKey); ok && skip == true {
		return
	}
	if hasCondition(stmt) {
		return
	}

	raw := ""
	if stmt.Context != nil {
		raw = logger.GetWorkspaceID(stmt.Context)
	}
	if raw == "" {
		if cb.required {
			_ = db.AddError(ErrWorkspaceRequired)
		}
		return
	}
	workspaceID, err := uuid.Parse(raw)
	if err != nil {
		_ = db.AddError(ErrInvalidWorkspaceID)
		return
	}

	stmt.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: Column}, Value: workspaceID},
	}})
}

func hasCondition(stmt *gorm.Statement) bool {
	c, ok := stmt.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if mentions(expr) {
			return true
		}
	}
	return false
}

func mentions(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		return columnName(e.Column) == Column
	case clause.IN:
		return columnName(e.Column) == Column
	case clause.Expr:
		return strings.Contains(e.SQL, Column)
	case clause.NamedExpr:
		return strings.Contains(e.SQL, Column)
	case clause.AndConditions:
		for _, sub := range e.Exprs {
			if mentions(sub) {
				return true
			}
		}
	}
	return false
}

func columnName(col interface{}) string {
	switch c := col.(type) {
	case clause.Column:
		return c.Name
	case string:
		return c
	}
	return ""
}
