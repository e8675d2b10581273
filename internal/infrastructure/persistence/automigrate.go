package persistence

import (
	"fmt"

	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&identity.User{},
		&identity.Workspace{},
		&identity.Member{},
		&identity.APIKey{},
		&sales.Pipeline{},
		&sales.Stage{},
		&contact.Company{},
		&contact.Contact{},
		&sales.Deal{},
		&sales.DealEvent{},
		&sales.Transcript{},
		&sales.RevenueItem{},
		&engagement.Task{},
		&engagement.Note{},
		&engagement.Activity{},
		&engagement.File{},
		&email.Template{},
		&email.Log{},
	}
}

// AutoMigrate creates the schema from the models. Used for sqlite, where the
// embedded postgres migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
