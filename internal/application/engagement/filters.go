package engagement

import (
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// applyIDFilters parses optional UUID query values into the filter
func applyIDFilters(filter shared.Filter, ids map[string]string) error {
	for key, raw := range ids {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return shared.Validation("Invalid " + key)
		}
		filter.Filters[key] = id
	}
	return nil
}
