package persistence

import (
	"errors"
	"slices"
	"strings"

	"github.com/salescrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

var (
	commonSortFields   = map[string]bool{"created_at": true, "updated_at": true}
	dealSortFields     = withCommon("title", "value", "position", "expected_close_date", "closed_at", "status")
	contactSortFields  = withCommon("first_name", "last_name", "email")
	companySortFields  = withCommon("name", "domain", "industry")
	taskSortFields     = withCommon("due_date", "priority", "status", "title")
	activitySortFields = withCommon("occurred_at", "type")
	templateSortFields = withCommon("name")
	emailLogSortFields = withCommon("sent_at", "status", "to_email")
	fileSortFields     = withCommon("name", "size_bytes")
)

func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(commonSortFields)+len(fields))
	for k := range commonSortFields {
		m[k] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// equalityFilters applies col = value for every filter key listed in columns.
// Keys are applied in sorted order so generated SQL is stable.
func equalityFilters(query *gorm.DB, filter shared.Filter, columns ...string) *gorm.DB {
	keys := make([]string, 0, len(filter.Filters))
	for k := range filter.Filters {
		if slices.Contains(columns, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		query = query.Where(k+" = ?", filter.Filters[k])
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes LIKE wildcards in user input match literally. Pair it with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// searchFilter matches the term case-insensitively against any of the columns
func searchFilter(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// paginate applies ordering and paging. Ordering falls back to defaultOrder when
// the requested field is not allowed.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	if field := ValidateSortField(filter.OrderBy, allowed, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(defaultOrder)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

// translateError maps GORM errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}

// deleteResult turns a delete with no affected rows into ErrNotFound
func deleteResult(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
