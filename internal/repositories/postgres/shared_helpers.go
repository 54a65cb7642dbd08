package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

// SharedHelpers contains query-building helpers used across repositories.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// jsonContains builds the argument for a JSONB `@>` containment check
// against a []string column.
func jsonContains(value string) string {
	return fmt.Sprintf(`[%q]`, value)
}

// ApplyQuestionFilters applies the question search filters to a query.
func (h *SharedHelpers) ApplyQuestionFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.ApprovedOnly {
		query = query.Where("is_approved = ?", true)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.Technology != nil {
		query = query.Where("technologies @> ?", jsonContains(*filters.Technology))
	}
	if filters.Company != nil {
		query = query.Where("companies @> ?", jsonContains(*filters.Company))
	}
	if filters.Role != nil {
		query = query.Where("roles @> ?", jsonContains(*filters.Role))
	}
	if filters.Search != nil {
		pattern := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	return query
}

// ApplyPaginationAndSort applies sorting and page/limit slicing. Sort
// columns are whitelisted; anything else falls back to created_at.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, page, limit int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"id":         true,
		"title":      true,
		"difficulty": true,
		"type":       true,
		"rating":     true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if page < 1 {
		page = 1
	}
	if limit > 0 {
		query = query.Limit(limit).Offset((page - 1) * limit)
	}

	return query
}
