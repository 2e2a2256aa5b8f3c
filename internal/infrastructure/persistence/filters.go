package persistence

import (
	"strings"

	"github.com/seorganiza/backend/internal/domain/shared"
)

// sortableColumns are the columns callers may order by. Anything else
// falls back to the repository default, keeping user input out of SQL.
var sortableColumns = map[string]bool{
	"name":       true,
	"quantity":   true,
	"price":      true,
	"sold_at":    true,
	"total":      true,
	"username":   true,
	"created_at": true,
}

func orderClause(filter shared.Filter, fallback string) string {
	column := filter.OrderBy
	if !sortableColumns[column] {
		column = fallback
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return column + " " + dir
}

func limit(filter shared.Filter) int {
	if filter.PageSize < 1 {
		return 20
	}
	if filter.PageSize > 100 {
		return 100
	}
	return filter.PageSize
}

func offset(filter shared.Filter) int {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit(filter)
}
