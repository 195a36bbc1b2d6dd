package query

import (
	"strings"

	appErr "github.com/techstock/inventory/pkg/errors"
)

// sortColumns is the allow-list of sortable fields. Requested fields are
// resolved through this map and never interpolated into SQL directly.
var sortColumns = map[string]string{
	"name":        "name",
	"type":        "type",
	"location":    "location",
	"environment": "environment",
	"vendor":      "vendor",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

// Sort is a validated ordering: a known column plus direction.
type Sort struct {
	Column string
	Desc   bool
}

// DefaultSort orders by creation time, newest first.
var DefaultSort = Sort{Column: "created_at", Desc: true}

// ResolveSort validates the requested field against the allow-list and
// normalizes the direction ("asc" when empty). An unknown field or direction
// is a validation error and never reaches the query layer.
func ResolveSort(field, direction string) (Sort, error) {
	var desc bool
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
		desc = false
	case "desc":
		desc = true
	default:
		return Sort{}, appErr.Newf(appErr.CodeInvalid, "invalid sort direction %q: must be asc or desc", direction)
	}

	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return DefaultSort, nil
	}
	column, ok := sortColumns[strings.ToLower(trimmed)]
	if !ok {
		return Sort{}, appErr.Newf(appErr.CodeInvalid, "invalid sort field %q", field)
	}
	return Sort{Column: column, Desc: desc}, nil
}

// OrderClause renders the ORDER BY expression. Safe by construction: Column
// is always one of sortColumns' values.
func (s Sort) OrderClause() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}
