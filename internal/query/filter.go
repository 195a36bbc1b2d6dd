// Package query builds the composable filter, sort, and pagination pieces
// of resource list queries. Every user-supplied value is bound as a query
// parameter; column names only ever come from the allow-list in sort.go.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// TagMatch is one parsed key:value pair from a tag filter expression.
type TagMatch struct {
	Key   string
	Value string
}

// ParseTagFilter parses a comma-separated list of key:value pairs, e.g.
// "Environment:Production,Owner:IT". Pairs without a colon or with an empty
// key are ignored rather than treated as errors.
func ParseTagFilter(expr string) []TagMatch {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	var matches []TagMatch
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		matches = append(matches, TagMatch{Key: key, Value: strings.TrimSpace(value)})
	}
	return matches
}

// Filters holds the optional list filters. Zero values mean "not applied".
type Filters struct {
	Search          string
	Type            string
	Location        string
	Environment     string
	Vendor          string
	SubscriptionID  *int64
	ResourceGroupID *int64
	Tags            string
}

// Scope returns a gorm scope applying all present filters, AND-combined.
// Tag pairs each become an EXISTS probe against resource_tag: the key must
// match exactly and the value case-insensitively contains the given text,
// so a resource matches only when every pair matches.
func (f Filters) Scope() func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Search != "" {
			tx = tx.Where("resource.name ILIKE ?", Contains(f.Search))
		}
		if f.Type != "" {
			tx = tx.Where("resource.type = ?", f.Type)
		}
		if f.Location != "" {
			tx = tx.Where("resource.location = ?", f.Location)
		}
		if f.Environment != "" {
			tx = tx.Where("resource.environment = ?", f.Environment)
		}
		if f.Vendor != "" {
			tx = tx.Where("resource.vendor = ?", f.Vendor)
		}
		if f.SubscriptionID != nil {
			tx = tx.Where("resource.subscription_id = ?", *f.SubscriptionID)
		}
		if f.ResourceGroupID != nil {
			tx = tx.Where("resource.resource_group_id = ?", *f.ResourceGroupID)
		}
		for _, m := range ParseTagFilter(f.Tags) {
			tx = tx.Where(
				"EXISTS (SELECT 1 FROM resource_tag rt WHERE rt.resource_id = resource.id AND rt.key = ? AND rt.value ILIKE ?)",
				m.Key, Contains(m.Value),
			)
		}
		return tx
	}
}

// Contains wraps a value for a substring ILIKE match, escaping the
// wildcard characters so user input is matched literally.
func Contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
