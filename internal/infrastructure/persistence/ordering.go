package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

const defaultProducerOrderColumn = "created_at"

// producerOrderColumns maps accepted order_by values to columns. Both the
// column name and the camelCase API field name are accepted; anything else
// falls back to created_at so user input never reaches the ORDER BY clause.
var producerOrderColumns = map[string]string{
	"created_at":      "created_at",
	"updated_at":      "updated_at",
	"name":            "name",
	"farm_name":       "farm_name",
	"city":            "city",
	"state":           "state",
	"total_area":      "total_area",
	"arable_area":     "arable_area",
	"vegetation_area": "vegetation_area",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"farmName":        "farm_name",
	"totalArea":       "total_area",
	"arableArea":      "arable_area",
	"vegetationArea":  "vegetation_area",
}

// producerOrderColumn resolves orderBy against the allowlist
func producerOrderColumn(orderBy string) string {
	if col, ok := producerOrderColumns[strings.TrimSpace(orderBy)]; ok {
		return col
	}
	return defaultProducerOrderColumn
}

// descending reports whether orderDir asks for descending order. Only an
// explicit "asc" sorts ascending.
func descending(orderDir string) bool {
	return !strings.EqualFold(strings.TrimSpace(orderDir), "asc")
}

// producerOrder builds the ORDER BY clause for a producer listing. The id
// tiebreaker keeps pages stable when the sort column has duplicates.
func producerOrder(orderBy, orderDir string) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: producerOrderColumn(orderBy)}, Desc: descending(orderDir)},
		{Column: clause.Column{Name: "id"}},
	}}
}
