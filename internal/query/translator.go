package query

import (
	"strings"

	"go-pipeline-dashboard/internal/model"
)

// Translate maps a free-form query string to a structured request. This is
// keyword detection over a fixed sample vocabulary, not a SQL parser:
// substring containment on the lowercased text decides the shape, and
// anything unrecognized falls through to select_all. plant_id takes
// precedence over product when both appear.
func Translate(text string) model.QueryRequest {
	lower := strings.ToLower(text)

	if !strings.Contains(lower, "group by") {
		return model.QueryRequest{Type: model.QuerySelectAll}
	}

	switch {
	case strings.Contains(lower, "plant_id"):
		return model.QueryRequest{
			Type:       model.QueryGroupBy,
			GroupField: "plant_id",
			AggField:   "production_volume",
			AggFunc:    model.AggSum,
		}
	case strings.Contains(lower, "product"):
		return model.QueryRequest{
			Type:       model.QueryGroupBy,
			GroupField: "product",
			AggField:   "quality_score",
			AggFunc:    model.AggAvg,
		}
	default:
		// group by with no recognized field, executor returns an empty set
		return model.QueryRequest{Type: model.QueryGroupBy}
	}
}
