package model

// Query types emitted by the translator
const (
	QuerySelectAll = "select_all"
	QueryGroupBy   = "group_by"
)

// Aggregation functions understood by the query executor
const (
	AggSum   = "sum"
	AggAvg   = "avg"
	AggCount = "count"
)

// QueryRequest is the structured analytics query consumed by the executor.
// GroupField/AggField/AggFunc are only meaningful when Type is group_by.
type QueryRequest struct {
	Type       string `json:"type"`
	GroupField string `json:"group_field,omitempty"`
	AggField   string `json:"agg_field,omitempty"`
	AggFunc    string `json:"agg_func,omitempty"`
}

// QueryResult is a flat tabular result so presentation layers can render
// arbitrary columns without schema negotiation
type QueryResult struct {
	Columns  []string          `json:"columns"`
	Rows     []ProcessedRecord `json:"rows"`
	RowCount int               `json:"row_count"`
}
