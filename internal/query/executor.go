package query

import (
	"fmt"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/pkg/utils"
)

// MaxRows caps every query result, matching the dashboard's table size
const MaxRows = 100

// Execute runs a structured query over processed records and returns a flat
// tabular result. Malformed or parameterless group_by requests return an
// empty result set rather than an error so the UI stays usable.
func Execute(req model.QueryRequest, records []model.ProcessedRecord) model.QueryResult {
	switch req.Type {
	case model.QuerySelectAll:
		return selectAll(records)
	case model.QueryGroupBy:
		if req.GroupField == "" || req.AggField == "" {
			return emptyResult()
		}
		return groupBy(req, records)
	default:
		return emptyResult()
	}
}

func emptyResult() model.QueryResult {
	return model.QueryResult{Columns: []string{}, Rows: []model.ProcessedRecord{}, RowCount: 0}
}

// selectAll returns records in storage order up to MaxRows, with columns in
// first-seen key order across the batch
func selectAll(records []model.ProcessedRecord) model.QueryResult {
	if len(records) > MaxRows {
		records = records[:MaxRows]
	}

	var columns []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	if columns == nil {
		return emptyResult()
	}

	rows := make([]model.ProcessedRecord, len(records))
	copy(rows, records)
	return model.QueryResult{Columns: columns, Rows: rows, RowCount: len(rows)}
}

type partition struct {
	key   interface{}
	sum   float64
	count int
}

// groupBy partitions records by the group field in first-seen order and
// aggregates the agg field within each partition. Missing or non-numeric
// values are excluded; a partition with nothing to aggregate is omitted.
func groupBy(req model.QueryRequest, records []model.ProcessedRecord) model.QueryResult {
	index := make(map[string]*partition)
	var order []string

	for _, rec := range records {
		groupVal, ok := rec[req.GroupField]
		if !ok {
			continue
		}
		key := fmt.Sprintf("%v", groupVal)
		part, exists := index[key]
		if !exists {
			part = &partition{key: groupVal}
			index[key] = part
			order = append(order, key)
		}
		if num, numeric := utils.Numeric(rec[req.AggField]); numeric {
			part.sum += num
			part.count++
		}
	}

	rows := make([]model.ProcessedRecord, 0, len(order))
	for _, key := range order {
		part := index[key]
		if part.count == 0 {
			continue
		}
		var agg float64
		switch req.AggFunc {
		case model.AggAvg:
			agg = part.sum / float64(part.count)
		case model.AggCount:
			agg = float64(part.count)
		default: // sum
			agg = part.sum
		}
		rows = append(rows, model.ProcessedRecord{
			req.GroupField: part.key,
			req.AggField:   utils.Round2(agg),
		})
	}

	if len(rows) > MaxRows {
		rows = rows[:MaxRows]
	}
	return model.QueryResult{
		Columns:  []string{req.GroupField, req.AggField},
		Rows:     rows,
		RowCount: len(rows),
	}
}
