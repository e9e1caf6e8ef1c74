package pipeline

import (
	"fmt"
	"strings"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/pkg/utils"
)

// Apply runs the pipeline's transformation steps over a batch in slice
// order. Unknown step types are skipped, matching the tolerant behavior the
// dashboard expects from ad-hoc pipeline definitions.
func Apply(records []model.ProcessedRecord, steps []model.Transformation) ([]model.ProcessedRecord, error) {
	out := records
	for _, step := range steps {
		switch step.Type {
		case "filter":
			if step.Condition == nil {
				return nil, model.Validationf("filter transformation requires a condition")
			}
			out = filterRecords(out, *step.Condition)
		case "aggregate":
			if len(step.GroupBy) == 0 || step.Field == "" {
				return nil, model.Validationf("aggregate transformation requires group_by and field")
			}
			out = aggregateRecords(out, step.GroupBy, step.Field, step.Function)
		case "remove_nulls":
			out = removeNulls(out)
		case "deduplicate":
			out = deduplicate(out, step.KeyFields)
		}
	}
	return out, nil
}

// filterRecords keeps records whose field satisfies the comparison. Ordering
// operators need numeric values on both sides; a record that cannot be
// compared is dropped.
func filterRecords(records []model.ProcessedRecord, cond model.FilterCondition) []model.ProcessedRecord {
	out := make([]model.ProcessedRecord, 0, len(records))
	for _, rec := range records {
		if matchFilter(rec, cond) {
			out = append(out, rec)
		}
	}
	return out
}

func matchFilter(rec model.ProcessedRecord, cond model.FilterCondition) bool {
	val, ok := rec[cond.Field]
	if !ok {
		return false
	}

	switch cond.Operator {
	case ">", "<":
		left, leftOK := utils.Numeric(val)
		right, rightOK := utils.Numeric(cond.Value)
		if !leftOK || !rightOK {
			return false
		}
		if cond.Operator == ">" {
			return left > right
		}
		return left < right
	case "==", "!=":
		equal := valuesEqual(val, cond.Value)
		if cond.Operator == "==" {
			return equal
		}
		return !equal
	default:
		return false
	}
}

func valuesEqual(a, b interface{}) bool {
	if na, okA := utils.Numeric(a); okA {
		if nb, okB := utils.Numeric(b); okB {
			return na == nb
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// aggregateRecords groups by one or more fields (first-seen order) and
// reduces the target field with sum, avg, or count
func aggregateRecords(records []model.ProcessedRecord, groupBy []string, field, function string) []model.ProcessedRecord {
	type group struct {
		keys  map[string]interface{}
		sum   float64
		count int
	}

	index := make(map[string]*group)
	var order []string

	for _, rec := range records {
		keyParts := make([]string, 0, len(groupBy))
		keys := make(map[string]interface{}, len(groupBy))
		for _, gb := range groupBy {
			keys[gb] = rec[gb]
			keyParts = append(keyParts, fmt.Sprintf("%v", rec[gb]))
		}
		key := strings.Join(keyParts, "\x1f")

		g, exists := index[key]
		if !exists {
			g = &group{keys: keys}
			index[key] = g
			order = append(order, key)
		}
		if num, ok := utils.Numeric(rec[field]); ok {
			g.sum += num
			g.count++
		}
	}

	out := make([]model.ProcessedRecord, 0, len(order))
	for _, key := range order {
		g := index[key]
		rec := model.ProcessedRecord{}
		for name, val := range g.keys {
			rec[name] = val
		}
		switch function {
		case "avg":
			if g.count == 0 {
				continue
			}
			rec[field] = utils.Round2(g.sum / float64(g.count))
		case "count":
			rec[field] = g.count
		default: // sum
			rec[field] = utils.Round2(g.sum)
		}
		out = append(out, rec)
	}
	return out
}

// removeNulls drops any record with a nil field value
func removeNulls(records []model.ProcessedRecord) []model.ProcessedRecord {
	out := make([]model.ProcessedRecord, 0, len(records))
	for _, rec := range records {
		clean := true
		for _, val := range rec {
			if val == nil {
				clean = false
				break
			}
		}
		if clean {
			out = append(out, rec)
		}
	}
	return out
}

// deduplicate keeps the first record per key-field combination. With no key
// fields the batch passes through unchanged.
func deduplicate(records []model.ProcessedRecord, keyFields []string) []model.ProcessedRecord {
	if len(keyFields) == 0 {
		return records
	}
	seen := make(map[string]bool)
	out := make([]model.ProcessedRecord, 0, len(records))
	for _, rec := range records {
		parts := make([]string, 0, len(keyFields))
		for _, kf := range keyFields {
			parts = append(parts, fmt.Sprintf("%v", rec[kf]))
		}
		key := strings.Join(parts, "\x1f")
		if !seen[key] {
			seen[key] = true
			out = append(out, rec)
		}
	}
	return out
}
