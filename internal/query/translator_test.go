package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-pipeline-dashboard/internal/model"
)

func TestTranslatePlantGroupBy(t *testing.T) {
	req := Translate("GROUP BY plant_id, SUM(production_volume)")

	assert.Equal(t, model.QueryGroupBy, req.Type)
	assert.Equal(t, "plant_id", req.GroupField)
	assert.Equal(t, "production_volume", req.AggField)
	assert.Equal(t, model.AggSum, req.AggFunc)
}

func TestTranslateIsCaseInsensitive(t *testing.T) {
	for _, text := range []string{
		"select plant_id from data group by plant_id",
		"SELECT PLANT_ID FROM DATA GROUP BY PLANT_ID",
		"GrOuP bY pLaNt_Id",
	} {
		req := Translate(text)
		assert.Equal(t, "plant_id", req.GroupField, "text: %s", text)
	}
}

func TestTranslatePlantTakesPrecedenceOverProduct(t *testing.T) {
	req := Translate("group by plant_id and product")

	assert.Equal(t, "plant_id", req.GroupField)
	assert.Equal(t, "production_volume", req.AggField)
}

func TestTranslateProductGroupBy(t *testing.T) {
	req := Translate("SELECT product, AVG(quality_score) GROUP BY product")

	assert.Equal(t, model.QueryGroupBy, req.Type)
	assert.Equal(t, "product", req.GroupField)
	assert.Equal(t, "quality_score", req.AggField)
	assert.Equal(t, model.AggAvg, req.AggFunc)
}

func TestTranslateBareGroupBy(t *testing.T) {
	req := Translate("group by warehouse")

	assert.Equal(t, model.QueryGroupBy, req.Type)
	assert.Empty(t, req.GroupField)
	assert.Empty(t, req.AggField)
}

func TestTranslateFallsThroughToSelectAll(t *testing.T) {
	for _, text := range []string{
		"SELECT * FROM processed_data",
		"show me everything",
		"",
		"plant_id without grouping",
	} {
		req := Translate(text)
		assert.Equal(t, model.QuerySelectAll, req.Type, "text: %s", text)
	}
}
