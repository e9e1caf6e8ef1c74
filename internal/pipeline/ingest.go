package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/pkg/utils"
)

var plants = []string{"Plant_ATL", "Plant_NYC", "Plant_CHI", "Plant_LA", "Plant_MIA"}
var products = []string{"Product_A", "Product_B", "Product_C", "Product_D", "Product_E"}

// GeneratePlantData simulates one batch of manufacturing plant records, one
// per hour over the last week. A small share of records carries seeded
// quality issues: ~5% missing quality_score, ~3% out-of-range temperature.
func GeneratePlantData(numRecords int) []model.ProcessedRecord {
	base := time.Now().UTC().Add(-7 * 24 * time.Hour)

	records := make([]model.ProcessedRecord, 0, numRecords)
	for i := 0; i < numRecords; i++ {
		rec := model.ProcessedRecord{
			"record_id":         fmt.Sprintf("REC_%06d", i),
			"plant_id":          plants[rand.Intn(len(plants))],
			"product":           products[rand.Intn(len(products))],
			"production_volume": utils.Round2(5000 + rand.Float64()*10000),
			"quality_score":     utils.Round2(85 + rand.Float64()*15),
			"downtime_minutes":  rand.Intn(121),
			"batch_id":          fmt.Sprintf("BATCH_%d", 1000+rand.Intn(9000)),
			"temperature":       utils.Round2(2 + rand.Float64()*6),
			"ph_level":          utils.Round2(2.8 + rand.Float64()*0.7),
			"timestamp":         base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			"operator_id":       fmt.Sprintf("OP_%d", 100+rand.Intn(900)),
		}
		if rand.Float64() < 0.05 {
			rec["quality_score"] = nil
		}
		if rand.Float64() < 0.03 {
			rec["temperature"] = utils.Round2(15 + rand.Float64()*10)
		}
		records = append(records, rec)
	}
	return records
}
