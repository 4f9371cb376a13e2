package report

import (
	"github.com/agro/backend/internal/domain/producer"
	"github.com/shopspring/decimal"
)

// SoilUse sums the land figures of every farm
type SoilUse struct {
	TotalArea      decimal.Decimal `json:"total_area"`
	ArableArea     decimal.Decimal `json:"arable_area"`
	VegetationArea decimal.Decimal `json:"vegetation_area"`
}

// DashboardSummary is the aggregate view over all producers
type DashboardSummary struct {
	TotalFarms     int                    `json:"total_farms"`
	TotalArea      decimal.Decimal        `json:"total_area"`
	StateCount     map[string]int         `json:"state_count"`
	CropCount      map[string]int         `json:"crop_count"`
	HarvestsByYear map[int]map[string]int `json:"harvests_by_year"`
	SoilUse        SoilUse                `json:"soil_use"`
}

// NewDashboardSummary returns a zero summary with all maps allocated
func NewDashboardSummary() *DashboardSummary {
	return &DashboardSummary{
		TotalArea:      decimal.Zero,
		StateCount:     make(map[string]int),
		CropCount:      make(map[string]int),
		HarvestsByYear: make(map[int]map[string]int),
		SoilUse: SoilUse{
			TotalArea:      decimal.Zero,
			ArableArea:     decimal.Zero,
			VegetationArea: decimal.Zero,
		},
	}
}

// Summarize aggregates a snapshot of producers.
// Crop counts are numbers of distinct producers, so a producer growing the same
// crop in several years counts once in CropCount and once per year in HarvestsByYear.
// A harvest year without crops still appears in HarvestsByYear, with no counts.
// The result does not depend on the order of producers.
func Summarize(producers []producer.Producer) *DashboardSummary {
	s := NewDashboardSummary()

	for i := range producers {
		p := &producers[i]
		s.TotalFarms++
		s.TotalArea = s.TotalArea.Add(p.TotalArea)
		s.StateCount[p.State]++
		s.SoilUse.ArableArea = s.SoilUse.ArableArea.Add(p.ArableArea)
		s.SoilUse.VegetationArea = s.SoilUse.VegetationArea.Add(p.VegetationArea)

		grown := make(map[string]struct{})
		perYear := make(map[int]map[string]struct{})
		for _, h := range p.Harvests {
			if perYear[h.Year] == nil {
				perYear[h.Year] = make(map[string]struct{})
			}
			for _, c := range h.Crops {
				grown[c.CropName] = struct{}{}
				perYear[h.Year][c.CropName] = struct{}{}
			}
		}

		for crop := range grown {
			s.CropCount[crop]++
		}
		for year, crops := range perYear {
			if s.HarvestsByYear[year] == nil {
				s.HarvestsByYear[year] = make(map[string]int)
			}
			for crop := range crops {
				s.HarvestsByYear[year][crop]++
			}
		}
	}

	s.SoilUse.TotalArea = s.TotalArea
	return s
}
