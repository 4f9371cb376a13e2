package report

import (
	"github.com/agro/backend/internal/domain/report"
)

// SoilUseResponse represents land use totals in hectares
type SoilUseResponse struct {
	TotalArea      float64 `json:"total_area"`
	ArableArea     float64 `json:"arable_area"`
	VegetationArea float64 `json:"vegetation_area"`
}

// DashboardResponse represents the dashboard in API responses
type DashboardResponse struct {
	TotalFarms     int                    `json:"total_farms"`
	TotalArea      float64                `json:"total_area"`
	StateCount     map[string]int         `json:"state_count"`
	CropCount      map[string]int         `json:"crop_count"`
	HarvestsByYear map[int]map[string]int `json:"harvests_by_year"`
	SoilUse        SoilUseResponse        `json:"soil_use"`
}

// ToDashboardResponse converts a domain summary to its response form
func ToDashboardResponse(s *report.DashboardSummary) *DashboardResponse {
	return &DashboardResponse{
		TotalFarms:     s.TotalFarms,
		TotalArea:      s.TotalArea.InexactFloat64(),
		StateCount:     s.StateCount,
		CropCount:      s.CropCount,
		HarvestsByYear: s.HarvestsByYear,
		SoilUse: SoilUseResponse{
			TotalArea:      s.SoilUse.TotalArea.InexactFloat64(),
			ArableArea:     s.SoilUse.ArableArea.InexactFloat64(),
			VegetationArea: s.SoilUse.VegetationArea.InexactFloat64(),
		},
	}
}
