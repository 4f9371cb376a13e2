package producer

import (
	"time"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HarvestInput is one yearly crop report in a request
type HarvestInput struct {
	Year  int      `json:"year"`
	Crops []string `json:"crops"`
}

// CreateProducerRequest represents a request to register a producer
type CreateProducerRequest struct {
	Name           string
	Document       string
	FarmName       string
	City           string
	State          string
	TotalArea      decimal.Decimal
	ArableArea     decimal.Decimal
	VegetationArea decimal.Decimal
	Harvests       []HarvestInput
}

// UpdateProducerRequest represents a partial update of a producer.
// Harvests, when present, are merged into the existing ones.
type UpdateProducerRequest struct {
	Name           *string
	Document       *string
	FarmName       *string
	City           *string
	State          *string
	TotalArea      *decimal.Decimal
	ArableArea     *decimal.Decimal
	VegetationArea *decimal.Decimal
	Harvests       []HarvestInput
}

// ProducerListFilter represents filter options for the producer list
type ProducerListFilter struct {
	Search   string
	State    string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// HarvestCropResponse is a crop inside a harvest
type HarvestCropResponse struct {
	ID       uuid.UUID `json:"id"`
	CropName string    `json:"crop_name"`
}

// HarvestResponse represents a harvest in API responses
type HarvestResponse struct {
	ID         uuid.UUID             `json:"id"`
	ProducerID uuid.UUID             `json:"producer_id"`
	Year       int                   `json:"year"`
	Crops      []HarvestCropResponse `json:"crops"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// ProducerResponse represents a producer in API responses
type ProducerResponse struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Document       string            `json:"document"`
	DocumentKind   string            `json:"document_kind"`
	FarmName       string            `json:"farm_name"`
	City           string            `json:"city"`
	State          string            `json:"state"`
	TotalArea      decimal.Decimal   `json:"total_area"`
	ArableArea     decimal.Decimal   `json:"arable_area"`
	VegetationArea decimal.Decimal   `json:"vegetation_area"`
	Harvests       []HarvestResponse `json:"harvests"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        int               `json:"version"`
}

// ToHarvestResponse converts a domain Harvest to HarvestResponse
func ToHarvestResponse(h producer.Harvest) HarvestResponse {
	crops := make([]HarvestCropResponse, len(h.Crops))
	for i, c := range h.Crops {
		crops[i] = HarvestCropResponse{ID: c.ID, CropName: c.CropName}
	}
	return HarvestResponse{
		ID:         h.ID,
		ProducerID: h.ProducerID,
		Year:       h.Year,
		Crops:      crops,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}

// ToHarvestResponses converts harvests to responses
func ToHarvestResponses(harvests []producer.Harvest) []HarvestResponse {
	out := make([]HarvestResponse, len(harvests))
	for i, h := range harvests {
		out[i] = ToHarvestResponse(h)
	}
	return out
}

// ToProducerResponse converts a domain Producer to ProducerResponse
func ToProducerResponse(p *producer.Producer) ProducerResponse {
	return ProducerResponse{
		ID:             p.ID,
		Name:           p.Name,
		Document:       p.Document,
		DocumentKind:   string(p.DocumentKind()),
		FarmName:       p.FarmName,
		City:           p.City,
		State:          p.State,
		TotalArea:      p.TotalArea,
		ArableArea:     p.ArableArea,
		VegetationArea: p.VegetationArea,
		Harvests:       ToHarvestResponses(p.Harvests),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToProducerResponses converts a slice of producers to responses
func ToProducerResponses(producers []producer.Producer) []ProducerResponse {
	out := make([]ProducerResponse, len(producers))
	for i := range producers {
		out[i] = ToProducerResponse(&producers[i])
	}
	return out
}

func toReports(in []HarvestInput) []producer.HarvestReport {
	if in == nil {
		return nil
	}
	out := make([]producer.HarvestReport, len(in))
	for i, h := range in {
		out[i] = producer.HarvestReport{Year: h.Year, Crops: h.Crops}
	}
	return out
}
