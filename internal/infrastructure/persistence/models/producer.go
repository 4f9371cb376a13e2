package models

import (
	"github.com/agro/backend/internal/domain/producer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProducerModel is the persistence model for the Producer aggregate root.
type ProducerModel struct {
	AggregateModel
	Name           string          `gorm:"type:varchar(200);not null;index"`
	Document       string          `gorm:"type:varchar(14);not null;uniqueIndex:idx_producers_document"`
	FarmName       string          `gorm:"type:varchar(200);not null"`
	City           string          `gorm:"type:varchar(120);not null"`
	State          string          `gorm:"type:char(2);not null;index"`
	TotalArea      decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	ArableArea     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	VegetationArea decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Harvests       []HarvestModel  `gorm:"foreignKey:ProducerID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProducerModel) TableName() string {
	return "producers"
}

// ToDomain converts the persistence model to a domain Producer aggregate.
func (m *ProducerModel) ToDomain() *producer.Producer {
	p := &producer.Producer{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Document:          m.Document,
		FarmName:          m.FarmName,
		City:              m.City,
		State:             m.State,
		TotalArea:         m.TotalArea,
		ArableArea:        m.ArableArea,
		VegetationArea:    m.VegetationArea,
		Harvests:          make([]producer.Harvest, len(m.Harvests)),
	}
	for i := range m.Harvests {
		p.Harvests[i] = m.Harvests[i].ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Producer aggregate.
func (m *ProducerModel) FromDomain(p *producer.Producer) {
	m.AggregateModel = aggregateModelOf(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Document = p.Document
	m.FarmName = p.FarmName
	m.City = p.City
	m.State = p.State
	m.TotalArea = p.TotalArea
	m.ArableArea = p.ArableArea
	m.VegetationArea = p.VegetationArea
	m.Harvests = make([]HarvestModel, len(p.Harvests))
	for i := range p.Harvests {
		m.Harvests[i] = *HarvestModelFromDomain(&p.Harvests[i])
	}
}

// ProducerModelFromDomain creates a new persistence model from a domain Producer.
func ProducerModelFromDomain(p *producer.Producer) *ProducerModel {
	m := &ProducerModel{}
	m.FromDomain(p)
	return m
}

// HarvestModel is the persistence model for one year of a producer's harvests.
type HarvestModel struct {
	BaseModel
	ProducerID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_harvests_producer_year,priority:1"`
	Year       int                `gorm:"not null;uniqueIndex:idx_harvests_producer_year,priority:2;index"`
	Crops      []HarvestCropModel `gorm:"foreignKey:HarvestID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (HarvestModel) TableName() string {
	return "harvests"
}

// ToDomain converts the persistence model to a domain Harvest.
func (m *HarvestModel) ToDomain() producer.Harvest {
	h := producer.Harvest{
		BaseEntity: m.entity(),
		ProducerID: m.ProducerID,
		Year:       m.Year,
		Crops:      make([]producer.HarvestCrop, len(m.Crops)),
	}
	for i := range m.Crops {
		h.Crops[i] = m.Crops[i].ToDomain()
	}
	return h
}

// HarvestModelFromDomain creates a persistence model from a domain Harvest.
func HarvestModelFromDomain(h *producer.Harvest) *HarvestModel {
	m := &HarvestModel{
		ProducerID: h.ProducerID,
		Year:       h.Year,
		Crops:      make([]HarvestCropModel, len(h.Crops)),
	}
	m.BaseModel = baseModelOf(h.BaseEntity)
	for i := range h.Crops {
		m.Crops[i] = *HarvestCropModelFromDomain(&h.Crops[i])
	}
	return m
}

// HarvestCropModel is the persistence model for a crop planted in a harvest.
type HarvestCropModel struct {
	BaseModel
	HarvestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_harvest_crops_harvest_name,priority:1"`
	CropName  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_harvest_crops_harvest_name,priority:2;index"`
}

// TableName returns the table name for GORM
func (HarvestCropModel) TableName() string {
	return "harvest_crops"
}

// ToDomain converts the persistence model to a domain HarvestCrop.
func (m *HarvestCropModel) ToDomain() producer.HarvestCrop {
	return producer.HarvestCrop{
		BaseEntity: m.entity(),
		HarvestID:  m.HarvestID,
		CropName:   m.CropName,
	}
}

// HarvestCropModelFromDomain creates a persistence model from a domain HarvestCrop.
func HarvestCropModelFromDomain(c *producer.HarvestCrop) *HarvestCropModel {
	m := &HarvestCropModel{
		HarvestID: c.HarvestID,
		CropName:  c.CropName,
	}
	m.BaseModel = baseModelOf(c.BaseEntity)
	return m
}

// AllModels lists the models managed by auto-migration in dependency order
func AllModels() []any {
	return []any{&ProducerModel{}, &HarvestModel{}, &HarvestCropModel{}}
}
