package models

import (
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel holds the id and timestamps shared by every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseModelOf(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (m BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// AggregateModel adds the aggregate version column
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func aggregateModelOf(a shared.BaseAggregateRoot) AggregateModel {
	return AggregateModel{BaseModel: baseModelOf(a.BaseEntity), Version: a.Version}
}

// aggregateRoot rebuilds the root; pending events are never stored
func (m AggregateModel) aggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.entity(), Version: m.Version}
}
