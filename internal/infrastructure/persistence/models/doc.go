// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: shared persistence fields (BaseModel, AggregateModel)
//   - producer.go: producers, harvests and harvest_crops tables
package models
