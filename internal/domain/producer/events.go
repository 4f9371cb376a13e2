package producer

import (
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeProducer identifies producer events
const AggregateTypeProducer = "Producer"

// Event types published by the producer aggregate
const (
	EventTypeProducerCreated = "ProducerCreated"
	EventTypeProducerUpdated = "ProducerUpdated"
	EventTypeProducerDeleted = "ProducerDeleted"
	EventTypeHarvestRecorded = "HarvestRecorded"
	EventTypeHarvestRemoved  = "HarvestRemoved"
)

// AllEventTypes lists every event type emitted by the producer aggregate
func AllEventTypes() []string {
	return []string{
		EventTypeProducerCreated,
		EventTypeProducerUpdated,
		EventTypeProducerDeleted,
		EventTypeHarvestRecorded,
		EventTypeHarvestRemoved,
	}
}

// ProducerCreatedEvent is published when a producer is registered
type ProducerCreatedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
	Name       string    `json:"name"`
	State      string    `json:"state"`
	Harvests   int       `json:"harvests"`
}

// NewProducerCreatedEvent creates a new ProducerCreatedEvent
func NewProducerCreatedEvent(p *Producer) *ProducerCreatedEvent {
	return &ProducerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProducerCreated, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
		Name:            p.Name,
		State:           p.State,
		Harvests:        len(p.Harvests),
	}
}

// ProducerUpdatedEvent is published when a producer is patched
type ProducerUpdatedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
	Version    int       `json:"version"`
}

// NewProducerUpdatedEvent creates a new ProducerUpdatedEvent
func NewProducerUpdatedEvent(p *Producer) *ProducerUpdatedEvent {
	return &ProducerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProducerUpdated, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
		Version:         p.Version,
	}
}

// ProducerDeletedEvent is published when a producer and its harvests are removed
type ProducerDeletedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
}

// NewProducerDeletedEvent creates a new ProducerDeletedEvent
func NewProducerDeletedEvent(p *Producer) *ProducerDeletedEvent {
	return &ProducerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProducerDeleted, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
	}
}

// HarvestRecordedEvent is published when a harvest report is merged into a producer
type HarvestRecordedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
	HarvestID  uuid.UUID `json:"harvest_id"`
	Year       int       `json:"year"`
	Crops      []string  `json:"crops"`
}

// NewHarvestRecordedEvent creates a new HarvestRecordedEvent
func NewHarvestRecordedEvent(p *Producer, h *Harvest) *HarvestRecordedEvent {
	e := &HarvestRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHarvestRecorded, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
	}
	if h != nil {
		e.HarvestID = h.ID
		e.Year = h.Year
		e.Crops = h.CropNames()
	}
	return e
}

// HarvestRemovedEvent is published when a harvest is removed from a producer
type HarvestRemovedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
	HarvestID  uuid.UUID `json:"harvest_id"`
	Year       int       `json:"year"`
}

// NewHarvestRemovedEvent creates a new HarvestRemovedEvent
func NewHarvestRemovedEvent(p *Producer, h Harvest) *HarvestRemovedEvent {
	return &HarvestRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHarvestRemoved, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
		HarvestID:       h.ID,
		Year:            h.Year,
	}
}
