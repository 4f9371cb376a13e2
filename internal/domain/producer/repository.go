package producer

import (
	"context"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProducerRepository defines the interface for producer persistence.
// Implementations load and store the whole aggregate graph (producer, harvests, crops).
type ProducerRepository interface {
	// FindByID finds a producer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Producer, error)

	// FindAll finds producers matching the filter, harvests ordered by year descending
	FindAll(ctx context.Context, filter shared.Filter) ([]Producer, error)

	// FindAllForSummary returns every producer with harvests and crops loaded
	FindAllForSummary(ctx context.Context) ([]Producer, error)

	// Count counts producers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByDocument checks whether another producer already uses the normalized document.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByDocument(ctx context.Context, document string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates the producer with its harvests in one transaction
	Save(ctx context.Context, producer *Producer) error

	// Delete deletes a producer and its harvests
	Delete(ctx context.Context, id uuid.UUID) error
}
