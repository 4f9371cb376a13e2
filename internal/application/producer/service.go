package producer

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Metrics receives producer lifecycle counters
type Metrics interface {
	RecordProducerCreated(ctx context.Context, documentKind string)
	RecordProducerUpdated(ctx context.Context)
	RecordProducerDeleted(ctx context.Context)
	RecordHarvestRecorded(ctx context.Context, year int)
}

// ProducerService handles producer registration and harvest reports
type ProducerService struct {
	repo           producer.ProducerRepository
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
}

// NewProducerService creates a new ProducerService
func NewProducerService(repo producer.ProducerRepository, logger *zap.Logger) *ProducerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProducerService{
		repo:   repo,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProducerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics recorder (optional)
func (s *ProducerService) SetMetrics(metrics Metrics) {
	s.metrics = metrics
}

// Create validates and registers a new producer with its harvests
func (s *ProducerService) Create(ctx context.Context, req CreateProducerRequest) (*ProducerResponse, error) {
	p, err := producer.NewProducer(producer.ProducerInput{
		Name:           req.Name,
		Document:       req.Document,
		FarmName:       req.FarmName,
		City:           req.City,
		State:          req.State,
		TotalArea:      req.TotalArea,
		ArableArea:     req.ArableArea,
		VegetationArea: req.VegetationArea,
		Harvests:       toReports(req.Harvests),
	})
	if err != nil {
		return nil, err
	}

	if err := s.ensureDocumentAvailable(ctx, p.Document, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Producer created",
		zap.String("producer_id", p.ID.String()),
		zap.String("document_kind", string(p.DocumentKind())),
		zap.Int("harvests", len(p.Harvests)))

	if s.metrics != nil {
		s.metrics.RecordProducerCreated(ctx, string(p.DocumentKind()))
	}
	s.publishEvents(ctx, p)

	response := ToProducerResponse(p)
	return &response, nil
}

// GetByID retrieves a producer with its harvests
func (s *ProducerService) GetByID(ctx context.Context, id uuid.UUID) (*ProducerResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProducerResponse(p)
	return &response, nil
}

// List retrieves producers with filtering and pagination
func (s *ProducerService) List(ctx context.Context, filter ProducerListFilter) ([]ProducerResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		State:    filter.State,
	}.Normalize()

	producers, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProducerResponses(producers), total, nil
}

// Update applies a partial update. The stored producer is only replaced when
// every check on the patched value passes.
func (s *ProducerService) Update(ctx context.Context, id uuid.UUID, req UpdateProducerRequest) (*ProducerResponse, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := current.Apply(producer.ProducerPatch{
		Name:           req.Name,
		Document:       req.Document,
		FarmName:       req.FarmName,
		City:           req.City,
		State:          req.State,
		TotalArea:      req.TotalArea,
		ArableArea:     req.ArableArea,
		VegetationArea: req.VegetationArea,
		Harvests:       toReports(req.Harvests),
	})
	if err != nil {
		return nil, err
	}

	if next.Document != current.Document {
		if err := s.ensureDocumentAvailable(ctx, next.Document, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("Producer updated",
		zap.String("producer_id", id.String()),
		zap.Int("version", next.Version))

	if s.metrics != nil {
		s.metrics.RecordProducerUpdated(ctx)
	}
	s.publishEvents(ctx, next)

	response := ToProducerResponse(next)
	return &response, nil
}

// Delete removes a producer together with its harvests
func (s *ProducerService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Producer deleted", zap.String("producer_id", id.String()))

	if s.metrics != nil {
		s.metrics.RecordProducerDeleted(ctx)
	}
	p.MarkDeleted()
	s.publishEvents(ctx, p)
	return nil
}

// AddHarvest merges a yearly crop report into the producer's harvests.
// A report for a year that already exists extends that harvest.
func (s *ProducerService) AddHarvest(ctx context.Context, producerID uuid.UUID, req HarvestInput) (*HarvestResponse, error) {
	current, err := s.find(ctx, producerID)
	if err != nil {
		return nil, err
	}

	next, h, err := current.WithHarvest(producer.HarvestReport{Year: req.Year, Crops: req.Crops})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("Harvest recorded",
		zap.String("producer_id", producerID.String()),
		zap.Int("year", req.Year),
		zap.Int("crops", len(h.Crops)))

	if s.metrics != nil {
		s.metrics.RecordHarvestRecorded(ctx, req.Year)
	}
	s.publishEvents(ctx, next)

	response := ToHarvestResponse(*h)
	return &response, nil
}

// ListHarvests returns the producer's harvests, most recent year first
func (s *ProducerService) ListHarvests(ctx context.Context, producerID uuid.UUID) ([]HarvestResponse, error) {
	p, err := s.find(ctx, producerID)
	if err != nil {
		return nil, err
	}
	return ToHarvestResponses(p.Harvests), nil
}

// RemoveHarvest deletes one harvest of a producer
func (s *ProducerService) RemoveHarvest(ctx context.Context, producerID, harvestID uuid.UUID) error {
	current, err := s.find(ctx, producerID)
	if err != nil {
		return err
	}

	next, err := current.WithoutHarvest(harvestID)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}

	s.logger.Info("Harvest removed",
		zap.String("producer_id", producerID.String()),
		zap.String("harvest_id", harvestID.String()))

	s.publishEvents(ctx, next)
	return nil
}

func (s *ProducerService) find(ctx context.Context, id uuid.UUID) (*producer.Producer, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Producer not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *ProducerService) ensureDocumentAvailable(ctx context.Context, document string, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByDocument(ctx, document, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "A producer with this document already exists")
	}
	return nil
}

func (s *ProducerService) publishEvents(ctx context.Context, p *producer.Producer) {
	events := p.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish producer events",
			zap.String("producer_id", p.ID.String()),
			zap.Error(err))
	}
}
