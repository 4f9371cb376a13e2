package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProducerRepository is a mock implementation of ProducerRepository
type MockProducerRepository struct {
	mock.Mock
}

func (m *MockProducerRepository) FindByID(ctx context.Context, id uuid.UUID) (*producer.Producer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*producer.Producer), args.Error(1)
}

func (m *MockProducerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]producer.Producer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]producer.Producer), args.Error(1)
}

func (m *MockProducerRepository) FindAllForSummary(ctx context.Context) ([]producer.Producer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]producer.Producer), args.Error(1)
}

func (m *MockProducerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProducerRepository) ExistsByDocument(ctx context.Context, document string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, document, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProducerRepository) Save(ctx context.Context, p *producer.Producer) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProducerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func validCreateRequest() CreateProducerRequest {
	return CreateProducerRequest{
		Name:           "João Silva",
		Document:       "529.982.247-25",
		FarmName:       "Fazenda Boa Vista",
		City:           "Sorriso",
		State:          "MT",
		TotalArea:      decimal.NewFromInt(1000),
		ArableArea:     decimal.NewFromInt(600),
		VegetationArea: decimal.NewFromInt(300),
		Harvests: []HarvestInput{
			{Year: 2024, Crops: []string{"Soja", "Soja", "Milho"}},
		},
	}
}

func existingProducer(t *testing.T) *producer.Producer {
	t.Helper()
	p, err := producer.NewProducer(producer.ProducerInput{
		Name:           "João Silva",
		Document:       "52998224725",
		FarmName:       "Fazenda Boa Vista",
		City:           "Sorriso",
		State:          "MT",
		TotalArea:      decimal.NewFromInt(1000),
		ArableArea:     decimal.NewFromInt(600),
		VegetationArea: decimal.NewFromInt(300),
		Harvests: []producer.HarvestReport{
			{Year: 2023, Crops: []string{"Café"}},
			{Year: 2024, Crops: []string{"Soja"}},
		},
	})
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestProducerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists normalized aggregate and publishes event", func(t *testing.T) {
		repo := new(MockProducerRepository)
		publisher := new(MockEventPublisher)
		svc := NewProducerService(repo, nil)
		svc.SetEventPublisher(publisher)

		repo.On("ExistsByDocument", ctx, "52998224725", uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*producer.Producer")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, "52998224725", resp.Document)
		assert.Equal(t, "CPF", resp.DocumentKind)
		require.Len(t, resp.Harvests, 1)
		require.Len(t, resp.Harvests[0].Crops, 2)
		assert.Equal(t, "Soja", resp.Harvests[0].Crops[0].CropName)
		assert.Equal(t, "Milho", resp.Harvests[0].Crops[1].CropName)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("invalid document never reaches the store", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)

		req := validCreateRequest()
		req.Document = "11111111111"
		_, err := svc.Create(ctx, req)

		assert.True(t, errors.Is(err, shared.ErrInvalidDocument))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("area sum violation never reaches the store", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)

		req := validCreateRequest()
		req.ArableArea = decimal.NewFromInt(800)
		_, err := svc.Create(ctx, req)

		assert.True(t, errors.Is(err, shared.ErrInvalidAreaSum))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate document", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		repo.On("ExistsByDocument", ctx, "52998224725", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, validCreateRequest())

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProducerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges harvests and keeps unmentioned years", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)

		repo.On("FindByID", ctx, current.ID).Return(current, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*producer.Producer")).Return(nil)

		resp, err := svc.Update(ctx, current.ID, UpdateProducerRequest{
			Harvests: []HarvestInput{{Year: 2024, Crops: []string{"Milho"}}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Harvests, 2)
		assert.Equal(t, 2024, resp.Harvests[0].Year)
		assert.Len(t, resp.Harvests[0].Crops, 2)
		assert.Equal(t, 2023, resp.Harvests[1].Year)
		assert.Len(t, resp.Harvests[1].Crops, 1)
		assert.Equal(t, 2, resp.Version)
	})

	t.Run("invalid area patch leaves stored record untouched", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)

		repo.On("FindByID", ctx, current.ID).Return(current, nil)

		vegetation := decimal.NewFromInt(500)
		_, err := svc.Update(ctx, current.ID, UpdateProducerRequest{VegetationArea: &vegetation})

		assert.True(t, errors.Is(err, shared.ErrInvalidAreaSum))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.True(t, current.VegetationArea.Equal(decimal.NewFromInt(300)))
	})

	t.Run("checks uniqueness when document changes", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)

		repo.On("FindByID", ctx, current.ID).Return(current, nil)
		repo.On("ExistsByDocument", ctx, "11222333000181", current.ID).Return(true, nil)

		doc := "11.222.333/0001-81"
		_, err := svc.Update(ctx, current.ID, UpdateProducerRequest{Document: &doc})

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown producer", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		name := "x"
		_, err := svc.Update(ctx, id, UpdateProducerRequest{Name: &name})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestProducerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing producer", func(t *testing.T) {
		repo := new(MockProducerRepository)
		publisher := new(MockEventPublisher)
		svc := NewProducerService(repo, nil)
		svc.SetEventPublisher(publisher)
		current := existingProducer(t)

		repo.On("FindByID", ctx, current.ID).Return(current, nil)
		repo.On("Delete", ctx, current.ID).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == producer.EventTypeProducerDeleted
		})).Return(nil)

		require.NoError(t, svc.Delete(ctx, current.ID))
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("unknown producer is not found and store is untouched", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(ctx, id)

		assert.True(t, errors.Is(err, shared.ErrNotFound))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProducerService_Harvests(t *testing.T) {
	ctx := context.Background()

	t.Run("add harvest merges into existing year", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)

		repo.On("FindByID", ctx, current.ID).Return(current, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(p *producer.Producer) bool {
			return len(p.Harvests) == 2
		})).Return(nil)

		resp, err := svc.AddHarvest(ctx, current.ID, HarvestInput{Year: 2024, Crops: []string{"Milho", "Soja"}})
		require.NoError(t, err)

		assert.Equal(t, current.HarvestForYear(2024).ID, resp.ID)
		assert.Len(t, resp.Crops, 2)
	})

	t.Run("list harvests orders by year descending", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)
		repo.On("FindByID", ctx, current.ID).Return(current, nil)

		list, err := svc.ListHarvests(ctx, current.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 2024, list[0].Year)
		assert.Equal(t, 2023, list[1].Year)
	})

	t.Run("remove unknown harvest is not found", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)
		repo.On("FindByID", ctx, current.ID).Return(current, nil)

		err := svc.RemoveHarvest(ctx, current.ID, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("remove harvest saves aggregate without it", func(t *testing.T) {
		repo := new(MockProducerRepository)
		svc := NewProducerService(repo, nil)
		current := existingProducer(t)
		target := current.HarvestForYear(2023).ID

		repo.On("FindByID", ctx, current.ID).Return(current, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(p *producer.Producer) bool {
			return len(p.Harvests) == 1 && p.Harvests[0].Year == 2024
		})).Return(nil)

		require.NoError(t, svc.RemoveHarvest(ctx, current.ID, target))
		repo.AssertExpectations(t)
	})
}

func TestProducerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProducerRepository)
	svc := NewProducerService(repo, nil)
	p := existingProducer(t)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.State == "MT"
	})).Return([]producer.Producer{*p}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	list, total, err := svc.List(ctx, ProducerListFilter{State: "mt"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}
