package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	producerapp "github.com/agro/backend/internal/application/producer"
	reportapp "github.com/agro/backend/internal/application/report"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockProducerService implements ProducerService for testing
type MockProducerService struct {
	mock.Mock
}

func (m *MockProducerService) Create(ctx context.Context, req producerapp.CreateProducerRequest) (*producerapp.ProducerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*producerapp.ProducerResponse), args.Error(1)
}

func (m *MockProducerService) GetByID(ctx context.Context, id uuid.UUID) (*producerapp.ProducerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*producerapp.ProducerResponse), args.Error(1)
}

func (m *MockProducerService) List(ctx context.Context, filter producerapp.ProducerListFilter) ([]producerapp.ProducerResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]producerapp.ProducerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockProducerService) Update(ctx context.Context, id uuid.UUID, req producerapp.UpdateProducerRequest) (*producerapp.ProducerResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*producerapp.ProducerResponse), args.Error(1)
}

func (m *MockProducerService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProducerService) AddHarvest(ctx context.Context, producerID uuid.UUID, req producerapp.HarvestInput) (*producerapp.HarvestResponse, error) {
	args := m.Called(ctx, producerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*producerapp.HarvestResponse), args.Error(1)
}

func (m *MockProducerService) ListHarvests(ctx context.Context, producerID uuid.UUID) ([]producerapp.HarvestResponse, error) {
	args := m.Called(ctx, producerID)
	return args.Get(0).([]producerapp.HarvestResponse), args.Error(1)
}

func (m *MockProducerService) RemoveHarvest(ctx context.Context, producerID, harvestID uuid.UUID) error {
	return m.Called(ctx, producerID, harvestID).Error(0)
}

// MockDashboardService implements DashboardService for testing
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) (*reportapp.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.DashboardResponse), args.Error(1)
}

func (m *MockDashboardService) ExportXLSX(ctx context.Context, w io.Writer) error {
	return m.Called(ctx, w).Error(0)
}

func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return engine
}

func performRequest(engine http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
