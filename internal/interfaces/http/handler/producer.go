package handler

import (
	"context"

	producerapp "github.com/agro/backend/internal/application/producer"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProducerService is the slice of the producer application service used over HTTP
type ProducerService interface {
	Create(ctx context.Context, req producerapp.CreateProducerRequest) (*producerapp.ProducerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*producerapp.ProducerResponse, error)
	List(ctx context.Context, filter producerapp.ProducerListFilter) ([]producerapp.ProducerResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req producerapp.UpdateProducerRequest) (*producerapp.ProducerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddHarvest(ctx context.Context, producerID uuid.UUID, req producerapp.HarvestInput) (*producerapp.HarvestResponse, error)
	ListHarvests(ctx context.Context, producerID uuid.UUID) ([]producerapp.HarvestResponse, error)
	RemoveHarvest(ctx context.Context, producerID, harvestID uuid.UUID) error
}

// ProducerHandler handles producer-related API endpoints
type ProducerHandler struct {
	BaseHandler
	producerService ProducerService
}

// NewProducerHandler creates a new ProducerHandler
func NewProducerHandler(producerService ProducerService) *ProducerHandler {
	return &ProducerHandler{producerService: producerService}
}

// HarvestRequest is one harvest year and the crops planted in it
// @Description Harvest year with its crops
type HarvestRequest struct {
	Year  int      `json:"year" example:"2024"`
	Crops []string `json:"crops" binding:"dive,max=100" example:"Soja,Milho"`
}

// CreateProducerRequest represents a request to register a producer
// @Description Request body for registering a producer and its farm
type CreateProducerRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200" example:"Maria Souza"`
	Document       string           `json:"document" binding:"required,cpfcnpj" example:"529.982.247-25"`
	FarmName       string           `json:"farm_name" binding:"required,min=1,max=200" example:"Fazenda Boa Vista"`
	City           string           `json:"city" binding:"required,min=1,max=100" example:"Sorriso"`
	State          string           `json:"state" binding:"required,uf" example:"MT"`
	TotalArea      float64          `json:"total_area" binding:"gte=0" example:"1000"`
	ArableArea     float64          `json:"arable_area" binding:"gte=0" example:"600"`
	VegetationArea float64          `json:"vegetation_area" binding:"gte=0" example:"300"`
	Harvests       []HarvestRequest `json:"harvests" binding:"omitempty,dive"`
}

// UpdateProducerRequest represents a partial update of a producer
// @Description Only the fields present are changed; harvests are merged
type UpdateProducerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200" example:"Maria Souza Lima"`
	Document       *string          `json:"document" binding:"omitempty,cpfcnpj" example:"11.222.333/0001-81"`
	FarmName       *string          `json:"farm_name" binding:"omitempty,min=1,max=200" example:"Fazenda Nova"`
	City           *string          `json:"city" binding:"omitempty,min=1,max=100" example:"Rio Verde"`
	State          *string          `json:"state" binding:"omitempty,uf" example:"GO"`
	TotalArea      *float64         `json:"total_area" binding:"omitempty,gte=0" example:"1200"`
	ArableArea     *float64         `json:"arable_area" binding:"omitempty,gte=0" example:"700"`
	VegetationArea *float64         `json:"vegetation_area" binding:"omitempty,gte=0" example:"400"`
	Harvests       []HarvestRequest `json:"harvests" binding:"omitempty,dive"`
}

// ListProducersQuery holds the producer list query string
type ListProducersQuery struct {
	dto.ListRequest
	State string `form:"state" binding:"omitempty,uf"`
}

// RegisterRoutes mounts producer and harvest routes under rg
func (h *ProducerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/harvests", h.AddHarvest)
	rg.GET("/:id/harvests", h.ListHarvests)
	rg.DELETE("/:id/harvests/:harvest_id", h.RemoveHarvest)
}

// Create godoc
// @ID           createProducer
// @Summary      Register a producer
// @Description  Validates the CPF/CNPJ and the land areas, then stores the producer with its harvests
// @Tags         producers
// @Accept       json
// @Produce      json
// @Param        request body CreateProducerRequest true "Producer creation request"
// @Success      201 {object} APIResponse[producerapp.ProducerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /producers [post]
func (h *ProducerHandler) Create(c *gin.Context) {
	var req CreateProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	appReq := producerapp.CreateProducerRequest{
		Name:           req.Name,
		Document:       req.Document,
		FarmName:       req.FarmName,
		City:           req.City,
		State:          req.State,
		TotalArea:      toDecimal(req.TotalArea),
		ArableArea:     toDecimal(req.ArableArea),
		VegetationArea: toDecimal(req.VegetationArea),
		Harvests:       toHarvestInputs(req.Harvests),
	}

	producer, err := h.producerService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, producer)
}

// List godoc
// @ID           listProducers
// @Summary      List producers
// @Description  Paginated producer list with optional search and state filter
// @Tags         producers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        search query string false "Matches name, farm name, city or document"
// @Param        state query string false "Two-letter state code"
// @Param        order_by query string false "Sort column" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]producerapp.ProducerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /producers [get]
func (h *ProducerHandler) List(c *gin.Context) {
	query := ListProducersQuery{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	filter := producerapp.ProducerListFilter{
		Search:   query.Search,
		State:    query.State,
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}

	producers, total, err := h.producerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, producers, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getProducerById
// @Summary      Get a producer
// @Tags         producers
// @Produce      json
// @Param        id path string true "Producer ID" format(uuid)
// @Success      200 {object} APIResponse[producerapp.ProducerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /producers/{id} [get]
func (h *ProducerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	producer, err := h.producerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, producer)
}

// Update godoc
// @ID           updateProducer
// @Summary      Update a producer
// @Description  Partial update. Areas are checked after the patch is applied and incoming harvests are merged.
// @Tags         producers
// @Accept       json
// @Produce      json
// @Param        id path string true "Producer ID" format(uuid)
// @Param        request body UpdateProducerRequest true "Producer update request"
// @Success      200 {object} APIResponse[producerapp.ProducerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /producers/{id} [put]
func (h *ProducerHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	appReq := producerapp.UpdateProducerRequest{
		Name:           req.Name,
		Document:       req.Document,
		FarmName:       req.FarmName,
		City:           req.City,
		State:          req.State,
		TotalArea:      toDecimalPtr(req.TotalArea),
		ArableArea:     toDecimalPtr(req.ArableArea),
		VegetationArea: toDecimalPtr(req.VegetationArea),
		Harvests:       toHarvestInputs(req.Harvests),
	}

	producer, err := h.producerService.Update(c.Request.Context(), id, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, producer)
}

// Delete godoc
// @ID           deleteProducer
// @Summary      Remove a producer
// @Description  Removes the producer together with its harvests
// @Tags         producers
// @Param        id path string true "Producer ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /producers/{id} [delete]
func (h *ProducerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.producerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func toHarvestInputs(in []HarvestRequest) []producerapp.HarvestInput {
	if in == nil {
		return nil
	}
	out := make([]producerapp.HarvestInput, len(in))
	for i, r := range in {
		out[i] = producerapp.HarvestInput{Year: r.Year, Crops: r.Crops}
	}
	return out
}
