package handler

import (
	"github.com/gin-gonic/gin"
)

// AddHarvest godoc
// @ID           addProducerHarvest
// @Summary      Report a harvest
// @Description  Merges the crops into the producer's harvest for that year, creating the year if needed
// @Tags         harvests
// @Accept       json
// @Produce      json
// @Param        id path string true "Producer ID" format(uuid)
// @Param        request body HarvestRequest true "Harvest report"
// @Success      200 {object} APIResponse[producerapp.HarvestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /producers/{id}/harvests [post]
func (h *ProducerHandler) AddHarvest(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req HarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	inputs := toHarvestInputs([]HarvestRequest{req})
	harvest, err := h.producerService.AddHarvest(c.Request.Context(), id, inputs[0])
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, harvest)
}

// ListHarvests godoc
// @ID           listProducerHarvests
// @Summary      List a producer's harvests
// @Description  Harvests ordered by year
// @Tags         harvests
// @Produce      json
// @Param        id path string true "Producer ID" format(uuid)
// @Success      200 {object} APIResponse[[]producerapp.HarvestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /producers/{id}/harvests [get]
func (h *ProducerHandler) ListHarvests(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	harvests, err := h.producerService.ListHarvests(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, harvests)
}

// RemoveHarvest godoc
// @ID           removeProducerHarvest
// @Summary      Remove a harvest
// @Tags         harvests
// @Param        id path string true "Producer ID" format(uuid)
// @Param        harvest_id path string true "Harvest ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /producers/{id}/harvests/{harvest_id} [delete]
func (h *ProducerHandler) RemoveHarvest(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	harvestID, ok := h.ParseUUIDParam(c, "harvest_id")
	if !ok {
		return
	}

	if err := h.producerService.RemoveHarvest(c.Request.Context(), id, harvestID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
