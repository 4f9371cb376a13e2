package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	reportapp "github.com/agro/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// XLSXContentType is the MIME type of the dashboard export
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardService is the slice of the dashboard application service used over HTTP
type DashboardService interface {
	Summary(ctx context.Context) (*reportapp.DashboardResponse, error)
	ExportXLSX(ctx context.Context, w io.Writer) error
}

// DashboardHandler serves the aggregated farm dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// RegisterRoutes mounts dashboard routes under rg
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Summary)
	rg.GET("/export", h.Export)
}

// Summary godoc
// @ID           getDashboard
// @Summary      Dashboard totals
// @Description  Farm count, total hectares, counts per state and crop, harvests per year and land use
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.DashboardResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Export godoc
// @ID           exportDashboard
// @Summary      Download the dashboard as a spreadsheet
// @Description  XLSX workbook with the summary sheets and one row per producer
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} file
// @Failure      500 {object} ErrorResponse
// @Router       /dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	// Buffered so a failed export can still answer with a JSON error.
	var buf bytes.Buffer
	if err := h.dashboardService.ExportXLSX(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("dashboard-%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, XLSXContentType, buf.Bytes())
}
