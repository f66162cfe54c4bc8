package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/depot-api/internal/application/service"
	"github.com/sokoni/depot-api/internal/presentation/http/dto/request"
	"github.com/sokoni/depot-api/internal/presentation/http/dto/response"
)

const reportDateLayout = "2006-01-02"

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Get builds a sales report for an inclusive date range
func (h *ReportHandler) Get(c *gin.Context) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "start_date and end_date are required")
		return
	}

	start, err := time.ParseInLocation(reportDateLayout, filter.StartDate, time.Local)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.ParseInLocation(reportDateLayout, filter.EndDate, time.Local)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	// End date is inclusive, widen to the end of that day
	report, err := h.reportService.GetReport(c.Request.Context(), start, end.AddDate(0, 0, 1))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}
