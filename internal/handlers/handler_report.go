package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/dto"
	"github.com/sgca/treasury_backend/internal/middleware"
)

// reportHandler handles HTTP requests for financial reports.
type reportHandler struct {
	reportingService portssvc.ReportingService
	accountService   portssvc.AccountSvcFacade
}

func newReportHandler(reportingService portssvc.ReportingService, accountService portssvc.AccountSvcFacade) *reportHandler {
	return &reportHandler{reportingService: reportingService, accountService: accountService}
}

// registerReportRoutes registers report specific routes
func registerReportRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingService, accountService portssvc.AccountSvcFacade) {
	h := newReportHandler(reportingService, accountService)

	group.GET("/report", middleware.RequireRole(domain.RoleTreasurer), h.getReport)
}

// getReport godoc
// @Summary Generate a financial report
// @Description Summarizes credits, debits and net change over an inclusive date range
// @Tags reports
// @Produce  json
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.ReportResponse "Report"
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Router /finance/report [get]
func (h *reportHandler) getReport(c *gin.Context) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters, startDate and endDate are required as YYYY-MM-DD"})
		return
	}

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	report, err := h.reportingService.FinancialReport(c.Request.Context(), accountID, params.StartDate, params.EndDate)
	if err != nil {
		respondWithError(c, err, "Failed to generate report")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}
