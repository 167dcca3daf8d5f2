package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/dto"
	"github.com/sgca/treasury_backend/internal/middleware"
)

// balanceHandler handles HTTP requests for the account balance cache.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade, accountService portssvc.AccountSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService, accountService: accountService}
}

// registerBalanceRoutes registers balance specific routes
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newBalanceHandler(balanceService, accountService)

	group.GET("/balance", middleware.RequireRole(domain.RolePresident, domain.RoleTreasurer), h.getBalance)
}

// getBalance godoc
// @Summary Get the account balance
// @Description Returns the cached balance, optionally verified against the entry log
// @Tags balance
// @Produce  json
// @Param   reconcile query bool false "Verify the cached balance against the entry log"
// @Success 200 {object} dto.BalanceResponse "Balance"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /finance/balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	var params dto.GetBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	account, recon, err := h.balanceService.GetBalance(c.Request.Context(), accountID, params.Reconcile)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(account, recon))
}
