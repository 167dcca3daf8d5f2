package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/dto"
	"github.com/sgca/treasury_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes registers account specific routes
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	accounts.GET("", h.listAccounts)
	accounts.POST("", middleware.RequireRole(domain.RoleTreasurer), h.createAccount)
}

// resolveAccountID resolves the target account for finance routes: an
// explicit accountID query parameter, or the organization's treasury account.
func resolveAccountID(c *gin.Context, accountService portssvc.AccountReaderSvc) (string, error) {
	if accountID := c.Query("accountID"); accountID != "" {
		return accountID, nil
	}
	account, err := accountService.GetDefaultAccount(c.Request.Context())
	if err != nil {
		return "", err
	}
	return account.AccountID, nil
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves all accounts with their cached balances
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse "Accounts"
// @Failure 500 {object} ErrorResponse "Failed to retrieve accounts"
// @Router /finance/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to retrieve accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// createAccount godoc
// @Summary Create an account
// @Description Creates a new account starting at a zero balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "Created account"
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 409 {object} ErrorResponse "Account already exists"
// @Router /finance/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create account", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}
