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

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	txnService     portssvc.TransactionSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newTransactionHandler(txnService portssvc.TransactionSvcFacade, accountService portssvc.AccountSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: txnService, accountService: accountService}
}

// registerTransactionRoutes registers transaction specific routes
func registerTransactionRoutes(group *gin.RouterGroup, txnService portssvc.TransactionSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newTransactionHandler(txnService, accountService)

	transactions := group.Group("/transactions")
	transactions.GET("", h.listTransactions)
	transactions.GET("/:entryID", h.getTransaction)

	treasurerOnly := transactions.Group("", middleware.RequireRole(domain.RoleTreasurer))
	treasurerOnly.POST("", h.createTransaction)
	treasurerOnly.PUT("/:entryID", h.updateTransaction)
	treasurerOnly.DELETE("/:entryID", h.deleteTransaction)
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a credit or debit entry and updates the account balance atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse "Recorded transaction"
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 500 {object} ErrorResponse "Failed to record transaction"
// @Router /finance/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	entry, err := h.txnService.CreateTransaction(c.Request.Context(), accountID, req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to record transaction", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to record transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(entry))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a single ledger entry by its ID
// @Tags transactions
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.TransactionResponse "Transaction"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Router /finance/transactions/{entryID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	entryID := c.Param("entryID")

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	entry, err := h.txnService.GetTransactionByID(c.Request.Context(), accountID, entryID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(entry))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists ledger entries newest first with token based pagination
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Max entries per page (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListTransactionsResponse "Transactions"
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Router /finance/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	resp, err := h.txnService.ListTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates a ledger entry, reversing its old balance effect and applying the new one atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse "Updated transaction"
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Router /finance/transactions/{entryID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	entry, err := h.txnService.UpdateTransaction(c.Request.Context(), accountID, entryID, req, requestingUserID)
	if err != nil {
		logger.Warn("Failed to update transaction", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(entry))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes a ledger entry and reverses its balance effect atomically
// @Tags transactions
// @Param   entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Router /finance/transactions/{entryID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), accountID, entryID, requestingUserID); err != nil {
		logger.Warn("Failed to delete transaction", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
