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

// categoryHandler handles HTTP requests related to transaction categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	accountService  portssvc.AccountSvcFacade
}

func newCategoryHandler(categoryService portssvc.CategorySvcFacade, accountService portssvc.AccountSvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: categoryService, accountService: accountService}
}

// registerCategoryRoutes registers category specific routes
func registerCategoryRoutes(group *gin.RouterGroup, categoryService portssvc.CategorySvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newCategoryHandler(categoryService, accountService)

	categories := group.Group("/categories")
	categories.GET("", h.listCategories)
	categories.POST("", middleware.RequireRole(domain.RoleTreasurer), h.createCategory)
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves all transaction categories for the account
// @Tags categories
// @Produce  json
// @Success 200 {array} dto.CategoryResponse "Categories"
// @Failure 500 {object} ErrorResponse "Failed to retrieve categories"
// @Router /finance/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	accountID, err := resolveAccountID(c, h.accountService)
	if err != nil {
		respondWithError(c, err, "Failed to resolve account")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a new transaction category for the account
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse "Created category"
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 409 {object} ErrorResponse "Category already exists"
// @Router /finance/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCategoryRequest
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

	category, err := h.categoryService.CreateCategory(c.Request.Context(), accountID, req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create category", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}
