package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/category"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	addUseCase    *category.AddCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	addUseCase *category.AddCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{Session: sess})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), category.AddCategoryInput{
		Session: sess,
		Name:    req.Name,
		Icon:    entity.CategoryIcon(req.Icon),
		Color:   req.Color,
		Kind:    entity.CategoryKind(req.Kind),
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		Session: sess,
		ID:      ctx.Param("id"),
		Name:    req.Name,
		Icon:    entity.CategoryIcon(req.Icon),
		Color:   req.Color,
		Kind:    entity.CategoryKind(req.Kind),
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		Session: sess,
		ID:      ctx.Param("id"),
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DeleteCategoryResponse{
		DeletedTransactions: output.DeletedTransactions,
		DeletedBudgetGoals:  output.DeletedBudgetGoals,
		Summary:             dto.ToSummaryResponse(output.Summary),
	})
}

func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		status := http.StatusBadRequest
		if catErr.Code == domainerror.ErrCodeCategoryNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	var storeErr *domainerror.StoreError
	if errors.As(err, &storeErr) {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error: storeErr.Message,
			Code:  string(storeErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
