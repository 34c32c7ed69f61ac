package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/usecase/budget"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget goal endpoints.
type BudgetController struct {
	listUseCase   *budget.ListBudgetGoalsUseCase
	addUseCase    *budget.AddBudgetGoalUseCase
	updateUseCase *budget.UpdateBudgetGoalUseCase
	deleteUseCase *budget.DeleteBudgetGoalUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetGoalsUseCase,
	addUseCase *budget.AddBudgetGoalUseCase,
	updateUseCase *budget.UpdateBudgetGoalUseCase,
	deleteUseCase *budget.DeleteBudgetGoalUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:   listUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetGoalsInput{Session: sess})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	response := dto.BudgetGoalListResponse{
		BudgetGoals: make([]dto.BudgetGoalResponse, 0, len(output.Goals)),
	}
	for _, view := range output.Goals {
		response.BudgetGoals = append(response.BudgetGoals, dto.ToBudgetGoalViewResponse(view))
	}
	ctx.JSON(http.StatusOK, response)
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var req dto.CreateBudgetGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), budget.AddBudgetGoalInput{
		Session:    sess,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     entity.BudgetPeriod(req.Period),
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToBudgetGoalViewResponse(budget.BudgetGoalView{
		Goal:            output.BudgetGoal,
		CategoryName:    sess.CategoryNameByID(output.BudgetGoal.CategoryID),
		ProgressPercent: progressOf(output.BudgetGoal),
	}))
}

// Update handles PUT /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var req dto.UpdateBudgetGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetGoalInput{
		Session:    sess,
		ID:         ctx.Param("id"),
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     entity.BudgetPeriod(req.Period),
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToBudgetGoalViewResponse(budget.BudgetGoalView{
		Goal:            output.BudgetGoal,
		CategoryName:    sess.CategoryNameByID(output.BudgetGoal.CategoryID),
		ProgressPercent: progressOf(output.BudgetGoal),
	}))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetGoalInput{
		Session: sess,
		ID:      ctx.Param("id"),
	}); err != nil {
		c.handleBudgetError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Budget goal deleted"})
}

func progressOf(goal *entity.BudgetGoal) float64 {
	return calc.ProgressPercent(goal.SpentAmount, goal.Amount)
}

func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		status := http.StatusBadRequest
		if budgetErr.Code == domainerror.ErrCodeBudgetNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
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
