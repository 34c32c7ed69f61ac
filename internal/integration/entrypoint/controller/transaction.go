package controller

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	addUseCase    *transaction.AddTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	addUseCase *transaction.AddTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests. The list is served from the local
// mirror, newest first. A categoryId query narrows it to that category's
// expenses.
func (c *TransactionController) List(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var transactions []*entity.Transaction
	if categoryID := ctx.Query("categoryId"); categoryID != "" {
		transactions = sess.TransactionsByCategory(categoryID)
	} else {
		transactions = sess.Transactions()
	}
	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		return transactions[i].ID < transactions[j].ID
	})

	response := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
	}
	for _, tx := range transactions {
		response.Transactions = append(response.Transactions,
			dto.ToTransactionResponse(tx, sess.CategoryNameByID(tx.CategoryID)))
	}
	ctx.JSON(http.StatusOK, response)
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), transaction.AddTransactionInput{
		Session:     sess,
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(req.Type),
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MutationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction, sess.CategoryNameByID(output.Transaction.CategoryID)),
		Summary:     dto.ToSummaryResponse(output.Summary),
	})
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		Session:     sess,
		ID:          ctx.Param("id"),
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(req.Type),
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MutationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction, sess.CategoryNameByID(output.Transaction.CategoryID)),
		Summary:     dto.ToSummaryResponse(output.Summary),
	})
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		Session: sess,
		ID:      ctx.Param("id"),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"summary": dto.ToSummaryResponse(output.Summary)})
}

func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		status := http.StatusBadRequest
		if txErr.Code == domainerror.ErrCodeTransactionNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
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

// respondNoSession writes the shared error for handlers reached without a
// sync session in context.
func respondNoSession(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
