package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/payment"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	createIntentUseCase *payment.CreatePaymentIntentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(createIntentUseCase *payment.CreatePaymentIntentUseCase) *PaymentController {
	return &PaymentController{createIntentUseCase: createIntentUseCase}
}

// CreateIntent handles POST /payments/intent requests.
func (c *PaymentController) CreateIntent(ctx *gin.Context) {
	var req dto.CreatePaymentIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.createIntentUseCase.Execute(ctx.Request.Context(), payment.CreatePaymentIntentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		var payErr *domainerror.PaymentError
		if errors.As(err, &payErr) {
			status := http.StatusBadRequest
			if payErr.Code == domainerror.ErrCodePaymentProviderFailure {
				status = http.StatusBadGateway
			}
			ctx.JSON(status, dto.ErrorResponse{
				Error: payErr.Message,
				Code:  string(payErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.CreatePaymentIntentResponse{ClientSecret: output.ClientSecret})
}
