package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/summary"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// SummaryController handles financial summary endpoints.
type SummaryController struct {
	getUseCase       *summary.GetSummaryUseCase
	recomputeUseCase *summary.RecomputeSummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	getUseCase *summary.GetSummaryUseCase,
	recomputeUseCase *summary.RecomputeSummaryUseCase,
) *SummaryController {
	return &SummaryController{
		getUseCase:       getUseCase,
		recomputeUseCase: recomputeUseCase,
	}
}

// Get handles GET /summary requests.
func (c *SummaryController) Get(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), summary.GetSummaryInput{Session: sess})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output.Summary))
}

// Recompute handles POST /summary/recompute requests.
func (c *SummaryController) Recompute(ctx *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondNoSession(ctx)
		return
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), summary.RecomputeSummaryInput{Session: sess})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RecomputeSummaryResponse{
		Summary: dto.ToSummaryResponse(output.Summary),
		Drifted: output.Drifted,
	})
}

func (c *SummaryController) handleSummaryError(ctx *gin.Context, err error) {
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
