package api

import (
	"net/http"

	reqdto "course-enrollment/internal/handler/dto/request"
	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SettlementHandler struct {
	cmds commands.SettlementCommands
}

func NewSettlementHandler(cmds commands.SettlementCommands) *SettlementHandler {
	return &SettlementHandler{cmds: cmds}
}

// @Summary Settle a selection
// @Description Convert a paid selection into a payment and an enrollment. The transaction id is the idempotency key.
// @Tags settlements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SettleRequest true "Settlement request"
// @Success 201 {object} resdto.SettlementResponse
// @Success 200 {object} resdto.SettlementResponse "Replayed settlement"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /settlements [post]
func (h *SettlementHandler) Settle(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}
	middleware.SetTransactionID(c, req.TransactionID)

	res, err := h.cmds.Settle(c.Request.Context(), caller, commands.SettleInput{
		SelectionID:   req.SelectionID,
		TransactionID: req.TransactionID,
		AmountCents:   req.AmountCents,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromSettlementResult(res))
}
