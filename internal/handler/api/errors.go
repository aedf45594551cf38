package api

import (
	"net/http"

	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	code   string
	msg    string
}

// first match wins
var errorMappings = []errorMapping{
	{commands.ErrForbidden, http.StatusForbidden, httperr.CodeForbidden, "Insufficient permissions"},
	{queries.ErrAccessDenied, http.StatusForbidden, httperr.CodeForbidden, "Insufficient permissions"},
	{commands.ErrSeatUnavailable, http.StatusConflict, httperr.CodeSeatUnavailable, "No seat available for this class"},
	{commands.ErrSettlementInProgress, http.StatusConflict, httperr.CodeSettlementInProgress, "Settlement is currently being processed"},
	{commands.ErrSelectionBusy, http.StatusConflict, httperr.CodeSettlementInProgress, "Selection is being settled by another transaction"},
	{commands.ErrTransactionConflict, http.StatusConflict, httperr.CodeTransactionConflict, "Transaction id belongs to another selection"},
	{commands.ErrAmountMismatch, http.StatusUnprocessableEntity, httperr.CodeAmountMismatch, "Amount does not match the selection price"},
	{commands.ErrSelectionNotFound, http.StatusNotFound, httperr.CodeNotFound, "Selection not found"},
	{commands.ErrClassNotFound, http.StatusNotFound, httperr.CodeNotFound, "Class not found"},
	{queries.ErrNotFound, http.StatusNotFound, httperr.CodeNotFound, "Not found"},
	{commands.ErrConflict, http.StatusConflict, httperr.CodeConflict, "Request conflicts with current state"},
	{commands.ErrInvalidSettlement, http.StatusBadRequest, httperr.CodeBadRequest, "Invalid settlement request"},
	{queries.ErrInvalidQuery, http.StatusBadRequest, httperr.CodeBadRequest, "Invalid query"},
	{commands.ErrDomainValidation, http.StatusUnprocessableEntity, httperr.CodeValidation, "Domain validation failed"},
	{commands.ErrStoreUnavailable, http.StatusServiceUnavailable, httperr.CodeStoreUnavailable, "Store unavailable, retry later"},
	{queries.ErrStoreUnavailable, http.StatusServiceUnavailable, httperr.CodeStoreUnavailable, "Store unavailable, retry later"},
}

func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, m.code, err, m.msg, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, httperr.CodeInternal, err, "Internal server error", nil)
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeBadRequest, err, msg, nil)
}

func abortInternal(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusInternalServerError, httperr.CodeInternal, err, "Internal server error", nil)
}
