package provider

import (
	"errors"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// mappedHandlerError maps a service error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	if ve, ok := service.AsValidationError(err); ok {
		respondErrorWithMsg(c, response.CodeBadRequest, ve.Error(), nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var offerWriteErrorRules = []mappedHandlerError{
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrOfferNotFound, code: response.CodeNotFound, key: "error.offer_not_found"},
	{target: service.ErrOfferConflict, code: response.CodeConflict, key: "error.offer_conflict"},
	{target: service.ErrQuotaConfigInvalid, code: response.CodeBadRequest, key: "error.quota_config_invalid"},
	{target: service.ErrOfferInvalid, code: response.CodeBadRequest, key: "error.offer_invalid"},
}

var settleErrorRules = []mappedHandlerError{
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrRedemptionNotFound, code: response.CodeNotFound, key: "error.redemption_not_found"},
	{target: service.ErrOfferNotFound, code: response.CodeNotFound, key: "error.offer_not_found"},
	{target: service.ErrAlreadySettled, code: response.CodeConflict, key: "error.redemption_already_settled"},
	{target: service.ErrQuotaExceeded, code: response.CodeConflict, key: "error.quota_exceeded"},
	{target: service.ErrRedemptionInvalid, code: response.CodeBadRequest, key: "error.redemption_invalid"},
}

var assignmentErrorRules = []mappedHandlerError{
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrAssignmentInvalid, code: response.CodeBadRequest, key: "error.assignment_invalid"},
	{target: service.ErrRoleConflict, code: response.CodeConflict, key: "error.role_conflict"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrAssignmentSyncFailed, code: response.CodeInternal, key: "error.assignment_sync_failed"},
}
