package admin

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

var offerAdminErrorRules = []mappedHandlerError{
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrOfferNotFound, code: response.CodeNotFound, key: "error.offer_not_found"},
	{target: service.ErrOfferConflict, code: response.CodeConflict, key: "error.offer_conflict"},
	{target: service.ErrQuotaConfigInvalid, code: response.CodeBadRequest, key: "error.quota_config_invalid"},
	{target: service.ErrOfferInvalid, code: response.CodeBadRequest, key: "error.offer_invalid"},
}

var providerAdminErrorRules = []mappedHandlerError{
	{target: service.ErrProviderNotFound, code: response.CodeNotFound, key: "error.provider_not_found"},
	{target: service.ErrProviderInvalid, code: response.CodeBadRequest, key: "error.provider_invalid"},
	{target: service.ErrUserExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrPasswordInvalid, code: response.CodeBadRequest, key: "error.password_weak"},
}

var referenceAdminErrorRules = []mappedHandlerError{
	{target: service.ErrReferenceNotFound, code: response.CodeNotFound, key: "error.reference_not_found"},
	{target: service.ErrReferenceInUse, code: response.CodeConflict, key: "error.reference_in_use"},
	{target: service.ErrReferenceInvalid, code: response.CodeBadRequest, key: "error.reference_invalid"},
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrRoleConflict, code: response.CodeConflict, key: "error.role_conflict"},
	{target: service.ErrUserInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
}
