package shared

import (
	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Actor rebuilds the authenticated principal from context values the
// auth middleware stored. Missing identity responds 401 and returns false.
func Actor(c *gin.Context) (authz.Actor, bool) {
	userID, ok := GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
	if !ok {
		return authz.Actor{}, false
	}

	role := ""
	if value, exists := c.Get("role"); exists {
		if v, ok := value.(string); ok {
			role = v
		}
	}
	if role == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return authz.Actor{}, false
	}

	var providerID uint
	if value, exists := c.Get("provider_id"); exists {
		switch v := value.(type) {
		case uint:
			providerID = v
		case int:
			if v > 0 {
				providerID = uint(v)
			}
		case float64:
			if v > 0 {
				providerID = uint(v)
			}
		}
	}

	return authz.Actor{UserID: userID, Role: role, ProviderID: providerID}, true
}
