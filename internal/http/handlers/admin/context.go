package admin

import (
	"github.com/dealat-next/internal/authz"
	handlershared "github.com/dealat-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getActor(c *gin.Context) (authz.Actor, bool) {
	return handlershared.Actor(c)
}
