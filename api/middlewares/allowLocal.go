package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xufanglin/rimmich/tool"
)

// OnlyAllowLocal rejects every client that is not on loopback and stops the handler chain.
func OnlyAllowLocal(c *gin.Context) {
	if ip := c.ClientIP(); ip == "127.0.0.1" || ip == "::1" {
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, tool.FastReturnError("Forbidden"))
}
