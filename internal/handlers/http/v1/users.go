package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.svc.ListAssignableUsers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
