package v1

import (
	"net/http"

	"github.com/gfdmit/kanban/internal/service"
	"github.com/gin-gonic/gin"
)

type createColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

type moveColumnRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (h *handlers) createColumn(c *gin.Context) {
	boardID, ok := pathID(c)
	if !ok {
		return
	}

	var req createColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	column, err := h.svc.CreateColumn(c.Request.Context(), callerID(c), boardID, req.Title)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

func (h *handlers) moveColumn(c *gin.Context) {
	columnID, ok := pathID(c)
	if !ok {
		return
	}

	var req moveColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	direction, err := service.ParseDirection(req.Direction)
	if err != nil {
		respondErr(c, err)
		return
	}

	moved, err := h.svc.MoveColumn(c.Request.Context(), callerID(c), columnID, direction)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

func (h *handlers) deleteColumn(c *gin.Context) {
	columnID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteColumn(c.Request.Context(), callerID(c), columnID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
