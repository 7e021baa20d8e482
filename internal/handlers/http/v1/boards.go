package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type boardRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type updateBoardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *handlers) listBoards(c *gin.Context) {
	boards, err := h.svc.SearchBoards(c.Request.Context(), callerID(c), c.Query("q"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *handlers) createBoard(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.svc.CreateBoard(c.Request.Context(), callerID(c), req.Title, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *handlers) getBoard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.svc.GetBoard(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) updateBoard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.svc.UpdateBoard(c.Request.Context(), callerID(c), id, req.Title, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handlers) deleteBoard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBoard(c.Request.Context(), callerID(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
