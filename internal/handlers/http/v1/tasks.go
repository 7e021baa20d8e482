package v1

import (
	"net/http"
	"time"

	"github.com/gfdmit/kanban/internal/service"
	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    *string    `json:"description"`
	Priority       *string    `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	RemainingHours *float64   `json:"remaining_hours"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID *string    `json:"assigned_user_id"`
}

type createTaskRequest struct {
	ColumnID int64 `json:"column_id" binding:"required"`
	taskRequest
}

type moveTaskRequest struct {
	ColumnID      int64 `json:"column_id" binding:"required"`
	NewOrderIndex *int  `json:"new_order_index"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

type timeEntryRequest struct {
	HoursSpent float64 `json:"hours_spent" binding:"required"`
	Note       *string `json:"note"`
}

func (r taskRequest) fields() service.TaskFields {
	return service.TaskFields{
		Title:          r.Title,
		Description:    r.Description,
		Priority:       r.Priority,
		EstimatedHours: r.EstimatedHours,
		RemainingHours: r.RemainingHours,
		DueDate:        r.DueDate,
		AssignedUserID: r.AssignedUserID,
	}
}

func (h *handlers) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), callerID(c), req.ColumnID, req.fields())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *handlers) getTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	details, err := h.svc.GetTask(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *handlers) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.EditTask(c.Request.Context(), callerID(c), id, req.fields())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlers) moveTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.MoveTask(c.Request.Context(), callerID(c), id, req.ColumnID, req.NewOrderIndex)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlers) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), callerID(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) addComment(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), callerID(c), taskID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *handlers) logTime(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var req timeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.LogTime(c.Request.Context(), callerID(c), taskID, req.HoursSpent, req.Note)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
