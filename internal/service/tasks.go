package service

import (
	"context"
	"strings"
	"time"

	"github.com/gfdmit/kanban/internal/model"
	"github.com/gfdmit/kanban/internal/ordering"
)

// TaskFields is the one canonical request shape for creating and editing a
// task. Optional fields are explicit pointers, never inferred from missing
// JSON keys.
type TaskFields struct {
	Title          string
	Description    *string
	Priority       *string
	EstimatedHours *float64
	RemainingHours *float64
	DueDate        *time.Time
	AssignedUserID *string
}

// TaskDetails is the detail view: the task plus its comments (newest first)
// and time entries.
type TaskDetails struct {
	model.Task
	ColumnTitle string            `json:"column_title"`
	Comments    []model.Comment   `json:"comments"`
	TimeEntries []model.TimeEntry `json:"time_entries"`
}

func (f TaskFields) validate() (model.Priority, error) {
	if strings.TrimSpace(f.Title) == "" {
		return "", invalid("task title is required")
	}
	if len(strings.TrimSpace(f.Title)) > maxTaskTitleLen {
		return "", invalid("task title exceeds %d characters", maxTaskTitleLen)
	}
	if f.Description != nil && len(*f.Description) > maxDescriptionLen {
		return "", invalid("description exceeds %d characters", maxDescriptionLen)
	}

	priority := model.PriorityMedium
	if f.Priority != nil && *f.Priority != "" {
		priority = model.Priority(*f.Priority)
		if !priority.Valid() {
			return "", invalid("unknown priority %q", *f.Priority)
		}
	}

	for _, hours := range []*float64{f.EstimatedHours, f.RemainingHours} {
		if hours != nil && (*hours < 0 || *hours > maxTrackedHours) {
			return "", invalid("hours must be between 0 and %d", maxTrackedHours)
		}
	}
	return priority, nil
}

// CreateTask appends a task at the end of the target column. The column must
// belong to a board the caller owns.
func (svc *Service) CreateTask(ctx context.Context, callerID string, columnID int64, fields TaskFields) (*model.Task, error) {
	priority, err := fields.validate()
	if err != nil {
		return nil, err
	}

	column, err := svc.repo.GetColumn(ctx, columnID)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwner(column.OwnerID, callerID); err != nil {
		return nil, err
	}

	siblings, err := svc.repo.ListTasks(ctx, columnID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ColumnID:       columnID,
		AssignedUserID: fields.AssignedUserID,
		Title:          strings.TrimSpace(fields.Title),
		Description:    fields.Description,
		Priority:       priority,
		EstimatedHours: fields.EstimatedHours,
		RemainingHours: fields.RemainingHours,
		DueDate:        fields.DueDate,
		OrderIndex:     ordering.Next(taskItems(siblings, 0)),
	}
	if err := svc.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (svc *Service) GetTask(ctx context.Context, callerID string, id int64) (*TaskDetails, error) {
	task, err := svc.repo.GetTask(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwnerOrAssignee(task.OwnerID, task.AssignedUserID, callerID); err != nil {
		return nil, err
	}

	comments, err := svc.repo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := svc.repo.ListTimeEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TaskDetails{
		Task:        *task,
		ColumnTitle: task.ColumnTitle,
		Comments:    comments,
		TimeEntries: entries,
	}, nil
}

// EditTask updates the task's own fields. Order index is never touched here;
// placement goes through MoveTask.
func (svc *Service) EditTask(ctx context.Context, callerID string, id int64, fields TaskFields) (*model.Task, error) {
	priority, err := fields.validate()
	if err != nil {
		return nil, err
	}

	task, err := svc.repo.GetTask(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwnerOrAssignee(task.OwnerID, task.AssignedUserID, callerID); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(fields.Title)
	task.Description = fields.Description
	task.Priority = priority
	task.EstimatedHours = fields.EstimatedHours
	task.RemainingHours = fields.RemainingHours
	task.DueDate = fields.DueDate
	task.AssignedUserID = fields.AssignedUserID

	if err := svc.repo.UpdateTask(ctx, task); err != nil {
		return nil, storeErr(err)
	}
	now := time.Now().UTC()
	task.UpdatedAt = &now
	return task, nil
}

// MoveTask handles drag and drop: a column change, a reorder within the
// destination column, or both. The caller must own the board of the task's
// current column. A destination column on another board is only allowed when
// the caller owns that board too.
func (svc *Service) MoveTask(ctx context.Context, callerID string, taskID, newColumnID int64, newOrderIndex *int) (*model.Task, error) {
	task, err := svc.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwner(task.OwnerID, callerID); err != nil {
		return nil, err
	}

	var changed []model.Task

	if newColumnID != task.ColumnID {
		dest, err := svc.repo.GetColumn(ctx, newColumnID)
		if err != nil {
			return nil, storeErr(err)
		}
		if dest.BoardID != task.BoardID && dest.OwnerID != callerID {
			return nil, ErrNotFound
		}

		// Close the gap the task leaves behind: the source siblings are
		// renumbered densely to 0..N-1.
		source, err := svc.repo.ListTasks(ctx, task.ColumnID)
		if err != nil {
			return nil, err
		}
		left := taskItems(source, task.ID)
		renumbered, err := ordering.Reinsert(left, len(left))
		if err != nil {
			return nil, err
		}
		changed = append(changed, applyTaskItems(source, renumbered)...)

		task.ColumnID = newColumnID
	}

	siblings, err := svc.repo.ListTasks(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	items := taskItems(siblings, task.ID)

	if newOrderIndex != nil {
		renumbered, err := ordering.Reinsert(items, *newOrderIndex)
		if err != nil {
			return nil, invalid("order index must not be negative")
		}
		changed = append(changed, applyTaskItems(siblings, renumbered)...)
		task.OrderIndex = *newOrderIndex
	} else {
		task.OrderIndex = ordering.Next(items)
	}

	if err := svc.repo.MoveTask(ctx, task, changed); err != nil {
		return nil, storeErr(err)
	}
	now := time.Now().UTC()
	task.UpdatedAt = &now
	return task, nil
}

func (svc *Service) DeleteTask(ctx context.Context, callerID string, id int64) error {
	task, err := svc.repo.GetTask(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if err := guardOwner(task.OwnerID, callerID); err != nil {
		return err
	}
	return storeErr(svc.repo.DeleteTask(ctx, id))
}

// taskItems converts tasks to sequencer items, skipping excludeID (0 skips
// nothing).
func taskItems(tasks []model.Task, excludeID int64) []ordering.Item {
	items := make([]ordering.Item, 0, len(tasks))
	for _, task := range tasks {
		if task.ID == excludeID {
			continue
		}
		items = append(items, ordering.Item{ID: task.ID, Index: task.OrderIndex})
	}
	return items
}

// applyTaskItems maps renumbered sequencer items back onto the tasks that
// actually changed.
func applyTaskItems(tasks []model.Task, items []ordering.Item) []model.Task {
	indexes := make(map[int64]int, len(items))
	for _, it := range items {
		indexes[it.ID] = it.Index
	}
	changed := make([]model.Task, 0, len(items))
	for _, task := range tasks {
		idx, ok := indexes[task.ID]
		if !ok || idx == task.OrderIndex {
			continue
		}
		task.OrderIndex = idx
		changed = append(changed, task)
	}
	return changed
}
