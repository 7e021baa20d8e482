package service

import (
	"context"
	"strings"

	"github.com/gfdmit/kanban/internal/model"
)

func (svc *Service) AddComment(ctx context.Context, callerID string, taskID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment must not be empty")
	}
	if len(content) > maxCommentLen {
		return nil, invalid("comment exceeds %d characters", maxCommentLen)
	}

	task, err := svc.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwnerOrAssignee(task.OwnerID, task.AssignedUserID, callerID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		TaskID:   taskID,
		AuthorID: &callerID,
		Content:  content,
	}
	if err := svc.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (svc *Service) LogTime(ctx context.Context, callerID string, taskID int64, hours float64, note *string) (*model.TimeEntry, error) {
	if hours <= 0 {
		return nil, invalid("hours spent must be positive")
	}

	task, err := svc.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwnerOrAssignee(task.OwnerID, task.AssignedUserID, callerID); err != nil {
		return nil, err
	}

	entry := &model.TimeEntry{
		TaskID:     taskID,
		AuthorID:   &callerID,
		HoursSpent: hours,
		Note:       note,
	}
	if err := svc.repo.CreateTimeEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
