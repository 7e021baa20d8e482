package service

import (
	"context"
	"strings"
	"time"

	"github.com/gfdmit/kanban/internal/model"
)

// Every new board starts with the same three columns.
var defaultColumns = []struct {
	title string
	index int
}{
	{"To Do", 1},
	{"In Progress", 2},
	{"Done", 3},
}

const (
	maxBoardTitleLen  = 100
	maxDescriptionLen = 2000
	maxTaskTitleLen   = 150
	maxCommentLen     = 1000
	maxTrackedHours   = 1000
)

// BoardView is the full kanban view of one board.
type BoardView struct {
	model.Board
	Columns []ColumnView `json:"columns"`
}

type ColumnView struct {
	model.Column
	Tasks []model.Task `json:"tasks"`
}

func (svc *Service) CreateBoard(ctx context.Context, callerID, title string, description *string) (*model.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("board title is required")
	}
	if len(title) > maxBoardTitleLen {
		return nil, invalid("board title exceeds %d characters", maxBoardTitleLen)
	}
	if description != nil && len(*description) > maxDescriptionLen {
		return nil, invalid("description exceeds %d characters", maxDescriptionLen)
	}

	board := &model.Board{
		OwnerID:     callerID,
		Title:       title,
		Description: description,
	}
	columns := make([]model.Column, 0, len(defaultColumns))
	for _, dc := range defaultColumns {
		columns = append(columns, model.Column{Title: dc.title, OrderIndex: dc.index})
	}

	if err := svc.repo.CreateBoard(ctx, board, columns); err != nil {
		return nil, err
	}
	return board, nil
}

func (svc *Service) ListBoards(ctx context.Context, callerID string) ([]model.Board, error) {
	return svc.repo.ListBoards(ctx, callerID)
}

func (svc *Service) SearchBoards(ctx context.Context, callerID, query string) ([]model.Board, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return svc.repo.ListBoards(ctx, callerID)
	}
	return svc.repo.SearchBoards(ctx, callerID, query)
}

// GetBoard assembles the kanban view. Besides the owner, users assigned to
// any task on the board may read it.
func (svc *Service) GetBoard(ctx context.Context, callerID string, id int64) (*BoardView, error) {
	board, err := svc.repo.GetBoard(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	if board.OwnerID != callerID {
		assigned, err := svc.repo.BoardHasAssignee(ctx, id, callerID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, ErrNotFound
		}
	}

	columns, err := svc.repo.ListColumns(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := svc.repo.ListBoardTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[int64][]model.Task, len(columns))
	for _, task := range tasks {
		byColumn[task.ColumnID] = append(byColumn[task.ColumnID], task)
	}

	view := &BoardView{Board: *board, Columns: make([]ColumnView, 0, len(columns))}
	for _, column := range columns {
		columnTasks := byColumn[column.ID]
		if columnTasks == nil {
			columnTasks = []model.Task{}
		}
		view.Columns = append(view.Columns, ColumnView{Column: column, Tasks: columnTasks})
	}
	return view, nil
}

// UpdateBoard changes title and/or description. A nil title keeps the old
// one; the description is replaced as given.
func (svc *Service) UpdateBoard(ctx context.Context, callerID string, id int64, title *string, description *string) (*model.Board, error) {
	board, err := svc.repo.GetBoard(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwner(board.OwnerID, callerID); err != nil {
		return nil, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, invalid("board title is required")
		}
		if len(trimmed) > maxBoardTitleLen {
			return nil, invalid("board title exceeds %d characters", maxBoardTitleLen)
		}
		board.Title = trimmed
	}
	if description != nil && len(*description) > maxDescriptionLen {
		return nil, invalid("description exceeds %d characters", maxDescriptionLen)
	}
	board.Description = description

	if err := svc.repo.UpdateBoard(ctx, board); err != nil {
		return nil, storeErr(err)
	}
	now := time.Now().UTC()
	board.UpdatedAt = &now
	return board, nil
}

func (svc *Service) DeleteBoard(ctx context.Context, callerID string, id int64) error {
	board, err := svc.repo.GetBoard(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if err := guardOwner(board.OwnerID, callerID); err != nil {
		return err
	}
	return storeErr(svc.repo.DeleteBoard(ctx, id))
}
