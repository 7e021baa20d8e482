package service

import (
	"context"
	"time"
)

// BoardSummary is the read-only shape served to external reporting consumers
// (CRM integrations and the like): board metadata plus column and task
// counts, without any of the board's contents.
type BoardSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	ColumnCount int       `json:"column_count"`
	TaskCount   int       `json:"task_count"`
}

func (svc *Service) BoardSummaries(ctx context.Context) ([]BoardSummary, error) {
	boards, err := svc.repo.ListAllBoards(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]BoardSummary, 0, len(boards))
	for _, board := range boards {
		summary, err := svc.summarize(ctx, board.ID, board.Title, board.CreatedAt)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (svc *Service) BoardSummary(ctx context.Context, id int64) (*BoardSummary, error) {
	board, err := svc.repo.GetBoard(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return svc.summarize(ctx, board.ID, board.Title, board.CreatedAt)
}

func (svc *Service) summarize(ctx context.Context, id int64, title string, createdAt time.Time) (*BoardSummary, error) {
	columns, err := svc.repo.ListColumns(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := svc.repo.ListBoardTasks(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BoardSummary{
		ID:          id,
		Title:       title,
		CreatedAt:   createdAt,
		ColumnCount: len(columns),
		TaskCount:   len(tasks),
	}, nil
}
