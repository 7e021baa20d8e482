package service

import (
	"context"
	"strings"

	"github.com/gfdmit/kanban/internal/model"
	"github.com/gfdmit/kanban/internal/ordering"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionLeft, DirectionRight:
		return Direction(s), nil
	}
	return "", invalid("direction must be %q or %q", DirectionLeft, DirectionRight)
}

func (svc *Service) CreateColumn(ctx context.Context, callerID string, boardID int64, title string) (*model.Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("column title is required")
	}

	board, err := svc.repo.GetBoard(ctx, boardID)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := guardOwner(board.OwnerID, callerID); err != nil {
		return nil, err
	}

	siblings, err := svc.repo.ListColumns(ctx, boardID)
	if err != nil {
		return nil, err
	}

	column := &model.Column{
		BoardID:    boardID,
		Title:      title,
		OrderIndex: ordering.Next(columnItems(siblings)),
	}
	if err := svc.repo.CreateColumn(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// MoveColumn shifts a column one position left or right by exchanging order
// indexes with its neighbor. A move past either edge is a no-op, reported as
// moved=false rather than an error.
func (svc *Service) MoveColumn(ctx context.Context, callerID string, columnID int64, direction Direction) (bool, error) {
	column, err := svc.repo.GetColumn(ctx, columnID)
	if err != nil {
		return false, storeErr(err)
	}
	if err := guardOwner(column.OwnerID, callerID); err != nil {
		return false, err
	}

	siblings, err := svc.repo.ListColumns(ctx, column.BoardID)
	if err != nil {
		return false, err
	}

	pos := -1
	for i, sibling := range siblings {
		if sibling.ID == columnID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false, ErrNotFound
	}

	var neighbor int
	switch {
	case direction == DirectionLeft && pos > 0:
		neighbor = pos - 1
	case direction == DirectionRight && pos < len(siblings)-1:
		neighbor = pos + 1
	default:
		return false, nil
	}

	a, b := ordering.Swap(
		ordering.Item{ID: siblings[pos].ID, Index: siblings[pos].OrderIndex},
		ordering.Item{ID: siblings[neighbor].ID, Index: siblings[neighbor].OrderIndex},
	)
	siblings[pos].OrderIndex = a.Index
	siblings[neighbor].OrderIndex = b.Index

	err = svc.repo.UpdateColumnOrder(ctx, []model.Column{siblings[pos], siblings[neighbor]})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (svc *Service) DeleteColumn(ctx context.Context, callerID string, columnID int64) error {
	column, err := svc.repo.GetColumn(ctx, columnID)
	if err != nil {
		return storeErr(err)
	}
	if err := guardOwner(column.OwnerID, callerID); err != nil {
		return err
	}
	return storeErr(svc.repo.DeleteColumn(ctx, columnID))
}

func columnItems(columns []model.Column) []ordering.Item {
	items := make([]ordering.Item, len(columns))
	for i, column := range columns {
		items[i] = ordering.Item{ID: column.ID, Index: column.OrderIndex}
	}
	return items
}
