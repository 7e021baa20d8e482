package repository

import (
	"context"
	"errors"

	"github.com/gfdmit/kanban/internal/model"
)

// ErrNotFound is returned when a row does not exist. Implementations map
// their driver-level miss onto it so callers never see sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")

// Repository is the durable store behind the services. Reads of columns and
// tasks come back with the owning board's owner id already joined in, so an
// authorization check never needs a second query. Multi-row methods
// (CreateBoard, UpdateColumnOrder, MoveTask) commit all their writes in a
// single transaction.
type Repository interface {
	CreateUser(ctx context.Context, user *model.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateBoard(ctx context.Context, board *model.Board, columns []model.Column) error
	GetBoard(ctx context.Context, id int64) (*model.Board, error)
	ListBoards(ctx context.Context, ownerID string) ([]model.Board, error)
	ListAllBoards(ctx context.Context) ([]model.Board, error)
	SearchBoards(ctx context.Context, ownerID, query string) ([]model.Board, error)
	UpdateBoard(ctx context.Context, board *model.Board) error
	DeleteBoard(ctx context.Context, id int64) error
	CountBoards(ctx context.Context) (int, error)
	BoardHasAssignee(ctx context.Context, boardID int64, userID string) (bool, error)

	GetColumn(ctx context.Context, id int64) (*model.Column, error)
	ListColumns(ctx context.Context, boardID int64) ([]model.Column, error)
	CreateColumn(ctx context.Context, column *model.Column) error
	UpdateColumnOrder(ctx context.Context, columns []model.Column) error
	DeleteColumn(ctx context.Context, id int64) error

	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, columnID int64) ([]model.Task, error)
	ListBoardTasks(ctx context.Context, boardID int64) ([]model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, task *model.Task) error
	MoveTask(ctx context.Context, task *model.Task, siblings []model.Task) error
	DeleteTask(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, taskID int64) ([]model.Comment, error)

	CreateTimeEntry(ctx context.Context, entry *model.TimeEntry) error
	ListTimeEntries(ctx context.Context, taskID int64) ([]model.TimeEntry, error)
}
