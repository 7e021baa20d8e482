package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gfdmit/kanban/internal/auth"
	v1 "github.com/gfdmit/kanban/internal/handlers/http/v1"
	"github.com/gfdmit/kanban/internal/model"
	"github.com/gfdmit/kanban/internal/repository"
	"github.com/gfdmit/kanban/internal/service"
	"github.com/gin-gonic/gin"
)

// headerIdentity resolves the caller from an X-Test-User header so each
// request in a test can impersonate a different user without cookies.
type headerIdentity struct{}

func (headerIdentity) CurrentUserID(_ context.Context, r *http.Request) (string, error) {
	id := r.Header.Get("X-Test-User")
	if id == "" {
		return "", auth.ErrNoSession
	}
	return id, nil
}

var _ auth.Identity = headerIdentity{}

// memStore is a minimal in-memory store for the routing tests. It keeps the
// same join and ordering behavior the services expect from Postgres.
type memStore struct {
	boards  map[int64]model.Board
	columns map[int64]model.Column
	tasks   map[int64]model.Task
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{
		boards:  map[int64]model.Board{},
		columns: map[int64]model.Column{},
		tasks:   map[int64]model.Task{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(context.Context, *model.User, string) error { return nil }

func (m *memStore) GetUserByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *memStore) ListUsers(context.Context) ([]model.User, error) {
	return []model.User{{ID: "u-1", Email: "one@example.com", FullName: "User One"}}, nil
}

func (m *memStore) CreateBoard(_ context.Context, board *model.Board, columns []model.Column) error {
	board.ID = m.id()
	board.CreatedAt = time.Now().UTC()
	m.boards[board.ID] = *board
	for i := range columns {
		columns[i].ID = m.id()
		columns[i].BoardID = board.ID
		columns[i].OwnerID = board.OwnerID
		m.columns[columns[i].ID] = columns[i]
	}
	return nil
}

func (m *memStore) GetBoard(_ context.Context, id int64) (*model.Board, error) {
	board, ok := m.boards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &board, nil
}

func (m *memStore) ListBoards(_ context.Context, ownerID string) ([]model.Board, error) {
	var out []model.Board
	for _, board := range m.boards {
		if board.OwnerID == ownerID {
			out = append(out, board)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListAllBoards(_ context.Context) ([]model.Board, error) {
	var out []model.Board
	for _, board := range m.boards {
		out = append(out, board)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SearchBoards(ctx context.Context, ownerID, query string) ([]model.Board, error) {
	boards, _ := m.ListBoards(ctx, ownerID)
	var out []model.Board
	for _, board := range boards {
		if strings.Contains(strings.ToLower(board.Title), strings.ToLower(query)) {
			out = append(out, board)
		}
	}
	return out, nil
}

func (m *memStore) UpdateBoard(_ context.Context, board *model.Board) error {
	if _, ok := m.boards[board.ID]; !ok {
		return repository.ErrNotFound
	}
	m.boards[board.ID] = *board
	return nil
}

func (m *memStore) DeleteBoard(_ context.Context, id int64) error {
	if _, ok := m.boards[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.boards, id)
	for cid, column := range m.columns {
		if column.BoardID == id {
			delete(m.columns, cid)
		}
	}
	for tid, task := range m.tasks {
		if task.BoardID == id {
			delete(m.tasks, tid)
		}
	}
	return nil
}

func (m *memStore) CountBoards(context.Context) (int, error) { return len(m.boards), nil }

func (m *memStore) BoardHasAssignee(_ context.Context, boardID int64, userID string) (bool, error) {
	for _, task := range m.tasks {
		if task.BoardID == boardID && task.AssignedUserID != nil && *task.AssignedUserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetColumn(_ context.Context, id int64) (*model.Column, error) {
	column, ok := m.columns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &column, nil
}

func (m *memStore) ListColumns(_ context.Context, boardID int64) ([]model.Column, error) {
	var out []model.Column
	for _, column := range m.columns {
		if column.BoardID == boardID {
			out = append(out, column)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (m *memStore) CreateColumn(_ context.Context, column *model.Column) error {
	column.ID = m.id()
	if board, ok := m.boards[column.BoardID]; ok {
		column.OwnerID = board.OwnerID
	}
	m.columns[column.ID] = *column
	return nil
}

func (m *memStore) UpdateColumnOrder(_ context.Context, columns []model.Column) error {
	for _, column := range columns {
		stored, ok := m.columns[column.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.OrderIndex = column.OrderIndex
		m.columns[column.ID] = stored
	}
	return nil
}

func (m *memStore) DeleteColumn(_ context.Context, id int64) error {
	if _, ok := m.columns[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.columns, id)
	for tid, task := range m.tasks {
		if task.ColumnID == id {
			delete(m.tasks, tid)
		}
	}
	return nil
}

func (m *memStore) joinTask(task model.Task) model.Task {
	if column, ok := m.columns[task.ColumnID]; ok {
		task.BoardID = column.BoardID
		task.OwnerID = column.OwnerID
		task.ColumnTitle = column.Title
	}
	return task
}

func (m *memStore) GetTask(_ context.Context, id int64) (*model.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	joined := m.joinTask(task)
	return &joined, nil
}

func (m *memStore) ListTasks(_ context.Context, columnID int64) ([]model.Task, error) {
	var out []model.Task
	for _, task := range m.tasks {
		if task.ColumnID == columnID {
			out = append(out, m.joinTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (m *memStore) ListBoardTasks(_ context.Context, boardID int64) ([]model.Task, error) {
	var out []model.Task
	for _, task := range m.tasks {
		joined := m.joinTask(task)
		if joined.BoardID == boardID {
			out = append(out, joined)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateTask(_ context.Context, task *model.Task) error {
	task.ID = m.id()
	task.CreatedAt = time.Now().UTC()
	m.tasks[task.ID] = *task
	return nil
}

func (m *memStore) UpdateTask(_ context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memStore) MoveTask(_ context.Context, task *model.Task, siblings []model.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	m.tasks[task.ID] = *task
	for _, sibling := range siblings {
		stored, ok := m.tasks[sibling.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.OrderIndex = sibling.OrderIndex
		m.tasks[sibling.ID] = stored
	}
	return nil
}

func (m *memStore) DeleteTask(_ context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memStore) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.ID = m.id()
	comment.CreatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) ListComments(context.Context, int64) ([]model.Comment, error) { return nil, nil }

func (m *memStore) CreateTimeEntry(_ context.Context, entry *model.TimeEntry) error {
	entry.ID = m.id()
	entry.LoggedAt = time.Now().UTC()
	return nil
}

func (m *memStore) ListTimeEntries(context.Context, int64) ([]model.TimeEntry, error) {
	return nil, nil
}

var _ repository.Repository = (*memStore)(nil)

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	router, err := v1.New(service.New(store), headerIdentity{})
	if err != nil {
		t.Fatalf("router setup: %v", err)
	}
	return router, store
}

func doRequest(t *testing.T, router *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
