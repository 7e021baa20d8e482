package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gfdmit/kanban/internal/model"
	"github.com/gfdmit/kanban/internal/repository"
)

// fakeRepo is an in-memory stand-in for the Postgres store. It honors the
// store contract the services rely on: joined ownership keys on reads,
// ordered sibling listings, cascading deletes and assignment clearing.
type fakeRepo struct {
	users     map[string]model.User
	passwords map[string]string
	boards    map[int64]model.Board
	columns   map[int64]model.Column
	tasks     map[int64]model.Task
	comments  map[int64]model.Comment
	entries   map[int64]model.TimeEntry
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     map[string]model.User{},
		passwords: map[string]string{},
		boards:    map[int64]model.Board{},
		columns:   map[int64]model.Column{},
		tasks:     map[int64]model.Task{},
		comments:  map[int64]model.Comment{},
		entries:   map[int64]model.TimeEntry{},
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

// ---- users ----

func (f *fakeRepo) CreateUser(_ context.Context, user *model.User, passwordHash string) error {
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = *user
	f.passwords[user.ID] = passwordHash
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) ListUsers(context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return displayName(users[i]) < displayName(users[j])
	})
	return users, nil
}

func displayName(u model.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// ---- boards ----

func (f *fakeRepo) CreateBoard(_ context.Context, board *model.Board, columns []model.Column) error {
	board.ID = f.id()
	board.CreatedAt = time.Now().UTC()
	f.boards[board.ID] = *board
	for i := range columns {
		columns[i].ID = f.id()
		columns[i].BoardID = board.ID
		f.columns[columns[i].ID] = columns[i]
	}
	return nil
}

func (f *fakeRepo) GetBoard(_ context.Context, id int64) (*model.Board, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &board, nil
}

func (f *fakeRepo) ListBoards(_ context.Context, ownerID string) ([]model.Board, error) {
	boards := []model.Board{}
	for _, board := range f.boards {
		if board.OwnerID == ownerID {
			boards = append(boards, board)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID > boards[j].ID })
	return boards, nil
}

func (f *fakeRepo) ListAllBoards(context.Context) ([]model.Board, error) {
	boards := []model.Board{}
	for _, board := range f.boards {
		boards = append(boards, board)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID > boards[j].ID })
	return boards, nil
}

func (f *fakeRepo) SearchBoards(ctx context.Context, ownerID, query string) ([]model.Board, error) {
	all, _ := f.ListBoards(ctx, ownerID)
	boards := []model.Board{}
	for _, board := range all {
		if strings.Contains(strings.ToLower(board.Title), strings.ToLower(query)) {
			boards = append(boards, board)
		}
	}
	return boards, nil
}

func (f *fakeRepo) UpdateBoard(_ context.Context, board *model.Board) error {
	if _, ok := f.boards[board.ID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	board.UpdatedAt = &now
	f.boards[board.ID] = *board
	return nil
}

func (f *fakeRepo) DeleteBoard(_ context.Context, id int64) error {
	if _, ok := f.boards[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.boards, id)
	for cid, column := range f.columns {
		if column.BoardID == id {
			f.deleteColumnCascade(cid)
		}
	}
	return nil
}

func (f *fakeRepo) CountBoards(context.Context) (int, error) {
	return len(f.boards), nil
}

func (f *fakeRepo) BoardHasAssignee(_ context.Context, boardID int64, userID string) (bool, error) {
	for _, task := range f.tasks {
		column, ok := f.columns[task.ColumnID]
		if !ok || column.BoardID != boardID {
			continue
		}
		if task.AssignedUserID != nil && *task.AssignedUserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ---- columns ----

func (f *fakeRepo) GetColumn(_ context.Context, id int64) (*model.Column, error) {
	column, ok := f.columns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	column.OwnerID = f.boards[column.BoardID].OwnerID
	return &column, nil
}

func (f *fakeRepo) ListColumns(_ context.Context, boardID int64) ([]model.Column, error) {
	columns := []model.Column{}
	for _, column := range f.columns {
		if column.BoardID == boardID {
			columns = append(columns, column)
		}
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].OrderIndex != columns[j].OrderIndex {
			return columns[i].OrderIndex < columns[j].OrderIndex
		}
		return columns[i].ID < columns[j].ID
	})
	return columns, nil
}

func (f *fakeRepo) CreateColumn(_ context.Context, column *model.Column) error {
	column.ID = f.id()
	f.columns[column.ID] = *column
	return nil
}

func (f *fakeRepo) UpdateColumnOrder(_ context.Context, columns []model.Column) error {
	for _, column := range columns {
		stored, ok := f.columns[column.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.OrderIndex = column.OrderIndex
		f.columns[column.ID] = stored
	}
	return nil
}

func (f *fakeRepo) DeleteColumn(_ context.Context, id int64) error {
	if _, ok := f.columns[id]; !ok {
		return repository.ErrNotFound
	}
	f.deleteColumnCascade(id)
	return nil
}

func (f *fakeRepo) deleteColumnCascade(id int64) {
	delete(f.columns, id)
	for tid, task := range f.tasks {
		if task.ColumnID == id {
			f.deleteTaskCascade(tid)
		}
	}
}

// ---- tasks ----

func (f *fakeRepo) GetTask(_ context.Context, id int64) (*model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	f.joinTask(&task)
	return &task, nil
}

func (f *fakeRepo) joinTask(task *model.Task) {
	column := f.columns[task.ColumnID]
	task.BoardID = column.BoardID
	task.ColumnTitle = column.Title
	task.OwnerID = f.boards[column.BoardID].OwnerID
	if task.AssignedUserID != nil {
		task.AssigneeName = displayName(f.users[*task.AssignedUserID])
	}
}

func (f *fakeRepo) ListTasks(_ context.Context, columnID int64) ([]model.Task, error) {
	tasks := []model.Task{}
	for _, task := range f.tasks {
		if task.ColumnID == columnID {
			f.joinTask(&task)
			tasks = append(tasks, task)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

func (f *fakeRepo) ListBoardTasks(_ context.Context, boardID int64) ([]model.Task, error) {
	tasks := []model.Task{}
	for _, task := range f.tasks {
		if column, ok := f.columns[task.ColumnID]; ok && column.BoardID == boardID {
			f.joinTask(&task)
			tasks = append(tasks, task)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

func sortTasks(tasks []model.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].OrderIndex != tasks[j].OrderIndex {
			return tasks[i].OrderIndex < tasks[j].OrderIndex
		}
		return tasks[i].ID < tasks[j].ID
	})
}

func (f *fakeRepo) CreateTask(_ context.Context, task *model.Task) error {
	task.ID = f.id()
	task.CreatedAt = time.Now().UTC()
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeRepo) UpdateTask(_ context.Context, task *model.Task) error {
	stored, ok := f.tasks[task.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.AssignedUserID = task.AssignedUserID
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Priority = task.Priority
	stored.EstimatedHours = task.EstimatedHours
	stored.RemainingHours = task.RemainingHours
	stored.DueDate = task.DueDate
	now := time.Now().UTC()
	stored.UpdatedAt = &now
	f.tasks[task.ID] = stored
	return nil
}

func (f *fakeRepo) MoveTask(_ context.Context, task *model.Task, siblings []model.Task) error {
	for _, sibling := range siblings {
		stored, ok := f.tasks[sibling.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.OrderIndex = sibling.OrderIndex
		f.tasks[sibling.ID] = stored
	}
	stored, ok := f.tasks[task.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.ColumnID = task.ColumnID
	stored.OrderIndex = task.OrderIndex
	now := time.Now().UTC()
	stored.UpdatedAt = &now
	f.tasks[task.ID] = stored
	return nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	f.deleteTaskCascade(id)
	return nil
}

func (f *fakeRepo) deleteTaskCascade(id int64) {
	delete(f.tasks, id)
	for cid, comment := range f.comments {
		if comment.TaskID == id {
			delete(f.comments, cid)
		}
	}
	for eid, entry := range f.entries {
		if entry.TaskID == id {
			delete(f.entries, eid)
		}
	}
}

// ---- comments / time entries ----

func (f *fakeRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.ID = f.id()
	comment.CreatedAt = time.Now().UTC()
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeRepo) ListComments(_ context.Context, taskID int64) ([]model.Comment, error) {
	comments := []model.Comment{}
	for _, comment := range f.comments {
		if comment.TaskID == taskID {
			if comment.AuthorID != nil {
				comment.AuthorName = displayName(f.users[*comment.AuthorID])
			}
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, nil
}

func (f *fakeRepo) CreateTimeEntry(_ context.Context, entry *model.TimeEntry) error {
	entry.ID = f.id()
	entry.LoggedAt = time.Now().UTC()
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeRepo) ListTimeEntries(_ context.Context, taskID int64) ([]model.TimeEntry, error) {
	entries := []model.TimeEntry{}
	for _, entry := range f.entries {
		if entry.TaskID == taskID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	return entries, nil
}
