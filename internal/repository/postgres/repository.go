package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gfdmit/kanban/config"
	"github.com/gfdmit/kanban/internal/model"
	"github.com/gfdmit/kanban/internal/repository"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

func New(conf config.Postgres) (*postgresRepository, error) {
	url := fmt.Sprintf(
		"postgresql://%v:%v@%v:%v/%v?sslmode=disable", conf.User, conf.Pass, conf.Host, conf.Port, conf.DB)

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %v", err)
	}
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("db.Ping: %v", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres.WithInstance: %v", err)
	}
	migrations := fmt.Sprintf("file://%v", conf.Migrations)
	m, err := migrate.NewWithDatabaseInstance(migrations, conf.DB, driver)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithDatabaseInstance: %v", err)
	}
	log.Println("applying migrations...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("nothing to migrate")
		} else {
			return nil, fmt.Errorf("error when migrating: %v", err)
		}
	} else {
		log.Println("migrated successfully!")
	}

	return &postgresRepository{
		db: db,
	}, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// ---- users ----

func (pr *postgresRepository) CreateUser(ctx context.Context, user *model.User, passwordHash string) error {
	return pr.db.QueryRowContext(ctx,
		"INSERT INTO users (id, email, full_name, password_hash) VALUES ($1, $2, $3, $4) RETURNING created_at",
		user.ID, user.Email, user.FullName, passwordHash).Scan(&user.CreatedAt)
}

func (pr *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := pr.db.QueryRowContext(ctx,
		"SELECT id, email, full_name, created_at FROM users WHERE email = $1", email).Scan(
		&user.ID, &user.Email, &user.FullName, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (pr *postgresRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT id, email, full_name, created_at FROM users ORDER BY COALESCE(NULLIF(full_name, ''), email)")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user := model.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ---- boards ----

func (pr *postgresRepository) CreateBoard(ctx context.Context, board *model.Board, columns []model.Column) error {
	tx, err := pr.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"INSERT INTO boards (owner_id, title, description) VALUES ($1, $2, $3) RETURNING id, created_at",
		board.OwnerID, board.Title, board.Description).Scan(&board.ID, &board.CreatedAt)
	if err != nil {
		return err
	}

	for i := range columns {
		columns[i].BoardID = board.ID
		err = tx.QueryRowContext(ctx,
			"INSERT INTO columns (board_id, title, order_index) VALUES ($1, $2, $3) RETURNING id",
			columns[i].BoardID, columns[i].Title, columns[i].OrderIndex).Scan(&columns[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (pr *postgresRepository) GetBoard(ctx context.Context, id int64) (*model.Board, error) {
	board := &model.Board{}
	err := pr.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, description, created_at, updated_at FROM boards WHERE id = $1", id).Scan(
		&board.ID, &board.OwnerID, &board.Title, &board.Description, &board.CreatedAt, &board.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return board, nil
}

func (pr *postgresRepository) ListBoards(ctx context.Context, ownerID string) ([]model.Board, error) {
	return pr.queryBoards(ctx,
		"SELECT id, owner_id, title, description, created_at, updated_at FROM boards WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID)
}

func (pr *postgresRepository) ListAllBoards(ctx context.Context) ([]model.Board, error) {
	return pr.queryBoards(ctx,
		"SELECT id, owner_id, title, description, created_at, updated_at FROM boards ORDER BY created_at DESC")
}

func (pr *postgresRepository) SearchBoards(ctx context.Context, ownerID, query string) ([]model.Board, error) {
	return pr.queryBoards(ctx,
		"SELECT id, owner_id, title, description, created_at, updated_at FROM boards WHERE owner_id = $1 AND title ILIKE '%' || $2 || '%' ORDER BY created_at DESC",
		ownerID, query)
}

func (pr *postgresRepository) queryBoards(ctx context.Context, q string, args ...any) ([]model.Board, error) {
	rows, err := pr.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []model.Board{}
	for rows.Next() {
		board := model.Board{}
		err = rows.Scan(&board.ID, &board.OwnerID, &board.Title, &board.Description, &board.CreatedAt, &board.UpdatedAt)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}

func (pr *postgresRepository) UpdateBoard(ctx context.Context, board *model.Board) error {
	res, err := pr.db.ExecContext(ctx,
		"UPDATE boards SET title = $1, description = $2, updated_at = NOW() WHERE id = $3",
		board.Title, board.Description, board.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (pr *postgresRepository) DeleteBoard(ctx context.Context, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (pr *postgresRepository) CountBoards(ctx context.Context) (int, error) {
	var count int
	err := pr.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boards").Scan(&count)
	return count, err
}

func (pr *postgresRepository) BoardHasAssignee(ctx context.Context, boardID int64, userID string) (bool, error) {
	var exists bool
	err := pr.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM tasks t
			JOIN columns c ON c.id = t.column_id
			WHERE c.board_id = $1 AND t.assigned_user_id = $2
		)`, boardID, userID).Scan(&exists)
	return exists, err
}

// ---- columns ----

func (pr *postgresRepository) GetColumn(ctx context.Context, id int64) (*model.Column, error) {
	column := &model.Column{}
	err := pr.db.QueryRowContext(ctx,
		`SELECT c.id, c.board_id, c.title, c.order_index, b.owner_id
		 FROM columns c
		 JOIN boards b ON b.id = c.board_id
		 WHERE c.id = $1`, id).Scan(
		&column.ID, &column.BoardID, &column.Title, &column.OrderIndex, &column.OwnerID)
	if err != nil {
		return nil, notFound(err)
	}
	return column, nil
}

func (pr *postgresRepository) ListColumns(ctx context.Context, boardID int64) ([]model.Column, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT id, board_id, title, order_index FROM columns WHERE board_id = $1 ORDER BY order_index, id", boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []model.Column{}
	for rows.Next() {
		column := model.Column{}
		if err := rows.Scan(&column.ID, &column.BoardID, &column.Title, &column.OrderIndex); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

func (pr *postgresRepository) CreateColumn(ctx context.Context, column *model.Column) error {
	return pr.db.QueryRowContext(ctx,
		"INSERT INTO columns (board_id, title, order_index) VALUES ($1, $2, $3) RETURNING id",
		column.BoardID, column.Title, column.OrderIndex).Scan(&column.ID)
}

func (pr *postgresRepository) UpdateColumnOrder(ctx context.Context, columns []model.Column) error {
	tx, err := pr.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, column := range columns {
		if _, err := tx.ExecContext(ctx,
			"UPDATE columns SET order_index = $1 WHERE id = $2", column.OrderIndex, column.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (pr *postgresRepository) DeleteColumn(ctx context.Context, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM columns WHERE id = $1", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// ---- tasks ----

const taskSelect = `SELECT t.id, t.column_id, t.assigned_user_id, t.title, t.description, t.priority,
	t.estimated_hours, t.remaining_hours, t.due_date, t.order_index, t.created_at, t.updated_at,
	c.board_id, c.title, b.owner_id, COALESCE(NULLIF(u.full_name, ''), u.email, '')
	FROM tasks t
	JOIN columns c ON c.id = t.column_id
	JOIN boards b ON b.id = c.board_id
	LEFT JOIN users u ON u.id = t.assigned_user_id`

func scanTask(row interface{ Scan(...any) error }) (*model.Task, error) {
	task := &model.Task{}
	err := row.Scan(
		&task.ID, &task.ColumnID, &task.AssignedUserID, &task.Title, &task.Description, &task.Priority,
		&task.EstimatedHours, &task.RemainingHours, &task.DueDate, &task.OrderIndex, &task.CreatedAt, &task.UpdatedAt,
		&task.BoardID, &task.ColumnTitle, &task.OwnerID, &task.AssigneeName)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (pr *postgresRepository) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := scanTask(pr.db.QueryRowContext(ctx, taskSelect+" WHERE t.id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

func (pr *postgresRepository) ListTasks(ctx context.Context, columnID int64) ([]model.Task, error) {
	return pr.queryTasks(ctx, taskSelect+" WHERE t.column_id = $1 ORDER BY t.order_index, t.id", columnID)
}

func (pr *postgresRepository) ListBoardTasks(ctx context.Context, boardID int64) ([]model.Task, error) {
	return pr.queryTasks(ctx, taskSelect+" WHERE c.board_id = $1 ORDER BY t.order_index, t.id", boardID)
}

func (pr *postgresRepository) queryTasks(ctx context.Context, q string, args ...any) ([]model.Task, error) {
	rows, err := pr.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (pr *postgresRepository) CreateTask(ctx context.Context, task *model.Task) error {
	return pr.db.QueryRowContext(ctx,
		`INSERT INTO tasks (column_id, assigned_user_id, title, description, priority,
			estimated_hours, remaining_hours, due_date, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`,
		task.ColumnID, task.AssignedUserID, task.Title, task.Description, task.Priority,
		task.EstimatedHours, task.RemainingHours, task.DueDate, task.OrderIndex).Scan(&task.ID, &task.CreatedAt)
}

func (pr *postgresRepository) UpdateTask(ctx context.Context, task *model.Task) error {
	res, err := pr.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_user_id = $1, title = $2, description = $3, priority = $4,
			estimated_hours = $5, remaining_hours = $6, due_date = $7, updated_at = NOW()
		 WHERE id = $8`,
		task.AssignedUserID, task.Title, task.Description, task.Priority,
		task.EstimatedHours, task.RemainingHours, task.DueDate, task.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// MoveTask persists a re-sequencing: every sibling's order_index plus the
// moved task's column and position, all or nothing.
func (pr *postgresRepository) MoveTask(ctx context.Context, task *model.Task, siblings []model.Task) error {
	tx, err := pr.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sibling := range siblings {
		if _, err := tx.ExecContext(ctx,
			"UPDATE tasks SET order_index = $1 WHERE id = $2", sibling.OrderIndex, sibling.ID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE tasks SET column_id = $1, order_index = $2, updated_at = NOW() WHERE id = $3",
		task.ColumnID, task.OrderIndex, task.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (pr *postgresRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// ---- comments ----

func (pr *postgresRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return pr.db.QueryRowContext(ctx,
		"INSERT INTO comments (task_id, author_id, content) VALUES ($1, $2, $3) RETURNING id, created_at",
		comment.TaskID, comment.AuthorID, comment.Content).Scan(&comment.ID, &comment.CreatedAt)
}

func (pr *postgresRepository) ListComments(ctx context.Context, taskID int64) ([]model.Comment, error) {
	rows, err := pr.db.QueryContext(ctx,
		`SELECT cm.id, cm.task_id, cm.author_id, COALESCE(NULLIF(u.full_name, ''), u.email, ''), cm.content, cm.created_at
		 FROM comments cm
		 LEFT JOIN users u ON u.id = cm.author_id
		 WHERE cm.task_id = $1
		 ORDER BY cm.created_at DESC, cm.id DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment := model.Comment{}
		err = rows.Scan(&comment.ID, &comment.TaskID, &comment.AuthorID, &comment.AuthorName, &comment.Content, &comment.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// ---- time entries ----

func (pr *postgresRepository) CreateTimeEntry(ctx context.Context, entry *model.TimeEntry) error {
	return pr.db.QueryRowContext(ctx,
		"INSERT INTO time_entries (task_id, author_id, hours_spent, note) VALUES ($1, $2, $3, $4) RETURNING id, logged_at",
		entry.TaskID, entry.AuthorID, entry.HoursSpent, entry.Note).Scan(&entry.ID, &entry.LoggedAt)
}

func (pr *postgresRepository) ListTimeEntries(ctx context.Context, taskID int64) ([]model.TimeEntry, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT id, task_id, author_id, hours_spent, note, logged_at FROM time_entries WHERE task_id = $1 ORDER BY logged_at DESC, id DESC",
		taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.TimeEntry{}
	for rows.Next() {
		entry := model.TimeEntry{}
		err = rows.Scan(&entry.ID, &entry.TaskID, &entry.AuthorID, &entry.HoursSpent, &entry.Note, &entry.LoggedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
