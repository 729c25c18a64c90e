package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shikhr/tuskly/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) InsertGoal(ctx context.Context, in model.Goal) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (name, target_type, target_value, unit, sort_order, created_at, is_archived, is_deleted, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, string(in.TargetType), in.TargetValue, in.Unit, in.SortOrder,
		mustTime(in.CreatedAt), boolInt(in.IsArchived), boolInt(in.IsDeleted), nullTime(in.DeletedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id int64) (model.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, target_type, target_value, unit, sort_order, created_at, is_archived, is_deleted, deleted_at
		FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Goal{}, ErrNotFound
		}
		return model.Goal{}, err
	}
	return goal, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, in model.Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, target_type = ?, target_value = ?, unit = ?, sort_order = ?, is_archived = ?, is_deleted = ?, deleted_at = ?
		WHERE id = ?`,
		in.Name, string(in.TargetType), in.TargetValue, in.Unit, in.SortOrder,
		boolInt(in.IsArchived), boolInt(in.IsDeleted), nullTime(in.DeletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// SoftDeleteGoal marks a goal deleted. Repeating the call on an already
// soft-deleted goal succeeds without touching deleted_at.
func (r *SQLiteRepository) SoftDeleteGoal(ctx context.Context, id int64, deletedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET is_deleted = 1, deleted_at = ? WHERE id = ? AND is_deleted = 0`,
		mustTime(deletedAt), id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffectedOrExists(ctx, r.db, res, "goals", id)
}

func (r *SQLiteRepository) RestoreGoal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET is_deleted = 0, deleted_at = NULL WHERE id = ? AND is_deleted = 1`, id)
	if err != nil {
		return err
	}
	return checkRowsAffectedOrExists(ctx, r.db, res, "goals", id)
}

func (r *SQLiteRepository) PurgeDeletedGoals(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE is_deleted = 1`)
	return err
}

func (r *SQLiteRepository) ListActiveGoals(ctx context.Context) ([]model.Goal, error) {
	return r.listGoals(ctx, `
		SELECT id, name, target_type, target_value, unit, sort_order, created_at, is_archived, is_deleted, deleted_at
		FROM goals WHERE is_archived = 0 AND is_deleted = 0
		ORDER BY sort_order ASC, created_at ASC`)
}

func (r *SQLiteRepository) ListDeletedGoals(ctx context.Context) ([]model.Goal, error) {
	return r.listGoals(ctx, `
		SELECT id, name, target_type, target_value, unit, sort_order, created_at, is_archived, is_deleted, deleted_at
		FROM goals WHERE is_deleted = 1
		ORDER BY deleted_at DESC`)
}

func (r *SQLiteRepository) NextGoalSortOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM goals`).Scan(&next)
	return next, err
}

func (r *SQLiteRepository) listGoals(ctx context.Context, query string, args ...any) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Goal, 0)
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) InsertTask(ctx context.Context, in model.Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, is_completed, due_date, completed_at, created_at, sort_order, is_deleted, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, boolInt(in.IsCompleted), nullTime(in.DueDate), nullTime(in.CompletedAt),
		mustTime(in.CreatedAt), in.SortOrder, boolInt(in.IsDeleted), nullTime(in.DeletedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, is_completed, due_date, completed_at, created_at, sort_order, is_deleted, deleted_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, is_completed = ?, due_date = ?, completed_at = ?, sort_order = ?, is_deleted = ?, deleted_at = ?
		WHERE id = ?`,
		in.Title, boolInt(in.IsCompleted), nullTime(in.DueDate), nullTime(in.CompletedAt),
		in.SortOrder, boolInt(in.IsDeleted), nullTime(in.DeletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) SoftDeleteTask(ctx context.Context, id int64, deletedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET is_deleted = 1, deleted_at = ? WHERE id = ? AND is_deleted = 0`,
		mustTime(deletedAt), id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffectedOrExists(ctx, r.db, res, "tasks", id)
}

func (r *SQLiteRepository) RestoreTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET is_deleted = 0, deleted_at = NULL WHERE id = ? AND is_deleted = 1`, id)
	if err != nil {
		return err
	}
	return checkRowsAffectedOrExists(ctx, r.db, res, "tasks", id)
}

func (r *SQLiteRepository) PurgeDeletedTasks(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE is_deleted = 1`)
	return err
}

func (r *SQLiteRepository) ListActiveTasks(ctx context.Context) ([]model.Task, error) {
	return r.listTasks(ctx, `
		SELECT id, title, is_completed, due_date, completed_at, created_at, sort_order, is_deleted, deleted_at
		FROM tasks WHERE is_completed = 0 AND is_deleted = 0
		ORDER BY sort_order ASC, created_at ASC`)
}

func (r *SQLiteRepository) ListCompletedTasks(ctx context.Context) ([]model.Task, error) {
	return r.listTasks(ctx, `
		SELECT id, title, is_completed, due_date, completed_at, created_at, sort_order, is_deleted, deleted_at
		FROM tasks WHERE is_completed = 1 AND is_deleted = 0
		ORDER BY completed_at DESC`)
}

func (r *SQLiteRepository) ListDeletedTasks(ctx context.Context) ([]model.Task, error) {
	return r.listTasks(ctx, `
		SELECT id, title, is_completed, due_date, completed_at, created_at, sort_order, is_deleted, deleted_at
		FROM tasks WHERE is_deleted = 1
		ORDER BY deleted_at DESC`)
}

func (r *SQLiteRepository) NextTaskSortOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM tasks`).Scan(&next)
	return next, err
}

func (r *SQLiteRepository) listTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetLog(ctx context.Context, goalID int64, date string) (model.CompletionLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, goal_id, date, value, is_completed
		FROM completion_logs WHERE goal_id = ? AND date = ?`, goalID, date)
	log, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CompletionLog{}, ErrNotFound
		}
		return model.CompletionLog{}, err
	}
	return log, nil
}

func (r *SQLiteRepository) ListLogsForDate(ctx context.Context, date string) ([]model.CompletionLog, error) {
	return r.listLogs(ctx, `
		SELECT id, goal_id, date, value, is_completed
		FROM completion_logs WHERE date = ?
		ORDER BY goal_id ASC`, date)
}

func (r *SQLiteRepository) ListLogsForGoal(ctx context.Context, goalID int64) ([]model.CompletionLog, error) {
	return r.listLogs(ctx, `
		SELECT id, goal_id, date, value, is_completed
		FROM completion_logs WHERE goal_id = ?
		ORDER BY date DESC`, goalID)
}

// UpsertLog inserts or replaces the single log row for (goal_id, date).
// The unique index makes the insert-or-update atomic; concurrent upserts
// on the same key can never produce two rows.
func (r *SQLiteRepository) UpsertLog(ctx context.Context, in model.CompletionLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completion_logs (goal_id, date, value, is_completed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(goal_id, date) DO UPDATE SET value = excluded.value, is_completed = excluded.is_completed`,
		in.GoalID, in.Date, in.Value, boolInt(in.IsCompleted),
	)
	return err
}

func (r *SQLiteRepository) DeleteLog(ctx context.Context, goalID int64, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM completion_logs WHERE goal_id = ? AND date = ?`, goalID, date)
	return err
}

func (r *SQLiteRepository) listLogs(ctx context.Context, query string, args ...any) ([]model.CompletionLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CompletionLog, 0)
	for rows.Next() {
		log, scanErr := scanLog(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, log)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func (r *SQLiteRepository) PutSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (model.Goal, error) {
	var out model.Goal
	var targetType string
	var created string
	var archived, deleted int
	var deletedAt sql.NullString
	if err := s.Scan(&out.ID, &out.Name, &targetType, &out.TargetValue, &out.Unit, &out.SortOrder, &created, &archived, &deleted, &deletedAt); err != nil {
		return model.Goal{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Goal{}, err
	}
	deletedAtTime, err := parseNullableTime(deletedAt)
	if err != nil {
		return model.Goal{}, err
	}
	out.TargetType = model.TargetType(targetType)
	out.CreatedAt = createdAt
	out.IsArchived = archived == 1
	out.IsDeleted = deleted == 1
	out.DeletedAt = deletedAtTime
	return out, nil
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var completed, deleted int
	var due, completedAt, deletedAt sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Title, &completed, &due, &completedAt, &created, &out.SortOrder, &deleted, &deletedAt); err != nil {
		return model.Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Task{}, err
	}
	dueDate, err := parseNullableTime(due)
	if err != nil {
		return model.Task{}, err
	}
	completedAtTime, err := parseNullableTime(completedAt)
	if err != nil {
		return model.Task{}, err
	}
	deletedAtTime, err := parseNullableTime(deletedAt)
	if err != nil {
		return model.Task{}, err
	}
	out.IsCompleted = completed == 1
	out.DueDate = dueDate
	out.CompletedAt = completedAtTime
	out.CreatedAt = createdAt
	out.IsDeleted = deleted == 1
	out.DeletedAt = deletedAtTime
	return out, nil
}

func scanLog(s scanner) (model.CompletionLog, error) {
	var out model.CompletionLog
	var completed int
	if err := s.Scan(&out.ID, &out.GoalID, &out.Date, &out.Value, &completed); err != nil {
		return model.CompletionLog{}, err
	}
	out.IsCompleted = completed == 1
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// checkRowsAffectedOrExists distinguishes a conditional update that
// matched nothing because the row is already in the target state (no-op
// success) from one that matched nothing because the row is gone.
func checkRowsAffectedOrExists(ctx context.Context, db *sql.DB, res sql.Result, table string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	var exists int
	query := `SELECT 1 FROM ` + table + ` WHERE id = ?`
	err = db.QueryRowContext(ctx, query, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
