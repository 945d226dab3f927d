package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

func (r *PostgresRepo) SaveTodo(ctx context.Context, todo models.Todo) (int64, error) {
	const op = "storage.postgres.SaveTodo"

	var id int64
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO todos (user_id, text) VALUES ($1, $2) RETURNING id;`,
		todo.UserID,
		todo.Text,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Todo fetches a single todo scoped to its owner. Someone else's id behaves
// as not found.
func (r *PostgresRepo) Todo(ctx context.Context, id, userID int64) (models.Todo, error) {
	const op = "storage.postgres.Todo"

	var t models.Todo

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, text, completed, created_at, modified_at
		FROM todos WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	).Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt, &t.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, fmt.Errorf("%s: %w", op, storage.ErrTodoNotFound)
		}

		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

func (r *PostgresRepo) Todos(ctx context.Context, userID int64) ([]models.Todo, error) {
	const op = "storage.postgres.Todos"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, text, completed, created_at, modified_at
		FROM todos WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt, &t.ModifiedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func (r *PostgresRepo) UpdateTodo(ctx context.Context, todo models.Todo) error {
	const op = "storage.postgres.UpdateTodo"

	cmdTag, err := r.pool.Exec(
		ctx,
		`UPDATE todos SET text = $3, completed = $4, modified_at = now()
		WHERE id = $1 AND user_id = $2`,
		todo.ID,
		todo.UserID,
		todo.Text,
		todo.Completed,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTodoNotFound)
	}

	return nil
}

func (r *PostgresRepo) DeleteTodo(ctx context.Context, id, userID int64) error {
	const op = "storage.postgres.DeleteTodo"

	cmdTag, err := r.pool.Exec(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTodoNotFound)
	}

	return nil
}
