package todo

import (
	"context"

	"github.com/SidhantUppal/roombook/internal/models"
)

type Postgres interface {
	SaveTodo(ctx context.Context, todo models.Todo) (int64, error)
	Todo(ctx context.Context, id, userID int64) (models.Todo, error)
	Todos(ctx context.Context, userID int64) ([]models.Todo, error)
	UpdateTodo(ctx context.Context, todo models.Todo) error
	DeleteTodo(ctx context.Context, id, userID int64) error
}

type TodoService struct {
	postgres Postgres
}

func NewTodoService(pg Postgres) *TodoService {
	return &TodoService{postgres: pg}
}

func (s *TodoService) CreateTodo(ctx context.Context, userID int64, text string) (models.Todo, error) {
	id, err := s.postgres.SaveTodo(ctx, models.Todo{UserID: userID, Text: text})
	if err != nil {
		return models.Todo{}, err
	}

	return s.postgres.Todo(ctx, id, userID)
}

func (s *TodoService) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	return s.postgres.Todos(ctx, userID)
}

// UpdateTodo applies a partial update. Nil fields keep their current value.
func (s *TodoService) UpdateTodo(ctx context.Context, id, userID int64, text *string, completed *bool) (models.Todo, error) {
	existing, err := s.postgres.Todo(ctx, id, userID)
	if err != nil {
		return models.Todo{}, err
	}

	if text != nil && *text != "" {
		existing.Text = *text
	}
	if completed != nil {
		existing.Completed = *completed
	}

	if err := s.postgres.UpdateTodo(ctx, existing); err != nil {
		return models.Todo{}, err
	}

	return existing, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id, userID int64) error {
	return s.postgres.DeleteTodo(ctx, id, userID)
}
