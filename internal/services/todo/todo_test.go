package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

type fakePostgres struct {
	todos  map[int64]models.Todo
	nextID int64
}

func newFakePostgres() *fakePostgres {
	return &fakePostgres{todos: map[int64]models.Todo{}, nextID: 1}
}

func (f *fakePostgres) SaveTodo(_ context.Context, todo models.Todo) (int64, error) {
	id := f.nextID
	f.nextID++
	todo.ID = id
	f.todos[id] = todo
	return id, nil
}

func (f *fakePostgres) Todo(_ context.Context, id, userID int64) (models.Todo, error) {
	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return models.Todo{}, storage.ErrTodoNotFound
	}
	return t, nil
}

func (f *fakePostgres) Todos(_ context.Context, userID int64) ([]models.Todo, error) {
	var out []models.Todo
	for _, t := range f.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakePostgres) UpdateTodo(_ context.Context, todo models.Todo) error {
	existing, ok := f.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return storage.ErrTodoNotFound
	}
	f.todos[todo.ID] = todo
	return nil
}

func (f *fakePostgres) DeleteTodo(_ context.Context, id, userID int64) error {
	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return storage.ErrTodoNotFound
	}
	delete(f.todos, id)
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateAndListTodos(t *testing.T) {
	svc := NewTodoService(newFakePostgres())

	created, err := svc.CreateTodo(context.Background(), 1, "buy milk")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if created.Text != "buy milk" || created.Completed {
		t.Errorf("created = %+v", created)
	}

	if _, err := svc.CreateTodo(context.Background(), 2, "other user's todo"); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	todos, err := svc.ListTodos(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("len(todos) = %d, want 1", len(todos))
	}
	if todos[0].UserID != 1 {
		t.Errorf("listing leaked another user's todo: %+v", todos[0])
	}
}

func TestUpdateTodo_Partial(t *testing.T) {
	tests := []struct {
		name          string
		text          *string
		completed     *bool
		wantText      string
		wantCompleted bool
	}{
		{
			name:          "completed only",
			completed:     boolPtr(true),
			wantText:      "buy milk",
			wantCompleted: true,
		},
		{
			name:          "text only",
			text:          strPtr("buy oat milk"),
			wantText:      "buy oat milk",
			wantCompleted: false,
		},
		{
			name:          "reset completed to false",
			completed:     boolPtr(false),
			wantText:      "buy milk",
			wantCompleted: false,
		},
		{
			name:          "empty text keeps the old one",
			text:          strPtr(""),
			wantText:      "buy milk",
			wantCompleted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTodoService(newFakePostgres())

			created, err := svc.CreateTodo(context.Background(), 1, "buy milk")
			if err != nil {
				t.Fatalf("CreateTodo: %v", err)
			}

			got, err := svc.UpdateTodo(context.Background(), created.ID, 1, tt.text, tt.completed)
			if err != nil {
				t.Fatalf("UpdateTodo: %v", err)
			}

			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, want %v", got.Completed, tt.wantCompleted)
			}
		})
	}
}

func TestUpdateTodo_OtherUsersTodo(t *testing.T) {
	svc := NewTodoService(newFakePostgres())

	created, err := svc.CreateTodo(context.Background(), 1, "buy milk")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	_, err = svc.UpdateTodo(context.Background(), created.ID, 2, nil, boolPtr(true))
	if !errors.Is(err, storage.ErrTodoNotFound) {
		t.Errorf("err = %v, want ErrTodoNotFound", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	svc := NewTodoService(newFakePostgres())

	created, err := svc.CreateTodo(context.Background(), 1, "buy milk")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	if err := svc.DeleteTodo(context.Background(), created.ID, 1); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}

	err = svc.DeleteTodo(context.Background(), created.ID, 1)
	if !errors.Is(err, storage.ErrTodoNotFound) {
		t.Errorf("err = %v, want ErrTodoNotFound", err)
	}
}
