package service

import (
	"context"
	"errors"
	"time"

	"github.com/Charusm03/todo-app/internal/dto"
	"github.com/Charusm03/todo-app/internal/model"
	"github.com/Charusm03/todo-app/internal/policy"
	"github.com/Charusm03/todo-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoService carries the todo business operations. Permission gating happens
// in the middleware before any of these run; the only policy decision made
// here is the read scope for List.
type TodoService interface {
	List(ctx context.Context, role policy.Role, callerID uuid.UUID) ([]dto.TodoResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateTodoRequest) (*dto.TodoResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (*dto.TodoResponse, error)
	Toggle(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type todoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func mapTodo(t *model.Todo) dto.TodoResponse {
	resp := dto.TodoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Owner != nil {
		resp.Username = t.Owner.Username
	}
	return resp
}

func (s *todoService) List(ctx context.Context, role policy.Role, callerID uuid.UUID) ([]dto.TodoResponse, error) {
	var (
		todos []model.Todo
		err   error
	)
	switch policy.ReadScope(role) {
	case policy.ScopeAll:
		todos, err = s.repo.ListAll(ctx)
	case policy.ScopeOwn:
		todos, err = s.repo.ListByOwner(ctx, callerID)
	default:
		// Unknown role: fail closed with an empty result. The permission
		// middleware already rejects these, so this is belt and suspenders.
		return []dto.TodoResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TodoResponse, 0, len(todos))
	for i := range todos {
		resp = append(resp, mapTodo(&todos[i]))
	}
	return resp, nil
}

func (s *todoService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	todo := &model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	// Re-read so the response carries the owner's username like list views do.
	created, err := s.repo.FindByID(ctx, todo.ID)
	if err != nil {
		return nil, err
	}
	resp := mapTodo(created)
	return &resp, nil
}

func (s *todoService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	// Full replace: omitted description resets to "", omitted completed to false.
	todo.Title = req.Title
	todo.Description = req.Description
	todo.Completed = req.Completed

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	resp := mapTodo(todo)
	return &resp, nil
}

func (s *todoService) Toggle(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error) {
	hit, err := s.repo.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, ErrTodoNotFound
	}
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapTodo(todo)
	return &resp, nil
}

func (s *todoService) Delete(ctx context.Context, id uuid.UUID) error {
	hit, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !hit {
		return ErrTodoNotFound
	}
	return nil
}
