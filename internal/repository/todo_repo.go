package repository

import (
	"context"

	"github.com/Charusm03/todo-app/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoRepository is the data access layer for todos. Visibility filtering
// happens here, in the query itself (ListByOwner), never in memory after the
// fact.
type TodoRepository interface {
	Create(ctx context.Context, t *model.Todo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Todo, error)
	ListAll(ctx context.Context) ([]model.Todo, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	Update(ctx context.Context, t *model.Todo) error
	// Toggle flips the completed flag in a single UPDATE and reports whether
	// a row was hit.
	Toggle(ctx context.Context, id uuid.UUID) (bool, error)
	// Delete removes the row permanently and reports whether a row was hit.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type todoRepo struct{ db *gorm.DB }

func NewTodoRepository(db *gorm.DB) TodoRepository { return &todoRepo{db: db} }

func (r *todoRepo) Create(ctx context.Context, t *model.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *todoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	var t model.Todo
	err := r.db.WithContext(ctx).Preload("Owner").First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todoRepo) ListAll(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at desc").
		Find(&todos).Error
	return todos, err
}

func (r *todoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&todos).Error
	return todos, err
}

func (r *todoRepo) Update(ctx context.Context, t *model.Todo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *todoRepo) Toggle(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ?", id).
		UpdateColumn("completed", gorm.Expr("NOT completed"))
	return res.RowsAffected > 0, res.Error
}

func (r *todoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
