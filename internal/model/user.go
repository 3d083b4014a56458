package model

import (
	"time"

	"github.com/Charusm03/todo-app/internal/policy"

	"github.com/google/uuid"
)

// User is an account that can authenticate and operate on todos.
// Role determines permissions; it is set at registration and has no exposed
// mutation path.
type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string      `gorm:"uniqueIndex;not null"`
	Email        string      `gorm:"uniqueIndex;not null"`
	PasswordHash string      `gorm:"not null"`
	Role         policy.Role `gorm:"type:varchar(20);not null;default:'employee'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
