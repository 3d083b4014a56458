package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single task row. OwnerID is set once at creation to the creator's
// id and never transfers. Deletion is physical, never a soft delete.
type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	Completed   bool      `gorm:"not null;default:false"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner       *User     `gorm:"foreignKey:OwnerID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
