package model

import (
	"time"

	"github.com/google/uuid"
)

// Merchant owns orders and payments and is the subject of dashboard tokens.
type Merchant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Merchant) TableName() string {
	return "merchants"
}
