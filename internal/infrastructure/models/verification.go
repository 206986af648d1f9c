package models

import (
	"time"

	"github.com/google/uuid"
)

type Verification struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Identifier string    `gorm:"column:identifier;type:varchar(255);not null;uniqueIndex"`
	Value      string    `gorm:"column:value;type:text;not null"`
	ExpiresAt  time.Time `gorm:"column:expiresAt;not null"`
	CreatedAt  time.Time `gorm:"column:createdAt"`
	UpdatedAt  time.Time `gorm:"column:updatedAt"`
}

func (Verification) TableName() string {
	return "verification"
}
