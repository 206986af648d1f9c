package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;type:varchar(255);not null"`
	Email         string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	EmailVerified bool      `gorm:"column:emailVerified;not null;default:false"`
	Image         *string   `gorm:"column:image;type:text"`
	IsAnonymous   bool      `gorm:"column:isAnonymous;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:createdAt"`
	UpdatedAt     time.Time `gorm:"column:updatedAt"`
}

func (User) TableName() string {
	return "user"
}
