package model

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:app_role;not null;default:'subscriber'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
