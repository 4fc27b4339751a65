package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Salon struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Cnpj           string          `gorm:"type:varchar(18)"`
	Phone          string          `gorm:"type:varchar(20)"`
	Address        string          `gorm:"type:text"`
	City           string          `gorm:"type:varchar(120)"`
	State          string          `gorm:"type:varchar(2)"`
	IsApproved     bool            `gorm:"default:false;index"`
	IsActive       bool            `gorm:"default:true"`
	CommissionRate decimal.Decimal `gorm:"type:numeric(5,2);not null;default:70"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (Salon) TableName() string {
	return "salons"
}
