package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LiveCode matches unused codes that have not yet expired at Now
type LiveCode struct {
	Now time.Time
}

func (s LiveCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_used = ? AND expires_at > ?", false, s.Now)
}

type ByCodeValue struct {
	Code string
}

func (s ByCodeValue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

type BySubscriptionID struct {
	SubscriptionID uuid.UUID
}

func (s BySubscriptionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id = ?", s.SubscriptionID)
}

type BySalonID struct {
	SalonID uuid.UUID
}

func (s BySalonID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("salon_id = ?", s.SalonID)
}

// UserOwnedBy filters by owning subscriber
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
