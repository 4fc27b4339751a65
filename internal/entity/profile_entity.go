package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleSubscriber UserRole = "subscriber"
	UserRoleSalonOwner UserRole = "salon_owner"
	UserRoleAdmin      UserRole = "admin"
)

// Profile is the identity reference used for receipts and audit display.
// Credentials live with the external auth provider.
type Profile struct {
	Id        uuid.UUID
	Email     string
	FullName  string
	Role      UserRole
	CreatedAt time.Time
}

// Identity is the caller resolved from the request token, passed explicitly into services
type Identity struct {
	UserId uuid.UUID
	Role   UserRole
}
