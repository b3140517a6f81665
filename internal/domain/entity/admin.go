package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminAccount is a password-authenticated back-office account, stored in
// the local relational database rather than the customer auth provider.
type AdminAccount struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
