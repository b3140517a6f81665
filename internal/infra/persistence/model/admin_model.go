package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminAccountModel is the GORM-specific struct for the 'admin_accounts' table.
type AdminAccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_admin_accounts_on_email"`
	DisplayName  string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminAccountModel) TableName() string {
	return "admin_accounts"
}
