// Package model contains the GORM-specific structs for the local database tables.
package model

import "time"

// UserAddressModel is the GORM-specific struct for the 'user_addresses' table.
type UserAddressModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	UserID           string    `gorm:"type:varchar(128);not null;index:idx_user_addresses_on_user"`
	Name             string    `gorm:"type:varchar(100);not null"`
	AddressLine1     string    `gorm:"type:text;not null"`
	AddressLine2     string    `gorm:"type:text"`
	City             string    `gorm:"type:varchar(100);not null"`
	State            string    `gorm:"type:varchar(100)"`
	ZipCode          string    `gorm:"type:varchar(20);not null"`
	Country          string    `gorm:"type:varchar(100);not null"`
	PhoneNumber      string    `gorm:"type:varchar(30)"`
	IsDefault        bool      `gorm:"not null;default:false"`
	Latitude         float64   `gorm:"type:decimal(10,8)"`
	Longitude        float64   `gorm:"type:decimal(11,8)"`
	PlaceID          string    `gorm:"type:varchar(255)"`
	FormattedAddress string    `gorm:"type:text"`
	Timestamp        time.Time `gorm:"not null;index:idx_user_addresses_on_timestamp"`
}

// TableName explicitly sets the table name for GORM.
func (UserAddressModel) TableName() string {
	return "user_addresses"
}
