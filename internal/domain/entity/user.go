package entity

import "time"

// User types stored in the user document.
const (
	UserTypeCustomer = "CUSTOMER"
	UserTypeAdmin    = "ADMIN"
)

// User is a storefront account backed by the remote document store.
// The ID is the authentication provider's uid.
type User struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	UserType        string    `json:"user_type"`
	ProfileImageURL string    `json:"profile_image_url"`
	FCMToken        string    `json:"fcm_token"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName returns the name shown in notifications and order records.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
