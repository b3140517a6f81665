// Package entity contains the core business objects of the storefront.
package entity

import (
	"strings"
	"time"
)

// MaxAddressesPerUser is the default cap on stored addresses per user.
const MaxAddressesPerUser = 5

// Address is a delivery address in a user's address book. Rows are scoped
// by UserID; at most one row per user carries IsDefault.
type Address struct {
	ID               int64  // Store-assigned key.
	UserID           string // Owning account; every query is scoped by it.
	Name             string // Recipient name.
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	ZipCode          string
	Country          string
	PhoneNumber      string
	IsDefault        bool      // Pre-selected at checkout; unique per user.
	Latitude         float64   // 0.0 means unset.
	Longitude        float64   // 0.0 means unset.
	PlaceID          string    // External place identifier; empty unless sourced from a places lookup.
	FormattedAddress string    // Cached formatted address from the geocoder.
	Timestamp        time.Time // Creation time, ordering key after IsDefault.
}

// HasCoordinates reports whether a geolocation was resolved for the address.
func (a *Address) HasCoordinates() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

// FullAddress renders the multi-line postal form.
func (a *Address) FullAddress() string {
	var b strings.Builder
	b.WriteString(a.AddressLine1)
	if a.AddressLine2 != "" {
		b.WriteString("\n")
		b.WriteString(a.AddressLine2)
	}
	b.WriteString("\n")
	b.WriteString(a.City)
	b.WriteString(", ")
	b.WriteString(a.State)
	b.WriteString(" ")
	b.WriteString(a.ZipCode)
	b.WriteString("\n")
	b.WriteString(a.Country)

	return b.String()
}

// ShortAddress renders the single-line list form.
func (a *Address) ShortAddress() string {
	return a.AddressLine1 + ", " + a.City
}
