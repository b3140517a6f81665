package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress_HasCoordinates(t *testing.T) {
	assert.False(t, (&Address{}).HasCoordinates())
	assert.True(t, (&Address{Latitude: 40.7, Longitude: -74.0}).HasCoordinates())
	assert.True(t, (&Address{Longitude: -74.0}).HasCoordinates())
}

func TestAddress_FullAddress(t *testing.T) {
	address := &Address{
		AddressLine1: "123 Main St",
		AddressLine2: "Apt 4B",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10001",
		Country:      "United States",
	}

	assert.Equal(t, "123 Main St\nApt 4B\nNew York, NY 10001\nUnited States", address.FullAddress())
}

func TestAddress_ShortAddress(t *testing.T) {
	address := &Address{AddressLine1: "123 Main St", City: "New York"}
	assert.Equal(t, "123 Main St, New York", address.ShortAddress())
}
