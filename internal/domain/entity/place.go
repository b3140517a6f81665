package entity

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlacePrediction is a single autocomplete suggestion from the places API.
type PlacePrediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	PrimaryText   string `json:"primary_text"`
	SecondaryText string `json:"secondary_text"`
}

// AddressComponent is one structured component of a resolved place.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// PlaceDetails is the fixed field set requested from the places API:
// id, name, formatted address, coordinates and address components.
type PlaceDetails struct {
	PlaceID          string             `json:"place_id"`
	Name             string             `json:"name"`
	FormattedAddress string             `json:"formatted_address"`
	Location         LatLng             `json:"location"`
	Components       []AddressComponent `json:"components"`
}
