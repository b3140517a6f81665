// Package geocode implements the geocoding and places services on the
// Google Maps Platform web APIs.
package geocode

import (
	"context"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/service"

	"github.com/pkg/errors"
	"googlemaps.github.io/maps"
)

// placeDetailFields is the fixed field set requested for place lookups.
var placeDetailFields = []maps.PlaceDetailsFieldMask{
	maps.PlaceDetailsFieldMaskPlaceID,
	maps.PlaceDetailsFieldMaskName,
	maps.PlaceDetailsFieldMaskFormattedAddress,
	maps.PlaceDetailsFieldMaskGeometryLocation,
	maps.PlaceDetailsFieldMaskAddressComponent,
}

// MapsService implements GeocodingService and PlacesService with one shared client.
type MapsService struct {
	client *maps.Client
	region string
}

// NewMapsService creates the Maps Platform client used for both geocoding
// and places lookups.
func NewMapsService(cfg *config.Config) (*MapsService, error) {
	if cfg.Maps == nil || cfg.Maps.APIKey == "" {
		return nil, errors.New("maps API key must be provided")
	}

	client, err := maps.NewClient(maps.WithAPIKey(cfg.Maps.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create maps client")
	}

	return &MapsService{
		client: client,
		region: cfg.Maps.Region,
	}, nil
}

// AsGeocodingService exposes the shared client as a GeocodingService.
func AsGeocodingService(s *MapsService) service.GeocodingService {
	return s
}

// AsPlacesService exposes the shared client as a PlacesService.
func AsPlacesService(s *MapsService) service.PlacesService {
	return s
}

// ReverseGeocode resolves coordinates to the closest postal address.
func (s *MapsService) ReverseGeocode(ctx context.Context, location entity.LatLng) (*entity.Address, error) {
	results, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: location.Latitude,
			Lng: location.Longitude,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "reverse geocode request failed")
	}
	if len(results) == 0 {
		return nil, service.ErrNoResults
	}

	best := results[0]
	address := addressFromComponents(best.AddressComponents)
	address.Latitude = best.Geometry.Location.Lat
	address.Longitude = best.Geometry.Location.Lng
	address.PlaceID = best.PlaceID
	address.FormattedAddress = best.FormattedAddress

	return address, nil
}

// Geocode resolves a free-form address string to coordinates.
func (s *MapsService) Geocode(ctx context.Context, address string) (entity.LatLng, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  s.region,
	})
	if err != nil {
		return entity.LatLng{}, errors.Wrap(err, "geocode request failed")
	}
	if len(results) == 0 {
		return entity.LatLng{}, service.ErrNoResults
	}

	loc := results[0].Geometry.Location

	return entity.LatLng{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
	}, nil
}

// AutocompletePredictions returns ranked predictions for a partial query.
func (s *MapsService) AutocompletePredictions(ctx context.Context, query string) ([]*entity.PlacePrediction, error) {
	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input: query,
	})
	if err != nil {
		return nil, errors.Wrap(err, "place autocomplete request failed")
	}

	predictions := make([]*entity.PlacePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		predictions = append(predictions, &entity.PlacePrediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			PrimaryText:   p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}

	return predictions, nil
}

// PlaceDetails resolves a place id to its full record.
func (s *MapsService) PlaceDetails(ctx context.Context, placeID string) (*entity.PlaceDetails, error) {
	result, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  placeDetailFields,
	})
	if err != nil {
		return nil, errors.Wrap(err, "place details request failed")
	}
	if result.PlaceID == "" && result.FormattedAddress == "" {
		return nil, service.ErrNoResults
	}

	components := make([]entity.AddressComponent, 0, len(result.AddressComponents))
	for _, c := range result.AddressComponents {
		components = append(components, entity.AddressComponent{
			LongName:  c.LongName,
			ShortName: c.ShortName,
			Types:     c.Types,
		})
	}

	return &entity.PlaceDetails{
		PlaceID:          result.PlaceID,
		Name:             result.Name,
		FormattedAddress: result.FormattedAddress,
		Location: entity.LatLng{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
		Components: components,
	}, nil
}

// addressFromComponents maps structured geocoder components onto the
// address entity's postal fields.
func addressFromComponents(components []maps.AddressComponent) *entity.Address {
	var streetNumber, route string
	address := &entity.Address{}

	for _, c := range components {
		for _, t := range c.Types {
			switch t {
			case "street_number":
				streetNumber = c.LongName
			case "route":
				route = c.LongName
			case "locality", "postal_town":
				address.City = c.LongName
			case "administrative_area_level_1":
				address.State = c.ShortName
			case "postal_code":
				address.ZipCode = c.LongName
			case "country":
				address.Country = c.LongName
			}
		}
	}

	if streetNumber != "" && route != "" {
		address.AddressLine1 = streetNumber + " " + route
	} else {
		address.AddressLine1 = route
	}

	return address
}
