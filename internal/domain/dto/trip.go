package dto

import "github.com/ougirez/wanderwise/internal/domain"

// StyleRequest - стиль поездки по названиям тарифов; пустое поле - значение по умолчанию.
type StyleRequest struct {
	Spending      string `json:"spending" validate:"omitempty,oneof=budget luxury"`
	FlightClass   string `json:"flight_class"`
	Accommodation string `json:"accommodation"`
	Activity      string `json:"activity"`
}

type FiltersRequest struct {
	Regions    []string `json:"regions"`
	Activities []string `json:"activities"`
	MinSafety  int      `json:"min_safety" validate:"gte=0,lte=10"`
	Weather    []string `json:"weather" validate:"dive,oneof=Tropical Warm Mild Cold Unknown"`
}

type FindTripsRequest struct {
	Origin    string         `json:"origin"`
	Travelers int            `json:"travelers" validate:"required,gte=1,lte=50"`
	Days      int            `json:"days" validate:"required,gte=1,lte=365"`
	Budget    float64        `json:"budget" validate:"gte=0"`
	Style     StyleRequest   `json:"style"`
	Filters   FiltersRequest `json:"filters"`
	SortBy    string         `json:"sort_by" validate:"omitempty,oneof=price popularity"`
	Limit     int            `json:"limit" validate:"gte=0,lte=1000"`
}

type MaximizeDaysRequest struct {
	Origin      string       `json:"origin"`
	Destination string       `json:"destination" validate:"required"`
	Travelers   int          `json:"travelers" validate:"required,gte=1,lte=50"`
	Budget      float64      `json:"budget" validate:"gte=0"`
	Style       StyleRequest `json:"style"`
}

type PriceTripRequest struct {
	Origin      string       `json:"origin"`
	Destination string       `json:"destination" validate:"required"`
	Travelers   int          `json:"travelers" validate:"required,gte=1,lte=50"`
	Days        int          `json:"days" validate:"required,gte=1,lte=365"`
	Style       StyleRequest `json:"style"`
}

type TripsResponse struct {
	Mode           string              `json:"mode"`
	CatalogVersion string              `json:"catalog_version"`
	Quotes         []*domain.TripQuote `json:"quotes"`
}

type ListDestinationsRequest struct {
	Region string `query:"region"`
	Limit  int    `query:"limit" validate:"gte=0"`
}

type DestinationsResponse struct {
	CatalogVersion string                `json:"catalog_version"`
	Total          int                   `json:"total"`
	Destinations   []*domain.Destination `json:"destinations"`
}

type ReloadResponse struct {
	CatalogVersion string `json:"catalog_version"`
	Reloaded       bool   `json:"reloaded"`
}
