package domain

type AirportType string

const (
	AirportTypeLarge  AirportType = "large_airport"
	AirportTypeMedium AirportType = "medium_airport"
	AirportTypeSmall  AirportType = "small_airport"
)

// Rank упорядочивает типы аэропортов: чем меньше, тем крупнее.
func (t AirportType) Rank() int {
	switch t {
	case AirportTypeLarge:
		return 0
	case AirportTypeMedium:
		return 1
	case AirportTypeSmall:
		return 2
	default:
		return 3
	}
}

// RawAirport - одна строка из airports.csv (ourairports).
type RawAirport struct {
	ID               string
	Name             string
	Municipality     string
	ISOCountry       string
	IATACode         string
	Type             AirportType
	ScheduledService bool
	Latitude         float64
	Longitude        float64
}

// ResolvedDestination - канонический аэропорт для пары (город, страна).
type ResolvedDestination struct {
	City           string
	Municipality   string
	ISOCountry     string
	FullCountry    string
	IATA           string
	AirportName    string
	Type           AirportType
	HubScore       int
	AirportDensity int
	Latitude       float64
	Longitude      float64
}

// Key - ключ дедупликации.
func (r *ResolvedDestination) Key() CityKey {
	return CityKey{City: r.City, Country: r.ISOCountry}
}

type CityKey struct {
	City    string
	Country string
}
