package loader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ougirez/wanderwise/internal/domain"
)

var airportColumns = []string{
	"type", "name", "municipality", "iso_country", "iata_code",
	"scheduled_service", "latitude_deg", "longitude_deg",
}

// ParseAirports читает airports.csv формата ourairports. Лишние колонки игнорируются.
func ParseAirports(r io.Reader) ([]domain.RawAirport, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("readTable: %w", err)
	}
	if err = t.require(airportColumns...); err != nil {
		return nil, err
	}

	airports := make([]domain.RawAirport, 0, len(t.rows))
	for i, row := range t.rows {
		lat, err := parseCoordinate(t.get(row, "latitude_deg"))
		if err != nil {
			return nil, fmt.Errorf("row %d latitude_deg: %w", i+2, err)
		}
		lon, err := parseCoordinate(t.get(row, "longitude_deg"))
		if err != nil {
			return nil, fmt.Errorf("row %d longitude_deg: %w", i+2, err)
		}

		id := t.get(row, "ident")
		if id == "" {
			id = t.get(row, "id")
		}

		airports = append(airports, domain.RawAirport{
			ID:               id,
			Name:             t.get(row, "name"),
			Municipality:     t.get(row, "municipality"),
			ISOCountry:       strings.ToUpper(t.get(row, "iso_country")),
			IATACode:         t.get(row, "iata_code"),
			Type:             domain.AirportType(t.get(row, "type")),
			ScheduledService: strings.EqualFold(t.get(row, "scheduled_service"), "yes"),
			Latitude:         lat,
			Longitude:        lon,
		})
	}

	return airports, nil
}

func parseCoordinate(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
