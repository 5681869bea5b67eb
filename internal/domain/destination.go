package domain

import (
	"fmt"
	"strings"
)

type Region string

const (
	RegionEurope       Region = "Europe"
	RegionAsia         Region = "Asia"
	RegionSouthAmerica Region = "South America"
	RegionAfrica       Region = "Africa"
	RegionOceania      Region = "Oceania"
	RegionNorthAmerica Region = "North America"
	RegionOther        Region = "Other"
)

// Destination - строка итоговой таблицы направлений. После сборки не меняется.
type Destination struct {
	Label           string       `json:"destination"`
	City            string       `json:"city"`
	IATA            string       `json:"iata"`
	SearchTerm      string       `json:"search_term"`
	FullCountry     string       `json:"full_country"`
	ISOCountry      string       `json:"iso_country"`
	Region          Region       `json:"region"`
	BaseFlightCost  float64      `json:"base_flight_cost"`
	DailyCostBudget float64      `json:"daily_cost_budget"`
	DailyCostLuxury float64      `json:"daily_cost_luxury"`
	Seasonality     string       `json:"seasonality"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	PopularityScore float64      `json:"popularity_score"`
	Temperatures    MonthlyTemps `json:"temperatures"`
	Traits          Traits       `json:"traits"`
}

func DestinationLabel(city, iso string) string {
	return fmt.Sprintf("%s, %s", city, iso)
}

func SearchTerm(city, country string) string {
	return fmt.Sprintf("%s, %s", city, country)
}

// CityFromLabel отрезает ", ISO" от метки направления.
func CityFromLabel(label string) string {
	if i := strings.LastIndex(label, ", "); i >= 0 {
		return label[:i]
	}
	return label
}

// DailyBaseline выбирает базовую дневную стоимость под стиль трат.
func (d *Destination) DailyBaseline(style SpendingStyle) float64 {
	if style == SpendingLuxury {
		return d.DailyCostLuxury
	}
	return d.DailyCostBudget
}

type SpendingStyle string

const (
	SpendingBudget SpendingStyle = "budget"
	SpendingLuxury SpendingStyle = "luxury"
)
