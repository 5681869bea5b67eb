package domain

import "github.com/shopspring/decimal"

// TripQuote - расчет стоимости поездки в одно направление. Не сохраняется.
type TripQuote struct {
	Destination    *Destination    `json:"destination"`
	Travelers      int             `json:"travelers"`
	FlightCost     decimal.Decimal `json:"flight_cost"`
	DailyFood      decimal.Decimal `json:"daily_food"`
	DailyHotel     decimal.Decimal `json:"daily_hotel"`
	DailyTransport decimal.Decimal `json:"daily_transport"`
	DailyTotal     decimal.Decimal `json:"daily_total"`
	Days           int             `json:"days"`
	TripCost       decimal.Decimal `json:"trip_cost"`
	DistanceKm     *float64        `json:"distance_km,omitempty"`
}
