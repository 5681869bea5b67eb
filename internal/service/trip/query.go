package trip

import (
	"fmt"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeFind     Mode = "find"
	ModeMaximize Mode = "maximize"
	ModePrice    Mode = "price"
)

type SortBy string

const (
	SortByPrice      SortBy = "price"
	SortByPopularity SortBy = "popularity"
)

// Style - стиль поездки: базовая дневная стоимость и три множителя.
type Style struct {
	Spending      domain.SpendingStyle
	FlightClass   float64
	Accommodation float64
	Activity      float64
}

// DefaultStyle - budget, economy, standard, moderate (значения по умолчанию).
func DefaultStyle() Style {
	return Style{Spending: domain.SpendingBudget, FlightClass: 1, Accommodation: 1, Activity: 1}
}

// Filters применяются только в режиме find. Пустое поле - без ограничения.
type Filters struct {
	Regions    []domain.Region
	Activities []string
	MinSafety  int
	Weather    []domain.WeatherCategory
}

func (f *Filters) match(d *domain.Destination) bool {
	if len(f.Regions) > 0 && !contains(f.Regions, d.Region) {
		return false
	}
	if len(f.Activities) > 0 && !d.Traits.HasAnyActivity(f.Activities) {
		return false
	}
	if d.Traits.Safety < f.MinSafety {
		return false
	}
	if len(f.Weather) > 0 && !contains(f.Weather, d.Traits.Weather) {
		return false
	}
	return true
}

func contains[T comparable](items []T, v T) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}

type Query struct {
	Mode Mode
	// Origin - ссылка на направление вылета; пустая - без расчета расстояния.
	Origin    string
	Travelers int
	Style     Style

	// Days - для find и price.
	Days int
	// Budget - для find и maximize.
	Budget decimal.Decimal
	// Destination - для maximize и price.
	Destination string

	Filters Filters
	SortBy  SortBy
	// Limit <= 0 - без ограничения.
	Limit int
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", constants.ErrInvalidTripParams, fmt.Sprintf(format, args...))
}

func (q *Query) validate() error {
	if q.Travelers < 1 {
		return invalid("travelers must be at least 1, got %d", q.Travelers)
	}
	switch q.Style.Spending {
	case domain.SpendingBudget, domain.SpendingLuxury:
	default:
		return invalid("unknown spending style %q", q.Style.Spending)
	}
	if q.Style.FlightClass <= 0 || q.Style.Accommodation <= 0 || q.Style.Activity <= 0 {
		return invalid("style multipliers must be positive")
	}

	needDays := q.Mode == ModeFind || q.Mode == ModePrice
	needBudget := q.Mode == ModeFind || q.Mode == ModeMaximize
	needDestination := q.Mode == ModeMaximize || q.Mode == ModePrice

	switch q.Mode {
	case ModeFind, ModeMaximize, ModePrice:
	default:
		return invalid("unknown mode %q", q.Mode)
	}
	if needDays && q.Days < 1 {
		return invalid("days must be at least 1, got %d", q.Days)
	}
	if needBudget && q.Budget.IsNegative() {
		return invalid("budget must not be negative")
	}
	if needDestination && q.Destination == "" {
		return invalid("destination is required for mode %q", q.Mode)
	}
	if q.Filters.MinSafety < 0 {
		return invalid("min safety must not be negative")
	}
	switch q.SortBy {
	case "", SortByPrice, SortByPopularity:
	default:
		return invalid("unknown sort %q", q.SortBy)
	}

	return nil
}

func unknownTier(kind, name string) error {
	return fmt.Errorf("%w: %s %q", constants.ErrUnknownTier, kind, name)
}
