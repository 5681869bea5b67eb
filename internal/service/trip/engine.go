package trip

import (
	"sort"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/shopspring/decimal"
)

var (
	dailyShare       = decimal.NewFromFloat(0.4)
	distanceBase     = decimal.NewFromInt(150)
	distancePerKm    = decimal.NewFromFloat(0.08)
	travelersPerRoom = 2
)

// Catalog - то, что нужно движку от таблицы направлений.
type Catalog interface {
	All() []*domain.Destination
	Lookup(ref string) (*domain.Destination, error)
}

type Engine struct {
	tables        *reference.Tables
	distanceAware bool
}

// New создает движок. При distanceAware базовая цена перелета считается
// от расстояния до точки вылета вместо регионального тарифа.
func New(tables *reference.Tables, distanceAware bool) *Engine {
	return &Engine{tables: tables, distanceAware: distanceAware}
}

// Params - общая часть запроса для расчета одного направления.
type Params struct {
	Origin    *domain.Destination
	Travelers int
	Style     Style
}

// Quote считает стоимость поездки в dest на days дней.
func (e *Engine) Quote(dest *domain.Destination, p Params, days int) *domain.TripQuote {
	travelers := decimal.NewFromInt(int64(p.Travelers))
	rooms := decimal.NewFromInt(int64((p.Travelers + travelersPerRoom - 1) / travelersPerRoom))
	baseline := decimal.NewFromFloat(dest.DailyBaseline(p.Style.Spending)).Mul(dailyShare)

	flightBase, distance := e.flightBase(dest, p.Origin)
	flight := flightBase.Mul(decimal.NewFromFloat(p.Style.FlightClass)).Mul(travelers)

	food := baseline.Mul(travelers).Mul(decimal.NewFromFloat(p.Style.Activity))
	hotel := baseline.Mul(decimal.NewFromFloat(p.Style.Accommodation)).Mul(rooms)
	transport := decimal.NewFromFloat(e.tables.TransportRate(dest.City)).Mul(travelers)
	daily := food.Add(hotel).Add(transport)

	return &domain.TripQuote{
		Destination:    dest,
		Travelers:      p.Travelers,
		FlightCost:     flight,
		DailyFood:      food,
		DailyHotel:     hotel,
		DailyTransport: transport,
		DailyTotal:     daily,
		Days:           days,
		TripCost:       flight.Add(daily.Mul(decimal.NewFromInt(int64(days)))),
		DistanceKm:     distance,
	}
}

func (e *Engine) flightBase(dest, origin *domain.Destination) (decimal.Decimal, *float64) {
	if origin == nil {
		return decimal.NewFromFloat(dest.BaseFlightCost), nil
	}

	km := haversineKm(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude)
	if !e.distanceAware {
		return decimal.NewFromFloat(dest.BaseFlightCost), &km
	}

	return distanceBase.Add(distancePerKm.Mul(decimal.NewFromFloat(km))), &km
}

// FindDestinations возвращает направления, укладывающиеся в budget за days дней.
func (e *Engine) FindDestinations(cat Catalog, p Params, days int, budget decimal.Decimal,
	filters Filters, sortBy SortBy, limit int) []*domain.TripQuote {
	quotes := make([]*domain.TripQuote, 0)
	for _, d := range cat.All() {
		if !filters.match(d) {
			continue
		}
		q := e.Quote(d, p, days)
		if q.TripCost.GreaterThan(budget) {
			continue
		}
		quotes = append(quotes, q)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i], quotes[j]
		if sortBy == SortByPopularity && a.Destination.PopularityScore != b.Destination.PopularityScore {
			return a.Destination.PopularityScore > b.Destination.PopularityScore
		}
		if c := a.TripCost.Cmp(b.TripCost); c != 0 {
			return c < 0
		}
		return a.Destination.Label < b.Destination.Label
	})

	if limit > 0 && len(quotes) > limit {
		quotes = quotes[:limit]
	}

	return quotes
}

// MaximizeDays - наибольшее целое число дней в dest, которое покрывает budget.
// Если бюджет не покрывает перелет, дней 0.
func (e *Engine) MaximizeDays(dest *domain.Destination, p Params, budget decimal.Decimal) *domain.TripQuote {
	q := e.Quote(dest, p, 0)

	days := 0
	if budget.GreaterThan(q.FlightCost) && q.DailyTotal.IsPositive() {
		days = int(budget.Sub(q.FlightCost).Div(q.DailyTotal).Floor().IntPart())
	}

	q.Days = days
	q.TripCost = q.FlightCost.Add(q.DailyTotal.Mul(decimal.NewFromInt(int64(days))))
	return q
}

func (e *Engine) PriceTrip(dest *domain.Destination, p Params, days int) *domain.TripQuote {
	return e.Quote(dest, p, days)
}

// Run разбирает запрос и выполняет нужный режим.
func (e *Engine) Run(cat Catalog, q Query) ([]*domain.TripQuote, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	p := Params{Travelers: q.Travelers, Style: q.Style}
	if q.Origin != "" {
		origin, err := cat.Lookup(q.Origin)
		if err != nil {
			return nil, err
		}
		p.Origin = origin
	}

	if q.Mode == ModeFind {
		return e.FindDestinations(cat, p, q.Days, q.Budget, q.Filters, q.SortBy, q.Limit), nil
	}

	dest, err := cat.Lookup(q.Destination)
	if err != nil {
		return nil, err
	}

	if q.Mode == ModeMaximize {
		return []*domain.TripQuote{e.MaximizeDays(dest, p, q.Budget)}, nil
	}

	return []*domain.TripQuote{e.PriceTrip(dest, p, q.Days)}, nil
}

// ResolveStyle переводит названия тарифов в множители. Пустое имя - тариф по умолчанию.
func (e *Engine) ResolveStyle(spending domain.SpendingStyle, flightClass, accommodation, activity string) (Style, error) {
	tiers := e.tables.Tiers()
	s := Style{Spending: spending}
	if s.Spending == "" {
		s.Spending = domain.SpendingBudget
	}

	var ok bool
	if s.FlightClass, ok = tiers.FlightClass(flightClass); !ok {
		return Style{}, unknownTier("flight class", flightClass)
	}
	if s.Accommodation, ok = tiers.Accommodation(accommodation); !ok {
		return Style{}, unknownTier("accommodation", accommodation)
	}
	if s.Activity, ok = tiers.Activity(activity); !ok {
		return Style{}, unknownTier("activity", activity)
	}

	return s, nil
}
