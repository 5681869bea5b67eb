package trip

import (
	"testing"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/service/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dest(city, iso string, region domain.Region, flight, budget float64, popularity float64) *domain.Destination {
	label := domain.DestinationLabel(city, iso)
	return &domain.Destination{
		Label:           label,
		City:            city,
		IATA:            iso + "X",
		SearchTerm:      city,
		ISOCountry:      iso,
		Region:          region,
		BaseFlightCost:  flight,
		DailyCostBudget: budget,
		DailyCostLuxury: budget * 3,
		PopularityScore: popularity,
		Traits:          domain.DeriveTraits(label, domain.MonthlyTemps{}),
	}
}

// springfield: перелет 400, базовая дневная 100, транспорт по умолчанию 30.
func springfield() *domain.Destination {
	return dest("Springfield", "US", domain.RegionNorthAmerica, 400, 100, 20)
}

func testCatalog() *catalog.Table {
	return catalog.NewTable("test", []*domain.Destination{
		springfield(),
		dest("Paris", "FR", domain.RegionEurope, 850, 142.5, 100),
		dest("Tokyo", "JP", domain.RegionAsia, 1200, 120, 90),
		dest("Reykjavik", "IS", domain.RegionEurope, 850, 160, 40),
		dest("Lima", "PE", domain.RegionSouthAmerica, 700, 60, 30),
	})
}

func style(flight, accommodation, activity float64) Style {
	return Style{Spending: domain.SpendingBudget, FlightClass: flight, Accommodation: accommodation, Activity: activity}
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestEngine_Quote_Scenario(t *testing.T) {
	e := New(reference.Default(), false)

	q := e.Quote(springfield(), Params{Travelers: 2, Style: style(1.5, 1, 1)}, 7)

	assert.True(t, d("1200").Equal(q.FlightCost), q.FlightCost.String())
	assert.True(t, d("40").Equal(q.DailyHotel), q.DailyHotel.String())
	assert.True(t, d("80").Equal(q.DailyFood), q.DailyFood.String())
	assert.True(t, d("60").Equal(q.DailyTransport), q.DailyTransport.String())
	assert.True(t, d("180").Equal(q.DailyTotal), q.DailyTotal.String())
	assert.True(t, d("2460").Equal(q.TripCost), q.TripCost.String())
	assert.Equal(t, 7, q.Days)
	assert.Nil(t, q.DistanceKm)
}

func TestEngine_MaximizeDays_Scenario(t *testing.T) {
	e := New(reference.Default(), false)

	q := e.MaximizeDays(springfield(), Params{Travelers: 2, Style: style(1, 1, 1)}, d("2460"))
	assert.True(t, d("800").Equal(q.FlightCost))
	assert.Equal(t, 9, q.Days)
	assert.True(t, d("2420").Equal(q.TripCost), q.TripCost.String())
}

func TestEngine_MaximizeDays_Inverse(t *testing.T) {
	e := New(reference.Default(), false)
	cat := testCatalog()

	for _, dst := range cat.All() {
		for _, travelers := range []int{1, 2, 3, 5} {
			p := Params{Travelers: travelers, Style: style(1.5, 1.8, 1.3)}
			base := e.Quote(dst, p, 0)
			for k := 0; k <= 30; k += 3 {
				budget := base.FlightCost.Add(base.DailyTotal.Mul(decimal.NewFromInt(int64(k))))
				got := e.MaximizeDays(dst, p, budget)
				assert.Equal(t, k, got.Days, "%s travelers=%d k=%d", dst.Label, travelers, k)
			}
		}
	}
}

func TestEngine_MaximizeDays_BudgetBelowFlight(t *testing.T) {
	e := New(reference.Default(), false)
	p := Params{Travelers: 2, Style: style(1, 1, 1)}

	assert.Equal(t, 0, e.MaximizeDays(springfield(), p, d("500")).Days)
	assert.Equal(t, 0, e.MaximizeDays(springfield(), p, d("800")).Days)
	assert.Equal(t, 0, e.MaximizeDays(springfield(), p, d("979.99")).Days)
	assert.Equal(t, 1, e.MaximizeDays(springfield(), p, d("980")).Days)
}

func TestEngine_Quote_Monotonic(t *testing.T) {
	e := New(reference.Default(), false)
	dst := springfield()

	prev := decimal.Zero
	for travelers := 1; travelers <= 9; travelers++ {
		q := e.Quote(dst, Params{Travelers: travelers, Style: style(1, 1, 1)}, 5)
		assert.True(t, q.TripCost.GreaterThanOrEqual(prev), "travelers=%d", travelers)
		prev = q.TripCost
	}

	mults := []float64{0.5, 0.8, 1, 1.3, 1.5, 3, 5}
	for i := 1; i < len(mults); i++ {
		lo, hi := mults[i-1], mults[i]
		p := Params{Travelers: 3}
		for _, pair := range [][2]Style{
			{style(lo, 1, 1), style(hi, 1, 1)},
			{style(1, lo, 1), style(1, hi, 1)},
			{style(1, 1, lo), style(1, 1, hi)},
		} {
			p.Style = pair[0]
			a := e.Quote(dst, p, 4).TripCost
			p.Style = pair[1]
			b := e.Quote(dst, p, 4).TripCost
			assert.True(t, b.GreaterThanOrEqual(a), "%v -> %v", pair[0], pair[1])
		}
	}
}

func TestEngine_Quote_Rooms(t *testing.T) {
	e := New(reference.Default(), false)

	hotel := func(travelers int) decimal.Decimal {
		return e.Quote(springfield(), Params{Travelers: travelers, Style: style(1, 1, 1)}, 1).DailyHotel
	}
	assert.True(t, hotel(1).Equal(hotel(2)))
	assert.True(t, hotel(3).Equal(hotel(4)))
	assert.True(t, hotel(3).Equal(hotel(1).Mul(decimal.NewFromInt(2))))
}

func TestEngine_Quote_Luxury(t *testing.T) {
	e := New(reference.Default(), false)
	p := Params{Travelers: 1, Style: style(1, 1, 1)}

	budget := e.Quote(springfield(), p, 1)
	p.Style.Spending = domain.SpendingLuxury
	luxury := e.Quote(springfield(), p, 1)

	assert.True(t, d("40").Equal(budget.DailyFood))
	assert.True(t, d("120").Equal(luxury.DailyFood))
}

func TestEngine_Quote_Transport(t *testing.T) {
	e := New(reference.Default(), false)
	p := Params{Travelers: 1, Style: style(1, 1, 1)}

	tests := map[string]string{
		"Tokyo":       "10",
		"Los Angeles": "50",
		"Reykjavik":   "80",
		"Springfield": "30",
	}
	for city, want := range tests {
		q := e.Quote(dest(city, "XX", domain.RegionOther, 800, 100, 10), p, 1)
		assert.True(t, d(want).Equal(q.DailyTransport), "%s: %s", city, q.DailyTransport)
	}
}

func TestEngine_Quote_DistanceAware(t *testing.T) {
	origin := dest("Origin", "AA", domain.RegionOther, 800, 100, 10)
	target := dest("Target", "BB", domain.RegionOther, 800, 100, 10)
	origin.Latitude, origin.Longitude = 0, 0
	target.Latitude, target.Longitude = 0, 1

	p := Params{Origin: origin, Travelers: 1, Style: style(1, 1, 1)}

	q := New(reference.Default(), true).Quote(target, p, 1)
	require.NotNil(t, q.DistanceKm)
	// один градус по экватору
	assert.InDelta(t, 111.19, *q.DistanceKm, 0.01)
	assert.InDelta(t, 150+0.08*111.19, q.FlightCost.InexactFloat64(), 0.01)

	plain := New(reference.Default(), false).Quote(target, p, 1)
	require.NotNil(t, plain.DistanceKm)
	assert.True(t, d("800").Equal(plain.FlightCost))

	noOrigin := New(reference.Default(), true).Quote(target, Params{Travelers: 1, Style: style(1, 1, 1)}, 1)
	assert.Nil(t, noOrigin.DistanceKm)
	assert.True(t, d("800").Equal(noOrigin.FlightCost))
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, haversineKm(48.85, 2.35, 48.85, 2.35), 1e-9)
	// Париж - Лондон
	assert.InDelta(t, 344, haversineKm(48.8566, 2.3522, 51.5074, -0.1278), 2)
	// антиподы
	assert.InDelta(t, 6371*3.141592653589793, haversineKm(0, 0, 0, 180), 1e-6)
}

func TestEngine_FindDestinations_Filter(t *testing.T) {
	e := New(reference.Default(), false)
	cat := testCatalog()
	p := Params{Travelers: 2, Style: style(1, 1, 1)}
	budget := d("2500")

	found := e.FindDestinations(cat, p, 7, budget, Filters{}, SortByPrice, 0)

	inResult := make(map[string]bool)
	for _, q := range found {
		assert.True(t, q.TripCost.LessThanOrEqual(budget))
		inResult[q.Destination.Label] = true
	}
	for _, dst := range cat.All() {
		q := e.Quote(dst, p, 7)
		assert.Equal(t, q.TripCost.LessThanOrEqual(budget), inResult[dst.Label], dst.Label)
	}

	for i := 1; i < len(found); i++ {
		assert.True(t, found[i-1].TripCost.LessThanOrEqual(found[i].TripCost))
	}
}

func TestEngine_FindDestinations_Sort(t *testing.T) {
	e := New(reference.Default(), false)
	cat := testCatalog()
	p := Params{Travelers: 1, Style: style(1, 1, 1)}

	byPopularity := e.FindDestinations(cat, p, 3, d("100000"), Filters{}, SortByPopularity, 0)
	require.Len(t, byPopularity, 5)
	assert.Equal(t, "Paris, FR", byPopularity[0].Destination.Label)
	assert.Equal(t, "Tokyo, JP", byPopularity[1].Destination.Label)
	for i := 1; i < len(byPopularity); i++ {
		assert.GreaterOrEqual(t, byPopularity[i-1].Destination.PopularityScore, byPopularity[i].Destination.PopularityScore)
	}

	limited := e.FindDestinations(cat, p, 3, d("100000"), Filters{}, SortByPrice, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, "Springfield, US", limited[0].Destination.Label)
}

func TestEngine_FindDestinations_Filters(t *testing.T) {
	e := New(reference.Default(), false)
	cat := testCatalog()
	p := Params{Travelers: 1, Style: style(1, 1, 1)}
	budget := d("100000")

	europe := e.FindDestinations(cat, p, 3, budget, Filters{Regions: []domain.Region{domain.RegionEurope}}, SortByPrice, 0)
	require.Len(t, europe, 2)
	for _, q := range europe {
		assert.Equal(t, domain.RegionEurope, q.Destination.Region)
	}

	safe := e.FindDestinations(cat, p, 3, budget, Filters{MinSafety: 8}, SortByPrice, 0)
	for _, q := range safe {
		assert.GreaterOrEqual(t, q.Destination.Traits.Safety, 8)
	}

	tag := cat.All()[0].Traits.Activities[0]
	withTag := e.FindDestinations(cat, p, 3, budget, Filters{Activities: []string{tag}}, SortByPrice, 0)
	require.NotEmpty(t, withTag)
	for _, q := range withTag {
		assert.True(t, q.Destination.Traits.HasAnyActivity([]string{tag}))
	}

	// температур нет ни у кого - все Unknown
	cold := e.FindDestinations(cat, p, 3, budget, Filters{Weather: []domain.WeatherCategory{domain.WeatherCold}}, SortByPrice, 0)
	assert.Empty(t, cold)
	unknown := e.FindDestinations(cat, p, 3, budget, Filters{Weather: []domain.WeatherCategory{domain.WeatherUnknown}}, SortByPrice, 0)
	assert.Len(t, unknown, 5)
}

func TestEngine_Run_PriceMatchesFind(t *testing.T) {
	e := New(reference.Default(), false)
	cat := testCatalog()

	for days := 1; days <= 21; days += 4 {
		base := Query{Travelers: 3, Style: style(3, 1.8, 1.3), Days: days}

		find := base
		find.Mode = ModeFind
		find.Budget = d("1000000")
		found, err := e.Run(cat, find)
		require.NoError(t, err)
		require.Len(t, found, cat.Len())

		for _, f := range found {
			price := base
			price.Mode = ModePrice
			price.Destination = f.Destination.Label
			priced, err := e.Run(cat, price)
			require.NoError(t, err)
			require.Len(t, priced, 1)
			assert.True(t, f.TripCost.Equal(priced[0].TripCost), "%s days=%d", f.Destination.Label, days)
		}
	}
}

func TestEngine_Run_Maximize(t *testing.T) {
	e := New(reference.Default(), false)

	quotes, err := e.Run(testCatalog(), Query{
		Mode:        ModeMaximize,
		Travelers:   2,
		Style:       style(1, 1, 1),
		Budget:      d("2460"),
		Destination: "springfield",
	})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, 9, quotes[0].Days)
}

func TestEngine_Run_Errors(t *testing.T) {
	e := New(reference.Default(), false)
	cat := testCatalog()

	tests := []struct {
		name string
		q    Query
		err  error
	}{
		{name: "unknown mode", q: Query{Mode: "fly", Travelers: 1, Style: DefaultStyle()}, err: constants.ErrInvalidTripParams},
		{name: "no travelers", q: Query{Mode: ModeFind, Style: DefaultStyle(), Days: 3}, err: constants.ErrInvalidTripParams},
		{name: "zero multiplier", q: Query{Mode: ModeFind, Travelers: 1, Style: style(0, 1, 1), Days: 3}, err: constants.ErrInvalidTripParams},
		{name: "no days", q: Query{Mode: ModePrice, Travelers: 1, Style: DefaultStyle(), Destination: "Paris"}, err: constants.ErrInvalidTripParams},
		{name: "negative budget", q: Query{Mode: ModeMaximize, Travelers: 1, Style: DefaultStyle(), Destination: "Paris", Budget: d("-1")}, err: constants.ErrInvalidTripParams},
		{name: "no destination", q: Query{Mode: ModeMaximize, Travelers: 1, Style: DefaultStyle()}, err: constants.ErrInvalidTripParams},
		{name: "bad sort", q: Query{Mode: ModeFind, Travelers: 1, Style: DefaultStyle(), Days: 1, SortBy: "name"}, err: constants.ErrInvalidTripParams},
		{name: "bad spending", q: Query{Mode: ModeFind, Travelers: 1, Style: Style{Spending: "lavish", FlightClass: 1, Accommodation: 1, Activity: 1}, Days: 1}, err: constants.ErrInvalidTripParams},
		{name: "unknown destination", q: Query{Mode: ModePrice, Travelers: 1, Style: DefaultStyle(), Days: 2, Destination: "Atlantis"}, err: constants.ErrDestinationNotFound},
		{name: "unknown origin", q: Query{Mode: ModeFind, Travelers: 1, Style: DefaultStyle(), Days: 2, Origin: "Atlantis"}, err: constants.ErrDestinationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(cat, tt.q)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEngine_ResolveStyle(t *testing.T) {
	e := New(reference.Default(), false)

	s, err := e.ResolveStyle("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), s)

	s, err = e.ResolveStyle(domain.SpendingLuxury, "business", "boutique", "adventure")
	require.NoError(t, err)
	assert.Equal(t, Style{Spending: domain.SpendingLuxury, FlightClass: 3, Accommodation: 1.8, Activity: 1.6}, s)

	_, err = e.ResolveStyle("", "rocket", "", "")
	assert.ErrorIs(t, err, constants.ErrUnknownTier)
}
