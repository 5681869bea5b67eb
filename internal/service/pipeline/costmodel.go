package pipeline

import (
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	budgetCOLWeight  = decimal.NewFromFloat(1.5)
	budgetRentWeight = decimal.NewFromFloat(0.5)
	luxuryCOLWeight  = decimal.NewFromInt(3)
	luxuryRentWeight = decimal.NewFromInt(5)
)

// DailyBaselines считает бюджетную и люксовую дневную стоимость.
// Пропущенный индекс заменяется глобальным средним. Без округления: оно только при записи CSV.
func DailyBaselines(costs domain.CostIndices, global GlobalAverages) (budget, luxury float64) {
	col := global.CostOfLiving
	if costs.CostOfLiving != nil {
		col = *costs.CostOfLiving
	}
	rent := global.Rent
	if costs.Rent != nil {
		rent = *costs.Rent
	}

	c, r := decimal.NewFromFloat(col), decimal.NewFromFloat(rent)
	budget = c.Mul(budgetCOLWeight).Add(r.Mul(budgetRentWeight)).InexactFloat64()
	luxury = c.Mul(luxuryCOLWeight).Add(r.Mul(luxuryRentWeight)).InexactFloat64()
	return budget, luxury
}

func (p *Pipeline) buildDestination(j *joined, global GlobalAverages) *domain.Destination {
	region := p.tables.Region(j.ISOCountry)
	budget, luxury := DailyBaselines(j.Costs, global)
	label := domain.DestinationLabel(j.City, j.ISOCountry)

	return &domain.Destination{
		Label:           label,
		City:            j.City,
		IATA:            j.IATA,
		SearchTerm:      domain.SearchTerm(j.City, j.FullCountry),
		FullCountry:     j.FullCountry,
		ISOCountry:      j.ISOCountry,
		Region:          region,
		BaseFlightCost:  p.tables.FlightCost(region),
		DailyCostBudget: budget,
		DailyCostLuxury: luxury,
		Seasonality:     p.tables.Seasonality(region),
		Latitude:        j.Latitude,
		Longitude:       j.Longitude,
		PopularityScore: PopularityScore(p.tables, j.ResolvedDestination),
		Temperatures:    j.Temps,
		Traits:          domain.DeriveTraits(label, j.Temps),
	}
}
