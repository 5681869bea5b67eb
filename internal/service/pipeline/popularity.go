package pipeline

import (
	"strings"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/reference"
)

const (
	fameWeight    = 0.3
	tier1Bonus    = 40
	tier2Bonus    = 20
	densityCap    = 3
	densityPoints = 5
	gatewayBonus  = 15
	largeHubBonus = 5
	intlNameBonus = 2
	minPopularity = 10
	maxPopularity = 100
)

// PopularityScore - детерминированная оценка привлекательности в [10, 100].
// Не зависит от параметров запроса.
func PopularityScore(tables *reference.Tables, d *domain.ResolvedDestination) float64 {
	score := tables.Fame(d.FullCountry) * fameWeight

	switch {
	case tables.IsTier1Anchor(d.City):
		score += tier1Bonus
	case tables.IsTier2Anchor(d.City):
		score += tier2Bonus
	}

	score += float64(min(d.AirportDensity, densityCap) * densityPoints)

	if tables.IsGlobalGateway(d.IATA) {
		score += gatewayBonus
	}

	if d.Type == domain.AirportTypeLarge {
		score += largeHubBonus
	}
	if strings.Contains(d.AirportName, "International") {
		score += intlNameBonus
	}

	return max(minPopularity, min(score, maxPopularity))
}
