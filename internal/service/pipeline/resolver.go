package pipeline

import (
	"sort"
	"strings"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/reference"
)

const UnknownCity = "Unknown"

type resolveStats struct {
	qualified  int
	uniqueIATA int
}

// Qualifies - крупный аэропорт или средний с "International" в названии,
// с регулярными рейсами и IATA-кодом.
func Qualifies(a *domain.RawAirport) bool {
	if !a.ScheduledService || strings.TrimSpace(a.IATACode) == "" {
		return false
	}
	switch a.Type {
	case domain.AirportTypeLarge:
		return true
	case domain.AirportTypeMedium:
		return strings.Contains(a.Name, "International")
	default:
		return false
	}
}

// CleanCity отрезает скобочный суффикс: "Paris (Roissy)" -> "Paris".
func CleanCity(municipality string) string {
	city := strings.TrimSpace(strings.SplitN(municipality, "(", 2)[0])
	if city == "" {
		return UnknownCity
	}
	return city
}

// fixIATA применяет исправления известных ошибок разметки.
// Второе значение false - строку нужно выбросить.
func fixIATA(a *domain.RawAirport, fixes []reference.IATAFix) (string, bool) {
	iata := strings.ToUpper(strings.TrimSpace(a.IATACode))
	for _, f := range fixes {
		if iata != f.Code {
			continue
		}
		if a.ISOCountry == f.Country && strings.Contains(strings.ToLower(a.Municipality), f.CityFragment) {
			iata = f.Replacement
			continue
		}
		if a.ISOCountry != f.HomeCountry {
			return "", false
		}
	}
	return iata, true
}

// HubScore - эвристика качества аэропорта для выбора одного на город.
// Бонус +40, если municipality как есть входит в название аэропорта.
func HubScore(tables *reference.Tables, typ domain.AirportType, name, municipality, iata string) int {
	score := 0
	switch typ {
	case domain.AirportTypeLarge:
		score += 100
	case domain.AirportTypeMedium:
		score += 50
	}

	lowerName := strings.ToLower(name)
	if strings.Contains(lowerName, "international") {
		score += 30
	}
	if m := strings.TrimSpace(municipality); m != "" && strings.Contains(lowerName, strings.ToLower(m)) {
		score += 40
	}
	if tables.IsMegaHub(iata) {
		score += 500
	}

	return score
}

func (p *Pipeline) resolveAirports(raw []domain.RawAirport) ([]*domain.ResolvedDestination, resolveStats) {
	var stats resolveStats

	// фильтр и исправление кодов, затем дедуп по IATA: остается более крупный тип
	byIATA := make(map[string]int)
	kept := make([]*domain.ResolvedDestination, 0, len(raw)/10)
	fixes := p.tables.IATAFixes()
	for i := range raw {
		a := &raw[i]
		if !Qualifies(a) {
			continue
		}
		iata, ok := fixIATA(a, fixes)
		if !ok {
			continue
		}
		stats.qualified++

		cand := &domain.ResolvedDestination{
			City:         CleanCity(a.Municipality),
			Municipality: a.Municipality,
			ISOCountry:  a.ISOCountry,
			IATA:        iata,
			AirportName: a.Name,
			Type:        a.Type,
			Latitude:    a.Latitude,
			Longitude:   a.Longitude,
		}

		if idx, seen := byIATA[iata]; seen {
			if cand.Type.Rank() < kept[idx].Type.Rank() {
				kept[idx] = cand
			}
			continue
		}
		byIATA[iata] = len(kept)
		kept = append(kept, cand)
	}
	stats.uniqueIATA = len(kept)

	density := make(map[domain.CityKey]int, len(kept))
	for _, c := range kept {
		density[c.Key()]++
	}

	// дедуп по (город, страна): остается максимальный hub score, при равенстве - первый
	best := make(map[domain.CityKey]*domain.ResolvedDestination, len(density))
	for _, c := range kept {
		c.AirportDensity = density[c.Key()]
		c.HubScore = HubScore(p.tables, c.Type, c.AirportName, c.Municipality, c.IATA)

		if cur, ok := best[c.Key()]; !ok || c.HubScore > cur.HubScore {
			best[c.Key()] = c
		}
	}

	resolved := make([]*domain.ResolvedDestination, 0, len(best))
	for _, c := range best {
		if name, ok := p.countries.Name(c.ISOCountry); ok {
			c.FullCountry = name
		} else {
			c.FullCountry = c.ISOCountry
		}
		resolved = append(resolved, c)
	}
	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].City != resolved[j].City {
			return resolved[i].City < resolved[j].City
		}
		return resolved[i].ISOCountry < resolved[j].ISOCountry
	})

	return resolved, stats
}
