package pipeline

import (
	"context"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
)

// joined - направление после присоединения индексов и температур.
type joined struct {
	*domain.ResolvedDestination
	Costs domain.CostIndices
	Temps domain.MonthlyTemps
}

type GlobalAverages struct {
	CostOfLiving float64
	Rent         float64
}

type costBasis struct {
	byISO  map[string]domain.CostIndices
	byCity map[domain.CityKey]domain.CostIndices
	global GlobalAverages
}

func (p *Pipeline) buildCostBasis(ctx context.Context, country, city []domain.CostOfLivingRecord) *costBasis {
	b := &costBasis{
		byISO:  make(map[string]domain.CostIndices, len(country)),
		byCity: make(map[domain.CityKey]domain.CostIndices, len(city)),
		global: globalAverages(country),
	}

	for i := range country {
		rec := &country[i]
		iso, ok := p.countries.ISO(rec.Country)
		if !ok {
			logger.Debugf(ctx, "no ISO code for country %q, skipping cost record", rec.Country)
			continue
		}
		if _, dup := b.byISO[iso]; !dup {
			b.byISO[iso] = rec.Indices()
		}
	}

	for i := range city {
		rec := &city[i]
		key := domain.CityKey{City: rec.City, Country: rec.Country}
		if _, dup := b.byCity[key]; !dup {
			b.byCity[key] = rec.Indices()
		}
	}

	return b
}

// globalAverages - средние по всем записям уровня страны, где значение есть.
func globalAverages(records []domain.CostOfLivingRecord) GlobalAverages {
	var (
		colSum, rentSum float64
		colN, rentN     int
	)
	for _, r := range records {
		if r.CostOfLiving != nil {
			colSum += *r.CostOfLiving
			colN++
		}
		if r.Rent != nil {
			rentSum += *r.Rent
			rentN++
		}
	}

	var avg GlobalAverages
	if colN > 0 {
		avg.CostOfLiving = colSum / float64(colN)
	}
	if rentN > 0 {
		avg.Rent = rentSum / float64(rentN)
	}
	return avg
}

// lookup: значение города, иначе страны. false - нет ни одной записи, направление без базы цен.
func (b *costBasis) lookup(d *domain.ResolvedDestination) (domain.CostIndices, bool) {
	cityRec, hasCity := b.byCity[domain.CityKey{City: d.City, Country: d.FullCountry}]
	countryRec, hasCountry := b.byISO[d.ISOCountry]
	if !hasCity && !hasCountry {
		return domain.CostIndices{}, false
	}

	return domain.CostIndices{
		CostOfLiving:    coalesce(cityRec.CostOfLiving, countryRec.CostOfLiving),
		Rent:            coalesce(cityRec.Rent, countryRec.Rent),
		RestaurantPrice: coalesce(cityRec.RestaurantPrice, countryRec.RestaurantPrice),
	}, true
}

func coalesce(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

type climate struct {
	byCity       map[domain.CityKey]domain.MonthlyTemps
	countryMeans map[string]domain.MonthlyTemps
}

func buildClimate(records []domain.TemperatureRecord) *climate {
	c := &climate{
		byCity:       make(map[domain.CityKey]domain.MonthlyTemps, len(records)),
		countryMeans: make(map[string]domain.MonthlyTemps),
	}

	type acc struct {
		sum [12]float64
		n   [12]int
	}
	perCountry := make(map[string]*acc)

	for _, r := range records {
		key := domain.CityKey{City: r.City, Country: r.Country}
		if _, dup := c.byCity[key]; !dup {
			c.byCity[key] = r.Temps
		}

		a, ok := perCountry[r.Country]
		if !ok {
			a = new(acc)
			perCountry[r.Country] = a
		}
		for m, v := range r.Temps {
			if v != nil {
				a.sum[m] += *v
				a.n[m]++
			}
		}
	}

	for country, a := range perCountry {
		var means domain.MonthlyTemps
		for m := range means {
			if a.n[m] > 0 {
				v := a.sum[m] / float64(a.n[m])
				means[m] = &v
			}
		}
		c.countryMeans[country] = means
	}

	return c
}

// temps - значения города, пропуски заполняются средним по стране за тот же месяц.
func (c *climate) temps(d *domain.ResolvedDestination) domain.MonthlyTemps {
	city := c.byCity[domain.CityKey{City: d.City, Country: d.FullCountry}]
	country := c.countryMeans[d.FullCountry]

	var out domain.MonthlyTemps
	for m := range out {
		out[m] = coalesce(city[m], country[m])
	}
	return out
}

// join присоединяет стоимость и климат; направления без базы цен отбрасываются.
func (p *Pipeline) join(ctx context.Context, resolved []*domain.ResolvedDestination, src *domain.SourceSet) ([]*joined, *costBasis, int) {
	basis := p.buildCostBasis(ctx, src.CountryCosts, src.CityCosts)
	clim := buildClimate(src.Temperatures)

	out := make([]*joined, 0, len(resolved))
	dropped := 0
	for _, d := range resolved {
		costs, ok := basis.lookup(d)
		if !ok {
			dropped++
			logger.Debugf(ctx, "no cost basis for %s (%s), dropping", d.City, d.ISOCountry)
			continue
		}
		out = append(out, &joined{
			ResolvedDestination: d,
			Costs:               costs,
			Temps:               clim.temps(d),
		})
	}

	return out, basis, dropped
}
