package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ougirez/wanderwise/internal/domain"
)

const (
	colCountry         = "Country"
	colCity            = "City"
	colCostOfLiving    = "Cost of Living Index"
	colRent            = "Rent Index"
	colRestaurantPrice = "Restaurant Price Index"
)

// ParseCountryCosts читает индексы стоимости жизни по странам.
func ParseCountryCosts(r io.Reader) ([]domain.CostOfLivingRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("readTable: %w", err)
	}
	if err = t.require(colCountry, colCostOfLiving, colRent, colRestaurantPrice); err != nil {
		return nil, err
	}

	records := make([]domain.CostOfLivingRecord, 0, len(t.rows))
	for _, row := range t.rows {
		country := t.get(row, colCountry)
		if country == "" {
			continue
		}
		records = append(records, domain.CostOfLivingRecord{
			Country:         country,
			CostOfLiving:    parseNullable(t.get(row, colCostOfLiving)),
			Rent:            parseNullable(t.get(row, colRent)),
			RestaurantPrice: parseNullable(t.get(row, colRestaurantPrice)),
		})
	}

	return records, nil
}

// ParseCityCosts читает индексы по городам. Поле City имеет вид "City, ..., Country":
// первый токен - город, последний - страна.
func ParseCityCosts(r io.Reader) ([]domain.CostOfLivingRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("readTable: %w", err)
	}
	if err = t.require(colCity, colCostOfLiving, colRent, colRestaurantPrice); err != nil {
		return nil, err
	}

	records := make([]domain.CostOfLivingRecord, 0, len(t.rows))
	for _, row := range t.rows {
		city, country, ok := SplitCityField(t.get(row, colCity))
		if !ok {
			continue
		}
		records = append(records, domain.CostOfLivingRecord{
			City:            city,
			Country:         country,
			CostOfLiving:    parseNullable(t.get(row, colCostOfLiving)),
			Rent:            parseNullable(t.get(row, colRent)),
			RestaurantPrice: parseNullable(t.get(row, colRestaurantPrice)),
		})
	}

	return records, nil
}

func SplitCityField(field string) (city, country string, ok bool) {
	parts := strings.Split(field, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	city, country = parts[0], parts[len(parts)-1]
	if city == "" || country == "" {
		return "", "", false
	}
	return city, country, true
}

// ParseCountryCostsHTML достает те же индексы из HTML-страницы рейтинга:
// берется первая таблица, в заголовке которой есть нужные колонки.
func ParseCountryCostsHTML(r io.Reader) ([]domain.CostOfLivingRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var (
		records []domain.CostOfLivingRecord
		found   bool
	)
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		columns := make(map[string]int)
		tbl.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
			name := strings.TrimSpace(th.Text())
			if _, dup := columns[name]; !dup {
				columns[name] = i
			}
		})

		for _, c := range []string{colCountry, colCostOfLiving, colRent, colRestaurantPrice} {
			if _, ok := columns[c]; !ok {
				// не та таблица
				return true
			}
		}
		found = true

		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			tds := tr.Find("td")
			if tds.Length() == 0 {
				return
			}
			cell := func(name string) string {
				return strings.TrimSpace(tds.Eq(columns[name]).Text())
			}

			country := cell(colCountry)
			if country == "" {
				return
			}
			records = append(records, domain.CostOfLivingRecord{
				Country:         country,
				CostOfLiving:    parseNullable(cell(colCostOfLiving)),
				Rent:            parseNullable(cell(colRent)),
				RestaurantPrice: parseNullable(cell(colRestaurantPrice)),
			})
		})

		return false
	})

	if !found {
		return nil, fmt.Errorf("no table with columns %q, %q, %q, %q", colCountry, colCostOfLiving, colRent, colRestaurantPrice)
	}

	return records, nil
}
