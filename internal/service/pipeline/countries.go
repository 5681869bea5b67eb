package pipeline

import (
	"github.com/biter777/countries"
	"github.com/ougirez/wanderwise/internal/domain/reference"
)

// CountryDirectory сопоставляет названия стран и коды ISO 3166-1 alpha-2.
type CountryDirectory interface {
	ISO(countryName string) (string, bool)
	Name(iso string) (string, bool)
}

// isoDirectory - таблица ручных исправлений поверх справочника ISO 3166.
type isoDirectory struct {
	tables    *reference.Tables
	isoToName map[string]string
}

func NewCountryDirectory(tables *reference.Tables) CountryDirectory {
	all := countries.All()
	isoToName := make(map[string]string, len(all))
	for _, c := range all {
		isoToName[c.Alpha2()] = c.String()
	}

	return &isoDirectory{tables: tables, isoToName: isoToName}
}

func (d *isoDirectory) ISO(countryName string) (string, bool) {
	if iso, ok := d.tables.OverrideISO(countryName); ok {
		return iso, true
	}

	code := countries.ByName(countryName)
	if code == countries.Unknown || !code.IsValid() {
		return "", false
	}
	return code.Alpha2(), true
}

func (d *isoDirectory) Name(iso string) (string, bool) {
	if name, ok := d.tables.OverrideName(iso); ok {
		return name, true
	}

	name, ok := d.isoToName[iso]
	return name, ok
}
