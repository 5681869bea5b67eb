package loader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ougirez/wanderwise/internal/domain"
)

var numberRegex = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?|[-+]?\.\d+`)

// ParseTemperature берет первое число из ячейки вида "12.5 (54.5)" или "−3.1".
// Ячейка без чисел - nil.
func ParseTemperature(cell string) *float64 {
	cell = strings.ReplaceAll(cell, "\u2212", "-")
	m := numberRegex.FindString(cell)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

func ParseTemperatures(r io.Reader) ([]domain.TemperatureRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("readTable: %w", err)
	}
	if err = t.require(append([]string{"City", "Country"}, domain.MonthNames[:]...)...); err != nil {
		return nil, err
	}

	records := make([]domain.TemperatureRecord, 0, len(t.rows))
	for _, row := range t.rows {
		rec := domain.TemperatureRecord{
			City:    t.get(row, "City"),
			Country: t.get(row, "Country"),
		}
		if rec.City == "" || rec.Country == "" {
			continue
		}
		for i, m := range domain.MonthNames {
			rec.Temps[i] = ParseTemperature(t.get(row, m))
		}
		records = append(records, rec)
	}

	return records, nil
}
