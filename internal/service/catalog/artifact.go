package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/shopspring/decimal"
)

const versionSuffix = ".version"

var artifactHeader = append([]string{
	"Destination", "IATA", "Search_Term", "Full_Country", "iso_country", "Region",
	"Base_Flight_Cost", "Daily_Cost_Budget", "Daily_Cost_Luxury", "Seasonality",
	"latitude_deg", "longitude_deg", "Popularity_Score",
}, domain.MonthNames[:]...)

func formatRounded(v float64, places int) string {
	return strconv.FormatFloat(decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64(), 'f', -1, 64)
}

func formatMoney(v float64) string {
	return formatRounded(v, 2)
}

// координаты пишутся без потерь, по ним считается расстояние
func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeArtifact пишет таблицу в CSV в формате master_travel_data.csv.
func EncodeArtifact(w io.Writer, destinations []*domain.Destination) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(artifactHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(artifactHeader))
	for _, d := range destinations {
		row = row[:0]
		row = append(row,
			d.Label, d.IATA, d.SearchTerm, d.FullCountry, d.ISOCountry, string(d.Region),
			formatMoney(d.BaseFlightCost), formatMoney(d.DailyCostBudget), formatMoney(d.DailyCostLuxury),
			d.Seasonality, formatExact(d.Latitude), formatExact(d.Longitude), formatRounded(d.PopularityScore, 4),
		)
		for _, t := range d.Temperatures {
			if t == nil {
				row = append(row, "")
				continue
			}
			row = append(row, formatExact(*t))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", d.Label, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DecodeArtifact - обратная операция; производные атрибуты вычисляются заново.
func DecodeArtifact(r io.Reader) ([]*domain.Destination, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(artifactHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range artifactHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("unexpected column %d: %q, want %q", i, header[i], name)
		}
	}

	var destinations []*domain.Destination
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		d, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		destinations = append(destinations, d)
	}

	return destinations, nil
}

func decodeRow(rec []string) (*domain.Destination, error) {
	floats := make([]float64, 0, 6)
	for _, i := range []int{6, 7, 8, 10, 11, 12} {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", artifactHeader[i], err)
		}
		floats = append(floats, v)
	}

	var temps domain.MonthlyTemps
	for m := range temps {
		cell := strings.TrimSpace(rec[13+m])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", domain.MonthNames[m], err)
		}
		temps[m] = &v
	}

	label := rec[0]
	return &domain.Destination{
		Label:           label,
		City:            domain.CityFromLabel(label),
		IATA:            rec[1],
		SearchTerm:      rec[2],
		FullCountry:     rec[3],
		ISOCountry:      rec[4],
		Region:          domain.Region(rec[5]),
		BaseFlightCost:  floats[0],
		DailyCostBudget: floats[1],
		DailyCostLuxury: floats[2],
		Seasonality:     rec[9],
		Latitude:        floats[3],
		Longitude:       floats[4],
		PopularityScore: floats[5],
		Temperatures:    temps,
		Traits:          domain.DeriveTraits(label, temps),
	}, nil
}

// WriteArtifact атомарно заменяет файл таблицы: пишет во временный файл и переименовывает.
// При ошибке предыдущая таблица остается на месте.
func WriteArtifact(path, version string, destinations []*domain.Destination) error {
	if err := writeAtomic(path, func(w io.Writer) error {
		return EncodeArtifact(w, destinations)
	}); err != nil {
		return err
	}

	return writeAtomic(path+versionSuffix, func(w io.Writer) error {
		_, err := io.WriteString(w, version+"\n")
		return err
	})
}

func writeAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

// ReadArtifactVersion - версия опубликованной таблицы, "" если таблицы нет.
func ReadArtifactVersion(path string) (string, error) {
	data, err := os.ReadFile(path + versionSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("os.ReadFile: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func ReadArtifact(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	destinations, err := DecodeArtifact(f)
	if err != nil {
		return nil, fmt.Errorf("DecodeArtifact: %w", err)
	}

	version, err := ReadArtifactVersion(path)
	if err != nil {
		return nil, err
	}

	return NewTable(version, destinations), nil
}
