package domain

import "fmt"

var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyTemps - средние температуры по месяцам, nil означает "неизвестно".
type MonthlyTemps [12]*float64

// Mean возвращает среднее по известным месяцам.
func (m MonthlyTemps) Mean() (float64, bool) {
	var (
		sum float64
		n   int
	)
	for _, v := range m {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (m MonthlyTemps) Slice() []*float64 {
	out := make([]*float64, len(m))
	copy(out, m[:])
	return out
}

func MonthlyTempsFromSlice(s []*float64) (MonthlyTemps, error) {
	var m MonthlyTemps
	if len(s) == 0 {
		return m, nil
	}
	if len(s) != len(m) {
		return m, fmt.Errorf("expected %d monthly values, got %d", len(m), len(s))
	}
	copy(m[:], s)
	return m, nil
}

type TemperatureRecord struct {
	City    string
	Country string
	Temps   MonthlyTemps
}
