package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthly(v float64) MonthlyTemps {
	var m MonthlyTemps
	for i := range m {
		v := v
		m[i] = &v
	}
	return m
}

func TestDeriveTraits_Stable(t *testing.T) {
	labels := []string{"Paris, FR", "Tokyo, JP", "Reykjavik, IS", "Cusco, PE", "Nadi, FJ"}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			a := DeriveTraits(label, monthly(15))
			b := DeriveTraits(label, monthly(15))
			assert.Equal(t, a, b)

			assert.GreaterOrEqual(t, a.Safety, 5)
			assert.LessOrEqual(t, a.Safety, 10)
			require.NotEmpty(t, a.Activities)
			assert.True(t, sort.StringsAreSorted(a.Activities))
			for _, tag := range a.Activities {
				assert.Contains(t, ActivityTags, tag)
			}
		})
	}
}

func TestWeatherFor(t *testing.T) {
	assert.Equal(t, WeatherTropical, WeatherFor(monthly(27)))
	assert.Equal(t, WeatherWarm, WeatherFor(monthly(20)))
	assert.Equal(t, WeatherMild, WeatherFor(monthly(12)))
	assert.Equal(t, WeatherCold, WeatherFor(monthly(-4)))
	assert.Equal(t, WeatherUnknown, WeatherFor(MonthlyTemps{}))

	partial := MonthlyTemps{}
	hot, cold := 30.0, 20.0
	partial[0], partial[6] = &hot, &cold
	assert.Equal(t, WeatherTropical, WeatherFor(partial))
}

func TestTraits_HasAnyActivity(t *testing.T) {
	tr := Traits{Activities: []string{"Beach", "Food"}}
	assert.True(t, tr.HasAnyActivity([]string{"Food", "History"}))
	assert.False(t, tr.HasAnyActivity([]string{"History"}))
	assert.False(t, tr.HasAnyActivity(nil))
}

func TestCityFromLabel(t *testing.T) {
	assert.Equal(t, "Paris", CityFromLabel(DestinationLabel("Paris", "FR")))
	assert.Equal(t, "Washington, D.C.", CityFromLabel("Washington, D.C., US"))
	assert.Equal(t, "Nowhere", CityFromLabel("Nowhere"))
}

func TestMonthlyTempsFromSlice(t *testing.T) {
	m, err := MonthlyTempsFromSlice(nil)
	require.NoError(t, err)
	assert.Equal(t, MonthlyTemps{}, m)

	_, err = MonthlyTempsFromSlice(make([]*float64, 3))
	require.Error(t, err)

	src := monthly(1)
	m, err = MonthlyTempsFromSlice(src.Slice())
	require.NoError(t, err)
	assert.Equal(t, src, m)
}
