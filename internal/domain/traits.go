package domain

import (
	"hash/fnv"
	"sort"
)

type WeatherCategory string

const (
	WeatherTropical WeatherCategory = "Tropical"
	WeatherWarm     WeatherCategory = "Warm"
	WeatherMild     WeatherCategory = "Mild"
	WeatherCold     WeatherCategory = "Cold"
	WeatherUnknown  WeatherCategory = "Unknown"
)

var ActivityTags = []string{"Beach", "Culture", "Nightlife", "Nature", "Food", "Adventure", "Shopping", "History"}

// Traits - производные атрибуты направления для фильтров поиска.
type Traits struct {
	Safety     int             `json:"safety"`
	Activities []string        `json:"activities"`
	Weather    WeatherCategory `json:"weather"`
}

// HasAnyActivity - true, если множества тегов пересекаются.
func (t Traits) HasAnyActivity(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Activities {
			if want == have {
				return true
			}
		}
	}
	return false
}

// DeriveTraits детерминированно выводит атрибуты из метки и температур.
// Safety и теги - функция FNV-хеша метки, погода - по средней температуре.
func DeriveTraits(label string, temps MonthlyTemps) Traits {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	sum := h.Sum64()

	safety := 5 + int(sum%6)

	activities := make([]string, 0, 3)
	for i, tag := range ActivityTags {
		if sum>>(8+i*5)&0x3 == 0 {
			activities = append(activities, tag)
		}
	}
	if len(activities) == 0 {
		activities = append(activities, ActivityTags[int(sum>>48)%len(ActivityTags)])
	}
	sort.Strings(activities)

	return Traits{
		Safety:     safety,
		Activities: activities,
		Weather:    WeatherFor(temps),
	}
}

func WeatherFor(temps MonthlyTemps) WeatherCategory {
	mean, ok := temps.Mean()
	switch {
	case !ok:
		return WeatherUnknown
	case mean >= 24:
		return WeatherTropical
	case mean >= 17:
		return WeatherWarm
	case mean >= 10:
		return WeatherMild
	default:
		return WeatherCold
	}
}
