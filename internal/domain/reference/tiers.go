package reference

import "sort"

// Tier - именованный множитель стиля поездки.
type Tier struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

type StyleTiers struct {
	FlightClasses  []Tier `json:"flight_classes"`
	Accommodations []Tier `json:"accommodations"`
	Activities     []Tier `json:"activities"`
}

const (
	DefaultFlightClass   = "economy"
	DefaultAccommodation = "standard"
	DefaultActivity      = "moderate"
)

func defaultTiers() StyleTiers {
	return StyleTiers{
		FlightClasses: []Tier{
			{Name: "economy", Multiplier: 1.0},
			{Name: "premium_economy", Multiplier: 1.5},
			{Name: "business", Multiplier: 3.0},
			{Name: "first", Multiplier: 5.0},
		},
		Accommodations: []Tier{
			{Name: "hostel", Multiplier: 0.5},
			{Name: "standard", Multiplier: 1.0},
			{Name: "boutique", Multiplier: 1.8},
			{Name: "luxury", Multiplier: 3.0},
		},
		Activities: []Tier{
			{Name: "relaxed", Multiplier: 0.8},
			{Name: "moderate", Multiplier: 1.0},
			{Name: "active", Multiplier: 1.3},
			{Name: "adventure", Multiplier: 1.6},
		},
	}
}

func lookup(tiers []Tier, name, fallback string) (float64, bool) {
	if name == "" {
		name = fallback
	}
	for _, t := range tiers {
		if t.Name == name {
			return t.Multiplier, true
		}
	}
	return 0, false
}

// FlightClass возвращает множитель класса перелета; пустое имя - economy.
func (s *StyleTiers) FlightClass(name string) (float64, bool) {
	return lookup(s.FlightClasses, name, DefaultFlightClass)
}

func (s *StyleTiers) Accommodation(name string) (float64, bool) {
	return lookup(s.Accommodations, name, DefaultAccommodation)
}

func (s *StyleTiers) Activity(name string) (float64, bool) {
	return lookup(s.Activities, name, DefaultActivity)
}

// Copy - копия для отдачи наружу, отсортированная по множителю.
func (s *StyleTiers) Copy() StyleTiers {
	cp := func(in []Tier) []Tier {
		out := make([]Tier, len(in))
		copy(out, in)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Multiplier < out[j].Multiplier })
		return out
	}
	return StyleTiers{
		FlightClasses:  cp(s.FlightClasses),
		Accommodations: cp(s.Accommodations),
		Activities:     cp(s.Activities),
	}
}
