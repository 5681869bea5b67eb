package reference

import (
	"strings"

	"github.com/ougirez/wanderwise/internal/domain"
)

// Version меняется при любом изменении таблиц ниже, чтобы каталог пересобрался.
const Version = "2024.10-1"

// IATAFix - исправление известной ошибки разметки IATA-кода.
type IATAFix struct {
	Code         string
	Country      string
	CityFragment string
	Replacement  string
	// HomeCountry - единственная страна, где код остается валидным
	HomeCountry string
}

type Tables struct {
	version string

	isoToRegion        map[string]domain.Region
	regionFlightCosts  map[domain.Region]float64
	defaultFlightCost  float64
	seasonality        map[domain.Region]string
	defaultSeasonality string

	countryFame map[string]float64
	defaultFame float64
	tier1       map[string]struct{}
	tier2       map[string]struct{}
	gateways    map[string]struct{}
	megaHubs    map[string]struct{}

	nameToISO map[string]string
	isoToName map[string]string
	iataFixes []IATAFix

	transport transportTable
	tiers     StyleTiers
}

func (t *Tables) Version() string {
	return t.version
}

func (t *Tables) Region(iso string) domain.Region {
	if r, ok := t.isoToRegion[iso]; ok {
		return r
	}
	return domain.RegionOther
}

func (t *Tables) FlightCost(region domain.Region) float64 {
	if c, ok := t.regionFlightCosts[region]; ok {
		return c
	}
	return t.defaultFlightCost
}

func (t *Tables) Seasonality(region domain.Region) string {
	if s, ok := t.seasonality[region]; ok {
		return s
	}
	return t.defaultSeasonality
}

// Fame - известность страны по полному названию.
func (t *Tables) Fame(country string) float64 {
	if f, ok := t.countryFame[country]; ok {
		return f
	}
	return t.defaultFame
}

func (t *Tables) IsTier1Anchor(city string) bool {
	_, ok := t.tier1[city]
	return ok
}

func (t *Tables) IsTier2Anchor(city string) bool {
	_, ok := t.tier2[city]
	return ok
}

func (t *Tables) IsGlobalGateway(iata string) bool {
	_, ok := t.gateways[iata]
	return ok
}

func (t *Tables) IsMegaHub(iata string) bool {
	_, ok := t.megaHubs[iata]
	return ok
}

// OverrideISO - ISO-код из таблицы ручных исправлений названий стран.
func (t *Tables) OverrideISO(countryName string) (string, bool) {
	iso, ok := t.nameToISO[countryName]
	return iso, ok
}

// OverrideName - предпочтительное название страны для ISO-кода.
func (t *Tables) OverrideName(iso string) (string, bool) {
	name, ok := t.isoToName[iso]
	return name, ok
}

func (t *Tables) IATAFixes() []IATAFix {
	out := make([]IATAFix, len(t.iataFixes))
	copy(out, t.iataFixes)
	return out
}

// TransportRate - оценка местного транспорта на человека в день.
func (t *Tables) TransportRate(city string) float64 {
	return t.transport.rate(city)
}

func (t *Tables) Tiers() *StyleTiers {
	return &t.tiers
}

type transportTable struct {
	megaRate, sprawlRate, remoteRate, defaultRate float64
	mega, sprawl, remote                          []string
}

func (tt transportTable) rate(city string) float64 {
	c := strings.ToLower(city)
	switch {
	case containsAny(c, tt.mega):
		return tt.megaRate
	case containsAny(c, tt.sprawl):
		return tt.sprawlRate
	case containsAny(c, tt.remote):
		return tt.remoteRate
	default:
		return tt.defaultRate
	}
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

func regions(r domain.Region, isos ...string) map[string]domain.Region {
	m := make(map[string]domain.Region, len(isos))
	for _, iso := range isos {
		m[iso] = r
	}
	return m
}

// Default собирает стандартный набор таблиц. Каждый вызов возвращает новую копию.
func Default() *Tables {
	isoToRegion := make(map[string]domain.Region, 128)
	for _, m := range []map[string]domain.Region{
		regions(domain.RegionEurope,
			"CH", "IS", "NO", "DK", "AT", "IE", "FR", "FI", "NL", "LU",
			"DE", "GB", "BE", "SE", "IT", "CY", "MT", "GR", "EE", "SI",
			"LV", "ES", "LT", "SK", "CZ", "HR", "PT", "AL", "HU", "PL",
			"ME", "BG", "RS", "RO", "BA", "MK", "MD", "RU", "BY", "UA"),
		regions(domain.RegionAsia,
			"SG", "HK", "KR", "AE", "BH", "QA", "JP", "SA", "TW", "OM",
			"KW", "LB", "PS", "JO", "AM", "TR", "KH", "TH", "GE", "KZ",
			"CN", "AZ", "PH", "MY", "IQ", "VN", "KG", "ID", "IR", "UZ",
			"SY", "BD", "IN", "PK", "IL", "LK", "NP"),
		regions(domain.RegionSouthAmerica,
			"UY", "CL", "VE", "EC", "BR", "PE", "AR", "CO", "BO", "PY"),
		regions(domain.RegionOceania, "AU", "NZ", "FJ"),
		regions(domain.RegionAfrica,
			"MU", "ZA", "NG", "GH", "KE", "BW", "MA", "UG", "DZ", "TN",
			"MG", "TZ", "EG", "LY", "CM", "ZW"),
		regions(domain.RegionNorthAmerica,
			"BS", "BB", "US", "CA", "PR", "JM", "TT", "CR", "CU", "PA",
			"SV", "GT", "DO", "MX"),
	} {
		for iso, r := range m {
			isoToRegion[iso] = r
		}
	}

	return &Tables{
		version:     Version,
		isoToRegion: isoToRegion,
		regionFlightCosts: map[domain.Region]float64{
			domain.RegionEurope:       850,
			domain.RegionAsia:         1200,
			domain.RegionSouthAmerica: 700,
			domain.RegionAfrica:       1100,
			domain.RegionOceania:      1600,
			domain.RegionNorthAmerica: 400,
		},
		defaultFlightCost: 800,
		seasonality: map[domain.Region]string{
			domain.RegionEurope:  "Summer Peak (Jun-Aug)",
			domain.RegionAsia:    "Varies (Nov-Mar ideal)",
			domain.RegionOceania: "Winter Peak (Dec-Feb)",
		},
		defaultSeasonality: "Year-round",

		countryFame: map[string]float64{
			"France": 100, "Spain": 98, "United States": 95, "Italy": 92, "Turkey": 88,
			"Mexico": 85, "United Kingdom": 82, "Germany": 80, "Greece": 78, "Austria": 75,
			"Japan": 74, "Thailand": 72, "United Arab Emirates": 70, "Saudi Arabia": 68,
			"Netherlands": 65, "China": 64, "Poland": 62, "Croatia": 60, "Portugal": 58,
			"Canada": 56, "Singapore": 54, "Vietnam": 52, "Indonesia": 50, "Switzerland": 48,
			"South Korea": 46, "Egypt": 44, "India": 42, "Australia": 40, "Brazil": 38,
			"Argentina": 36, "Iceland": 35, "Ireland": 34, "New Zealand": 32, "Norway": 30,
		},
		defaultFame: 10,
		tier1: set(
			"London", "Paris", "New York", "Tokyo", "Dubai", "Singapore", "Amsterdam", "Madrid",
			"Rome", "Bangkok", "Istanbul", "Seoul", "Sydney", "Barcelona", "Mexico City",
			"Hong Kong", "Las Vegas", "Orlando", "Miami", "Los Angeles", "Chicago", "San Francisco",
			"Venice", "Florence", "Lisbon", "Berlin", "Zurich", "Geneva", "Cancun", "Bali", "Phuket",
		),
		tier2: set(
			"Vancouver", "Toronto", "Washington", "Seattle", "Boston", "Philadelphia", "Atlanta", "Dallas",
			"Houston", "Phoenix", "San Diego", "Denver", "Nashville", "New Orleans", "Austin",
			"Montreal", "Dublin", "Edinburgh", "Brussels", "Frankfurt", "Munich", "Milan", "Nice",
			"Athens", "Warsaw", "Tel Aviv", "Abu Dhabi", "Doha", "Riyadh", "Beijing", "Shanghai",
			"Kyoto", "Osaka", "Auckland", "Melbourne",
		),
		gateways: set("LHR", "CDG", "JFK", "HND", "DXB", "SIN", "HKG", "IST", "AMS", "FRA", "PEK", "ICN"),
		megaHubs: set("CDG", "LHR", "HND", "JFK"),

		nameToISO: map[string]string{
			"United States":               "US",
			"United Kingdom":              "GB",
			"South Korea":                 "KR",
			"Hong Kong (China)":           "HK",
			"Palestine":                   "PS",
			"Kosovo":                      "XK",
			"Kosovo (Disputed Territory)": "XK",
			"Bosnia And Herzegovina":      "BA",
			"Trinidad And Tobago":         "TT",
			"Vietnam":                     "VN",
			"Russia":                      "RU",
			"Czech Republic":              "CZ",
			"Taiwan":                      "TW",
			"Iran":                        "IR",
			"Syria":                       "SY",
			"Moldova":                     "MD",
			"North Macedonia":             "MK",
			"Venezuela":                   "VE",
			"Bolivia":                     "BO",
			"Tanzania":                    "TZ",
		},
		isoToName: map[string]string{
			"US": "United States",
			"GB": "United Kingdom",
			"KR": "South Korea",
			"HK": "Hong Kong (China)",
			"PS": "Palestine",
			"XK": "Kosovo",
			"BA": "Bosnia And Herzegovina",
			"TT": "Trinidad And Tobago",
			"VN": "Vietnam",
			"RU": "Russia",
			"CZ": "Czech Republic",
			"TW": "Taiwan",
			"IR": "Iran",
			"SY": "Syria",
			"MD": "Moldova",
			"MK": "North Macedonia",
			"VE": "Venezuela",
			"BO": "Bolivia",
			"TZ": "Tanzania",
			"AE": "United Arab Emirates",
		},
		iataFixes: []IATAFix{
			{Code: "LGB", Country: "FR", CityFragment: "paris", Replacement: "CDG", HomeCountry: "US"},
		},

		transport: transportTable{
			megaRate:    10,
			sprawlRate:  50,
			remoteRate:  80,
			defaultRate: 30,
			mega: []string{
				"tokyo", "london", "paris", "new york", "seoul", "singapore", "hong kong",
				"berlin", "madrid", "barcelona", "amsterdam", "shanghai", "beijing", "taipei",
			},
			sprawl: []string{
				"los angeles", "houston", "dallas", "phoenix", "atlanta", "orlando",
				"las vegas", "miami", "denver", "san diego", "nashville", "austin",
			},
			remote: []string{
				"reykjavik", "queenstown", "anchorage", "bali", "denpasar", "fiji", "nadi",
				"ushuaia", "tromso", "tromsø", "cusco", "kathmandu", "mauritius",
			},
		},
		tiers: defaultTiers(),
	}
}
