package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const airportsCSV = `"id","ident","type","name","latitude_deg","longitude_deg","elevation_ft","continent","iso_country","iso_region","municipality","scheduled_service","gps_code","iata_code"
1,"LFPG","large_airport","Charles de Gaulle International Airport",49.012798,2.55,392,"EU","fr","FR-IDF","Paris","yes","LFPG","CDG"
2,"KLGB","medium_airport","Long Beach Airport",33.8177,-118.152,60,"NA","US","US-CA","Long Beach","yes","KLGB","LGB"
3,"00A","heliport","Total Rf Heliport",,,11,"NA","US","US-PA","Bensalem","no","00A",""
`

const countryCostsCSV = "\ufeffRank,Country,Cost of Living Index,Rent Index,Cost of Living Plus Rent Index,Groceries Index,Restaurant Price Index\n" +
	"1,Switzerland,101.1,46.5,74.9,109.1,97.0\n" +
	"2,France,74.1,,55.0,80.0,70.0\n" +
	",,,,,,\n"

const cityCostsCSV = `Rank,City,Cost of Living Index,Rent Index,Cost of Living Plus Rent Index,Groceries Index,Restaurant Price Index,Local Purchasing Power Index
1,"Hamilton, Bermuda",149.02,96.10,124.22,157.89,155.22,79.43
2,"New York, NY, United States",100.00,100.00,100.00,100.00,100.00,100.00
3,"",1,1,1,1,1,1
`

const temperaturesCSV = "City,Country,Jan,Feb,Mar,Apr,May,Jun,Jul,Aug,Sep,Oct,Nov,Dec,Year\n" +
	"Paris,France,5.0 (41.0),5.6,8.8,11.8,15.4,18.6,20.8,20.5,16.8,12.8,8.3,5.5,12.5\n" +
	"Yakutsk,Russia,−38.6 (−37.5),−33.8,−20.1,−4.8,7.5,16.4,19.5,15.2,6.1,−7.8,−27.0,−37.6,−8.8\n" +
	"Nowhere,,1,2,3,4,5,6,7,8,9,10,11,12,6\n"

func TestParseAirports(t *testing.T) {
	airports, err := ParseAirports(strings.NewReader(airportsCSV))
	require.NoError(t, err)
	require.Len(t, airports, 3)

	cdg := airports[0]
	assert.Equal(t, "LFPG", cdg.ID)
	assert.Equal(t, "FR", cdg.ISOCountry)
	assert.Equal(t, domain.AirportTypeLarge, cdg.Type)
	assert.Equal(t, "CDG", cdg.IATACode)
	assert.True(t, cdg.ScheduledService)
	assert.InDelta(t, 49.012798, cdg.Latitude, 1e-9)

	heli := airports[2]
	assert.False(t, heli.ScheduledService)
	assert.Empty(t, heli.IATACode)
	assert.Zero(t, heli.Latitude)
}

func TestParseAirports_MissingColumns(t *testing.T) {
	_, err := ParseAirports(strings.NewReader("type,name\nlarge_airport,X\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iata_code")
}

func TestParseCountryCosts(t *testing.T) {
	records, err := ParseCountryCosts(strings.NewReader(countryCostsCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Switzerland", records[0].Country)
	require.NotNil(t, records[0].CostOfLiving)
	assert.Equal(t, 101.1, *records[0].CostOfLiving)

	assert.Equal(t, "France", records[1].Country)
	assert.Nil(t, records[1].Rent)
	require.NotNil(t, records[1].RestaurantPrice)
	assert.Equal(t, 70.0, *records[1].RestaurantPrice)
}

func TestParseCityCosts(t *testing.T) {
	records, err := ParseCityCosts(strings.NewReader(cityCostsCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Hamilton", records[0].City)
	assert.Equal(t, "Bermuda", records[0].Country)
	assert.Equal(t, "New York", records[1].City)
	assert.Equal(t, "United States", records[1].Country)
}

func TestSplitCityField(t *testing.T) {
	tests := []struct {
		field   string
		city    string
		country string
		ok      bool
	}{
		{field: "Paris, France", city: "Paris", country: "France", ok: true},
		{field: "Austin, TX, United States", city: "Austin", country: "United States", ok: true},
		{field: "  Oslo ,Norway ", city: "Oslo", country: "Norway", ok: true},
		{field: "Singapore", city: "Singapore", country: "Singapore", ok: true},
		{field: "", ok: false},
		{field: "Lima, ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			city, country, ok := SplitCityField(tt.field)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.country, country)
		})
	}
}

func TestParseTemperature(t *testing.T) {
	tests := []struct {
		cell string
		want *float64
	}{
		{cell: "12.5 (54.5)", want: ptr(12.5)},
		{cell: "−3.1 (26.4)", want: ptr(-3.1)},
		{cell: "-5", want: ptr(-5)},
		{cell: ".5", want: ptr(0.5)},
		{cell: "28", want: ptr(28)},
		{cell: "", want: nil},
		{cell: "n/a", want: nil},
		{cell: "—", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got := ParseTemperature(tt.cell)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseTemperatures(t *testing.T) {
	records, err := ParseTemperatures(strings.NewReader(temperaturesCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	paris := records[0]
	assert.Equal(t, "Paris", paris.City)
	require.NotNil(t, paris.Temps[0])
	assert.Equal(t, 5.0, *paris.Temps[0])

	yakutsk := records[1]
	require.NotNil(t, yakutsk.Temps[0])
	assert.Equal(t, -38.6, *yakutsk.Temps[0])
	require.NotNil(t, yakutsk.Temps[6])
	assert.Equal(t, 19.5, *yakutsk.Temps[6])
}

func TestParseCountryCostsHTML(t *testing.T) {
	page := `<html><body>
<table><tr><th>Something</th></tr><tr><td>else</td></tr></table>
<table id="t2">
  <thead><tr><th>Rank</th><th>Country</th><th>Cost of Living Index</th><th>Rent Index</th><th>Restaurant Price Index</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>Switzerland</td><td>101.1</td><td>46.5</td><td>97.0</td></tr>
    <tr><td>2</td><td> Iceland </td><td>83.0</td><td>n/a</td><td>84.5</td></tr>
  </tbody>
</table>
</body></html>`

	records, err := ParseCountryCostsHTML(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Switzerland", records[0].Country)
	require.NotNil(t, records[0].Rent)
	assert.Equal(t, 46.5, *records[0].Rent)

	assert.Equal(t, "Iceland", records[1].Country)
	assert.Nil(t, records[1].Rent)
}

func TestParseCountryCostsHTML_NoTable(t *testing.T) {
	_, err := ParseCountryCostsHTML(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	require.Error(t, err)
}

func writeSources(t *testing.T) (dir string, cfg Config) {
	t.Helper()

	dir = t.TempDir()
	files := map[string]string{
		"airports.csv":     airportsCSV,
		"countries.csv":    countryCostsCSV,
		"cities.csv":       cityCostsCSV,
		"temperatures.csv": temperaturesCSV,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir, Config{
		AirportsSource:    filepath.Join(dir, "airports.csv"),
		CountryCostSource: filepath.Join(dir, "countries.csv"),
		CityCostSource:    filepath.Join(dir, "cities.csv"),
		TemperatureSource: filepath.Join(dir, "temperatures.csv"),
		RetryInterval:     time.Millisecond,
		MaxRetries:        3,
	}
}

func TestLoader_LoadAll(t *testing.T) {
	_, cfg := writeSources(t)

	set, err := New(cfg).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, set.Airports, 3)
	assert.Len(t, set.CountryCosts, 2)
	assert.Len(t, set.CityCosts, 2)
	assert.Len(t, set.Temperatures, 2)
	assert.NotEmpty(t, set.Version)

	again, err := New(cfg).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, set.Version, again.Version, "same sources must give the same version")
}

func TestLoader_LoadAll_VersionFollowsContent(t *testing.T) {
	dir, cfg := writeSources(t)

	before, err := New(cfg).LoadAll(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "countries.csv"),
		[]byte(countryCostsCSV+"3,Norway,76.0,30.0,54.0,80.0,80.0\n"), 0o644))

	after, err := New(cfg).LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, before.Version, after.Version)
}

func TestLoader_LoadAll_MissingSource(t *testing.T) {
	_, cfg := writeSources(t)
	cfg.TemperatureSource = ""

	_, err := New(cfg).LoadAll(context.Background())
	assert.ErrorIs(t, err, constants.ErrMissingSource)
}

func TestLoader_LoadAll_MissingFile(t *testing.T) {
	_, cfg := writeSources(t)
	cfg.CityCostSource = filepath.Join(t.TempDir(), "absent.csv")

	_, err := New(cfg).LoadAll(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadAll_HTMLCountrySource(t *testing.T) {
	dir, cfg := writeSources(t)
	page := `<table><tr><th>Country</th><th>Cost of Living Index</th><th>Rent Index</th><th>Restaurant Price Index</th></tr>
<tr><td>Japan</td><td>52.0</td><td>15.3</td><td>30.1</td></tr></table>`
	cfg.CountryCostSource = filepath.Join(dir, "countries.html")
	require.NoError(t, os.WriteFile(cfg.CountryCostSource, []byte(page), 0o644))

	set, err := New(cfg).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, set.CountryCosts, 1)
	assert.Equal(t, "Japan", set.CountryCosts[0].Country)
}

func TestLoader_FetchRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(airportsCSV))
	}))
	defer srv.Close()

	_, cfg := writeSources(t)
	cfg.AirportsSource = srv.URL + "/airports.csv"

	set, err := New(cfg).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, set.Airports, 3)
	assert.EqualValues(t, 3, calls.Load())
}

func TestLoader_FetchNotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, cfg := writeSources(t)
	cfg.AirportsSource = srv.URL

	_, err := New(cfg).LoadAll(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestLoader_FetchGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, cfg := writeSources(t)
	cfg.AirportsSource = srv.URL
	cfg.MaxRetries = 2

	_, err := New(cfg).LoadAll(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func ptr(v float64) *float64 {
	return &v
}
