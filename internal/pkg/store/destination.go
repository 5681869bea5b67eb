package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/pkg/store/xpgx"
)

// insertBatchSize держит число параметров запроса ниже лимита postgres (65535).
const insertBatchSize = 500

type ListDestinationsOpts struct {
	// Version пустая - текущая опубликованная версия.
	Version string
	Region  *domain.Region
}

var (
	buildColumns = []string{
		"id", "version", "tables_version", "raw_airports", "qualified", "unique_iata",
		"resolved", "dropped_no_cost", "published", "started_at", "finished_at",
	}
	destinationColumns = []string{
		"version", "label", "iata", "search_term", "full_country", "iso_country", "region",
		"base_flight_cost", "daily_cost_budget", "daily_cost_luxury", "seasonality",
		"latitude", "longitude", "popularity_score", "temperatures", "safety", "activities", "weather",
	}
)

type destinationRow struct {
	Version         string   `db:"version"`
	Label           string   `db:"label"`
	IATA            string   `db:"iata"`
	SearchTerm      string   `db:"search_term"`
	FullCountry     string   `db:"full_country"`
	ISOCountry      string   `db:"iso_country"`
	Region          string   `db:"region"`
	BaseFlightCost  float64  `db:"base_flight_cost"`
	DailyCostBudget float64  `db:"daily_cost_budget"`
	DailyCostLuxury float64  `db:"daily_cost_luxury"`
	Seasonality     string   `db:"seasonality"`
	Latitude        float64  `db:"latitude"`
	Longitude       float64  `db:"longitude"`
	PopularityScore float64  `db:"popularity_score"`
	Temperatures    []byte   `db:"temperatures"`
	Safety          int32    `db:"safety"`
	Activities      []string `db:"activities"`
	Weather         string   `db:"weather"`
}

func (r *destinationRow) toDomain() (*domain.Destination, error) {
	var raw []*float64
	if err := sonic.Unmarshal(r.Temperatures, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal temperatures of %s: %w", r.Label, err)
	}
	temps, err := domain.MonthlyTempsFromSlice(raw)
	if err != nil {
		return nil, fmt.Errorf("temperatures of %s: %w", r.Label, err)
	}

	return &domain.Destination{
		Label:           r.Label,
		City:            domain.CityFromLabel(r.Label),
		IATA:            r.IATA,
		SearchTerm:      r.SearchTerm,
		FullCountry:     r.FullCountry,
		ISOCountry:      r.ISOCountry,
		Region:          domain.Region(r.Region),
		BaseFlightCost:  r.BaseFlightCost,
		DailyCostBudget: r.DailyCostBudget,
		DailyCostLuxury: r.DailyCostLuxury,
		Seasonality:     r.Seasonality,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		PopularityScore: r.PopularityScore,
		Temperatures:    temps,
		Traits: domain.Traits{
			Safety:     int(r.Safety),
			Activities: r.Activities,
			Weather:    domain.WeatherCategory(r.Weather),
		},
	}, nil
}

// PublishCatalog пишет сборку и ее направления в одной транзакции и делает ее текущей.
// Пока транзакция не закоммичена, читатели видят предыдущую версию.
func (s *store) PublishCatalog(ctx context.Context, report *domain.BuildReport, destinations []*domain.Destination) error {
	return s.pool.InTx(ctx, func(tx xpgx.Querier) error {
		if err := insertBuild(ctx, tx, report); err != nil {
			logger.Errorf(ctx, "insertBuild: %s", err.Error())
			return fmt.Errorf("insertBuild: %w", err)
		}

		if _, err := xpgx.Execx(ctx, tx, builder().Delete(tableDestinations).
			Where(sq.Eq{"version": report.Version})); err != nil {
			return fmt.Errorf("delete destinations, version-%s: %w", report.Version, err)
		}

		for start := 0; start < len(destinations); start += insertBatchSize {
			end := min(start+insertBatchSize, len(destinations))
			if err := insertDestinations(ctx, tx, report.Version, destinations[start:end]); err != nil {
				logger.Errorf(ctx, "insertDestinations: %s", err.Error())
				return fmt.Errorf("insertDestinations, version-%s: %w", report.Version, err)
			}
		}

		if _, err := xpgx.Execx(ctx, tx, builder().Update(tableCatalogBuilds).
			Set("is_current", false).
			Where(sq.And{sq.Eq{"is_current": true}, sq.NotEq{"version": report.Version}})); err != nil {
			return fmt.Errorf("reset current build: %w", err)
		}

		if _, err := xpgx.Execx(ctx, tx, builder().Update(tableCatalogBuilds).
			Set("is_current", true).
			Where(sq.Eq{"version": report.Version})); err != nil {
			return fmt.Errorf("set current build: %w", err)
		}

		if _, err := xpgx.Execx(ctx, tx, builder().Delete(tableDestinations).
			Where(sq.NotEq{"version": report.Version})); err != nil {
			return fmt.Errorf("delete stale destinations: %w", err)
		}

		return nil
	})
}

func insertBuild(ctx context.Context, q xpgx.Querier, r *domain.BuildReport) error {
	query := builder().Insert(tableCatalogBuilds).
		Columns(buildColumns...).
		Values(r.RunID, r.Version, r.TablesVersion, r.RawAirports, r.Qualified, r.UniqueIATA,
			r.Resolved, r.DroppedNoCost, r.Published, r.StartedAt, r.FinishedAt).
		Suffix(`
on conflict (version)
do update
set
	id = excluded.id,
	raw_airports = excluded.raw_airports,
	qualified = excluded.qualified,
	unique_iata = excluded.unique_iata,
	resolved = excluded.resolved,
	dropped_no_cost = excluded.dropped_no_cost,
	published = excluded.published,
	started_at = excluded.started_at,
	finished_at = excluded.finished_at`)

	_, err := xpgx.Execx(ctx, q, query)
	return err
}

func insertDestinations(ctx context.Context, q xpgx.Querier, version string, destinations []*domain.Destination) error {
	if len(destinations) == 0 {
		return nil
	}

	query := builder().Insert(tableDestinations).Columns(destinationColumns...)
	for _, d := range destinations {
		temps, err := sonic.Marshal(d.Temperatures.Slice())
		if err != nil {
			return fmt.Errorf("failed to marshal temperatures: %w", err)
		}
		activities := d.Traits.Activities
		if activities == nil {
			activities = []string{}
		}

		query = query.Values(
			version, d.Label, d.IATA, d.SearchTerm, d.FullCountry, d.ISOCountry, string(d.Region),
			d.BaseFlightCost, d.DailyCostBudget, d.DailyCostLuxury, d.Seasonality,
			d.Latitude, d.Longitude, d.PopularityScore, string(temps), d.Traits.Safety, activities,
			string(d.Traits.Weather),
		)
	}

	_, err := xpgx.Execx(ctx, q, query)
	return err
}

func (s *store) GetCurrentBuild(ctx context.Context) (*domain.BuildReport, error) {
	query := builder().Select(buildColumns...).
		From(tableCatalogBuilds).
		Where(sq.Eq{"is_current": true})

	var selected domain.BuildReport
	err := s.pool.Getx(ctx, &selected, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListDestinations(ctx context.Context, opts ListDestinationsOpts) ([]*domain.Destination, error) {
	version := opts.Version
	if version == "" {
		build, err := s.GetCurrentBuild(ctx)
		if err != nil {
			return nil, fmt.Errorf("GetCurrentBuild: %w", err)
		}
		version = build.Version
	}

	query := builder().Select(destinationColumns...).
		From(tableDestinations).
		Where(sq.Eq{"version": version}).
		OrderBy("label")

	if opts.Region != nil {
		query = query.Where(sq.Eq{"region": string(*opts.Region)})
	}

	var rows []destinationRow
	err := s.pool.Selectx(ctx, &rows, query)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, wrapErr(err)
	}

	destinations := make([]*domain.Destination, 0, len(rows))
	for i := range rows {
		d, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}

	return destinations, nil
}
