package store

import (
	"context"
	"fmt"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	Migrate(ctx context.Context) error
	PublishCatalog(ctx context.Context, report *domain.BuildReport, destinations []*domain.Destination) error
	GetCurrentBuild(ctx context.Context) (*domain.BuildReport, error)
	ListDestinations(ctx context.Context, opts ListDestinationsOpts) ([]*domain.Destination, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

var migrations = []string{
	`create table if not exists catalog_builds (
		id              uuid primary key,
		version         text not null unique,
		tables_version  text not null,
		raw_airports    integer not null,
		qualified       integer not null,
		unique_iata     integer not null,
		resolved        integer not null,
		dropped_no_cost integer not null,
		published       integer not null,
		started_at      timestamptz not null,
		finished_at     timestamptz not null,
		is_current      boolean not null default false
	)`,
	`create table if not exists destinations (
		version           text not null,
		label             text not null,
		iata              text not null,
		search_term       text not null,
		full_country      text not null,
		iso_country       text not null,
		region            text not null,
		base_flight_cost  double precision not null,
		daily_cost_budget double precision not null,
		daily_cost_luxury double precision not null,
		seasonality       text not null,
		latitude          double precision not null,
		longitude         double precision not null,
		popularity_score  double precision not null,
		temperatures      jsonb not null,
		safety            integer not null,
		activities        text[] not null,
		weather           text not null,
		primary key (version, label)
	)`,
	`create index if not exists idx_destinations_version_region on destinations (version, region)`,
	`create unique index if not exists idx_catalog_builds_current on catalog_builds (is_current) where is_current`,
}

func (s *store) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
