package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
)

type Pipeline struct {
	tables    *reference.Tables
	countries CountryDirectory
}

func New(tables *reference.Tables, countries CountryDirectory) *Pipeline {
	return &Pipeline{tables: tables, countries: countries}
}

type Result struct {
	Destinations []*domain.Destination
	Report       *domain.BuildReport
}

// CatalogVersion - ключ собранной таблицы: версия источников плюс версия справочников.
func CatalogVersion(sourcesVersion, tablesVersion string) string {
	sum := sha256.Sum256([]byte(sourcesVersion + "|" + tablesVersion))
	return hex.EncodeToString(sum[:8])
}

// Build выполняет всю сборку в памяти, последовательно. Ничего не публикует.
func (p *Pipeline) Build(ctx context.Context, src *domain.SourceSet) (*Result, error) {
	report := &domain.BuildReport{
		RunID:         uuid.New(),
		Version:       CatalogVersion(src.Version, p.tables.Version()),
		TablesVersion: p.tables.Version(),
		RawAirports:   len(src.Airports),
		StartedAt:     time.Now().UTC(),
	}
	ctx = logger.WithFields(ctx, "run_id", report.RunID.String())

	if len(src.Airports) == 0 {
		return nil, fmt.Errorf("no airports in source")
	}
	if len(src.CountryCosts) == 0 {
		return nil, fmt.Errorf("no country cost-of-living records in source")
	}

	resolved, stats := p.resolveAirports(src.Airports)
	report.Qualified = stats.qualified
	report.UniqueIATA = stats.uniqueIATA
	report.Resolved = len(resolved)
	logger.Infof(ctx, "airports: %d raw, %d qualified, %d unique IATA, %d destinations",
		report.RawAirports, report.Qualified, report.UniqueIATA, report.Resolved)

	joinedDests, basis, dropped := p.join(ctx, resolved, src)
	report.DroppedNoCost = dropped
	if dropped > 0 {
		logger.Warnf(ctx, "%d destinations dropped without cost basis", dropped)
	}

	destinations := make([]*domain.Destination, 0, len(joinedDests))
	for _, j := range joinedDests {
		destinations = append(destinations, p.buildDestination(j, basis.global))
	}

	report.Published = len(destinations)
	report.FinishedAt = time.Now().UTC()
	logger.Infof(ctx, "generated %d unique destinations, version %s", report.Published, report.Version)

	return &Result{Destinations: destinations, Report: report}, nil
}
