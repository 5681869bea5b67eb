package loader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	AirportsSource    string
	CountryCostSource string
	CityCostSource    string
	TemperatureSource string

	MaxRetries    uint64
	RetryInterval time.Duration
	HTTPTimeout   time.Duration
}

type Loader struct {
	cfg    Config
	client httpDoer
}

func New(cfg Config) *Loader {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = time.Minute
	}
	return &Loader{cfg: cfg, client: newHTTPClient(cfg.HTTPTimeout)}
}

// LoadAll читает все четыре источника параллельно. Ошибка любого - ошибка всей загрузки.
func (l *Loader) LoadAll(ctx context.Context) (*domain.SourceSet, error) {
	sources := []string{l.cfg.AirportsSource, l.cfg.CountryCostSource, l.cfg.CityCostSource, l.cfg.TemperatureSource}
	for _, s := range sources {
		if s == "" {
			return nil, constants.ErrMissingSource
		}
	}

	raw := make([][]byte, len(sources))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		eg.Go(func() error {
			data, err := l.read(egCtx, src)
			if err != nil {
				return fmt.Errorf("read %s: %w", src, err)
			}
			raw[i] = data
			logger.Infof(ctx, "loaded %s (%d bytes)", src, len(data))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	set := &domain.SourceSet{Version: Fingerprint(raw...)}

	var err error
	if set.Airports, err = ParseAirports(bytes.NewReader(raw[0])); err != nil {
		return nil, fmt.Errorf("ParseAirports: %w", err)
	}

	if isHTML(l.cfg.CountryCostSource) {
		set.CountryCosts, err = ParseCountryCostsHTML(bytes.NewReader(raw[1]))
	} else {
		set.CountryCosts, err = ParseCountryCosts(bytes.NewReader(raw[1]))
	}
	if err != nil {
		return nil, fmt.Errorf("parse country costs: %w", err)
	}

	if set.CityCosts, err = ParseCityCosts(bytes.NewReader(raw[2])); err != nil {
		return nil, fmt.Errorf("ParseCityCosts: %w", err)
	}

	if set.Temperatures, err = ParseTemperatures(bytes.NewReader(raw[3])); err != nil {
		return nil, fmt.Errorf("ParseTemperatures: %w", err)
	}

	logger.Infof(ctx, "sources parsed: %d airports, %d country costs, %d city costs, %d temperature rows",
		len(set.Airports), len(set.CountryCosts), len(set.CityCosts), len(set.Temperatures))

	return set, nil
}

// Fingerprint - sha256 по содержимому источников.
func Fingerprint(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = fmt.Fprintf(h, "%d:", len(p))
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func isHTML(source string) bool {
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".html" || ext == ".htm"
}
