package catalog

import (
	"context"
	"fmt"

	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/pkg/store"
)

// Source загружает опубликованный каталог целиком.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

type SourceFunc func(ctx context.Context) (*Table, error)

func (f SourceFunc) Load(ctx context.Context) (*Table, error) {
	return f(ctx)
}

func CSVSource(path string) Source {
	return SourceFunc(func(context.Context) (*Table, error) {
		return ReadArtifact(path)
	})
}

func StoreSource(s store.Store) Source {
	return SourceFunc(func(ctx context.Context) (*Table, error) {
		build, err := s.GetCurrentBuild(ctx)
		if err != nil {
			return nil, fmt.Errorf("GetCurrentBuild: %w", err)
		}

		destinations, err := s.ListDestinations(ctx, store.ListDestinationsOpts{Version: build.Version})
		if err != nil {
			return nil, fmt.Errorf("ListDestinations: %w", err)
		}

		return NewTable(build.Version, destinations), nil
	})
}

// Reload загружает каталог из src и подменяет текущий, если версия изменилась.
// Возвращает true, если замена произошла.
func Reload(ctx context.Context, h *Holder, src Source) (bool, error) {
	t, err := src.Load(ctx)
	if err != nil {
		return false, err
	}

	if cur, err := h.Current(); err == nil && cur.Version() == t.Version() {
		return false, nil
	}

	prev := h.Swap(t)
	if prev != nil {
		logger.Infof(ctx, "catalog reloaded: %s -> %s (%d destinations)", prev.Version(), t.Version(), t.Len())
	} else {
		logger.Infof(ctx, "catalog loaded: %s (%d destinations)", t.Version(), t.Len())
	}

	return true, nil
}
