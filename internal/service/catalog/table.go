package catalog

import (
	"strings"
	"sync/atomic"

	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
)

// Table - неизменяемый снимок таблицы направлений с индексами для поиска.
type Table struct {
	version      string
	destinations []*domain.Destination
	byLabel      map[string]*domain.Destination
	byIATA       map[string]*domain.Destination
	byName       map[string]*domain.Destination
}

func NewTable(version string, destinations []*domain.Destination) *Table {
	t := &Table{
		version:      version,
		destinations: destinations,
		byLabel:      make(map[string]*domain.Destination, len(destinations)),
		byIATA:       make(map[string]*domain.Destination, len(destinations)),
		byName:       make(map[string]*domain.Destination, len(destinations)*2),
	}

	for _, d := range destinations {
		t.byLabel[strings.ToLower(d.Label)] = d
		if d.IATA != "" {
			t.byIATA[strings.ToUpper(d.IATA)] = d
		}
		if _, ok := t.byName[strings.ToLower(d.SearchTerm)]; !ok {
			t.byName[strings.ToLower(d.SearchTerm)] = d
		}
		// по имени города без страны - самое популярное из одноименных
		city := strings.ToLower(d.City)
		if cur, ok := t.byName[city]; !ok || d.PopularityScore > cur.PopularityScore {
			t.byName[city] = d
		}
	}

	return t
}

func (t *Table) Version() string {
	return t.version
}

func (t *Table) Len() int {
	return len(t.destinations)
}

// All - направления в порядке публикации. Срез не копируется, менять его нельзя.
func (t *Table) All() []*domain.Destination {
	return t.destinations
}

// Lookup ищет по метке ("Paris, FR"), IATA-коду, поисковому термину или городу.
func (t *Table) Lookup(ref string) (*domain.Destination, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, constants.ErrDestinationNotFound
	}

	if d, ok := t.byLabel[strings.ToLower(ref)]; ok {
		return d, nil
	}
	if d, ok := t.byIATA[strings.ToUpper(ref)]; ok {
		return d, nil
	}
	if d, ok := t.byName[strings.ToLower(ref)]; ok {
		return d, nil
	}

	return nil, constants.ErrDestinationNotFound
}

// Holder хранит текущий снимок; замена атомарна, читатели не блокируются.
type Holder struct {
	current atomic.Pointer[Table]
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Current() (*Table, error) {
	t := h.current.Load()
	if t == nil {
		return nil, constants.ErrCatalogEmpty
	}
	return t, nil
}

func (h *Holder) Swap(t *Table) *Table {
	return h.current.Swap(t)
}
