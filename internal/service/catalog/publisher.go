package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/pkg/store"
)

// Notifier сообщает подписчикам о новой версии каталога.
type Notifier interface {
	Publish(subject string, data []byte) error
}

var _ Notifier = (*nats.Conn)(nil)

// Publisher раскладывает собранный каталог по всем настроенным хранилищам:
// сначала postgres (транзакция), затем CSV-артефакт, затем уведомление.
// Любой из приемников может отсутствовать.
type Publisher struct {
	store    store.Store
	csvPath  string
	notifier Notifier
	subject  string
}

type PublisherOption func(*Publisher)

func WithStore(s store.Store) PublisherOption {
	return func(p *Publisher) {
		p.store = s
	}
}

func WithArtifact(path string) PublisherOption {
	return func(p *Publisher) {
		p.csvPath = path
	}
}

func WithNotifier(n Notifier, subject string) PublisherOption {
	return func(p *Publisher) {
		p.notifier = n
		p.subject = subject
	}
}

func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CurrentVersion - версия, опубликованная во все настроенные хранилища.
// Пустая строка - ничего не опубликовано или хранилища расходятся.
func (p *Publisher) CurrentVersion(ctx context.Context) (string, error) {
	var versions []string

	if p.store != nil {
		build, err := p.store.GetCurrentBuild(ctx)
		switch {
		case errors.Is(err, constants.ErrDBNotFound):
			versions = append(versions, "")
		case err != nil:
			return "", fmt.Errorf("GetCurrentBuild: %w", err)
		default:
			versions = append(versions, build.Version)
		}
	}

	if p.csvPath != "" {
		v, err := ReadArtifactVersion(p.csvPath)
		if err != nil {
			return "", err
		}
		versions = append(versions, v)
	}

	if len(versions) == 0 {
		return "", nil
	}
	for _, v := range versions[1:] {
		if v != versions[0] {
			logger.Infof(ctx, "published versions differ: %v", versions)
			return "", nil
		}
	}

	return versions[0], nil
}

func (p *Publisher) Publish(ctx context.Context, report *domain.BuildReport, destinations []*domain.Destination) error {
	ctx = logger.WithFields(ctx, "version", report.Version, "destinations", len(destinations))

	if p.store != nil {
		if err := p.store.PublishCatalog(ctx, report, destinations); err != nil {
			return fmt.Errorf("store.PublishCatalog: %w", err)
		}
		logger.Info(ctx, "catalog written to postgres")
	}

	if p.csvPath != "" {
		if err := WriteArtifact(p.csvPath, report.Version, destinations); err != nil {
			return fmt.Errorf("WriteArtifact: %w", err)
		}
		logger.Infof(ctx, "catalog written to %s", p.csvPath)
	}

	if p.notifier != nil {
		// каталог уже сохранен, потеря уведомления не критична
		if err := p.notifier.Publish(p.subject, []byte(report.Version)); err != nil {
			logger.Warnf(ctx, "notify %s: %s", p.subject, err.Error())
		}
	}

	return nil
}
