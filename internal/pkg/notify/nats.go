package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
)

// Connect открывает соединение с переподключением. Пустой url - nil без ошибки.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	if url == "" {
		return nil, nil
	}

	options := []nats.Option{
		nats.Name("wanderwise"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warnf(ctx, "nats disconnected: %s", err.Error())
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof(ctx, "nats reconnected to %s", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("nats.Connect: %w", err)
	}

	return nc, nil
}

// Subscribe вызывает fn с версией из каждого сообщения subject.
func Subscribe(ctx context.Context, nc *nats.Conn, subject string, fn func(ctx context.Context, version string)) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		fn(ctx, string(msg.Data))
	})
	if err != nil {
		return nil, fmt.Errorf("nc.Subscribe: %w", err)
	}
	return sub, nil
}
