package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
)

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// read возвращает содержимое источника: локальный файл или http(s) URL.
func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		}
		return data, nil
	}

	return l.fetch(ctx, source)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	var (
		body    []byte
		attempt int
	)
	err := backoff.Retry(
		func() error {
			attempt++

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequest: %w", err))
			}

			resp, err := l.client.Do(req)
			if err != nil {
				logger.Warnf(ctx, "fetch %s, attempt %d: %s", url, attempt, err.Error())
				return fmt.Errorf("client.Do: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
					return backoff.Permanent(statusErr)
				}
				logger.Warnf(ctx, "fetch %s, attempt %d: %s", url, attempt, statusErr.Error())
				return statusErr
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("io.ReadAll: %w", err)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(l.cfg.RetryInterval), l.cfg.MaxRetries),
			ctx,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	return body, nil
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
