package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// maxBodyBytes caps the response body. The published dataset is ~200 KB.
const maxBodyBytes = 16 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataset request: status %d: %s", e.StatusCode, e.Body)
}

// Client loads the global temperature dataset from a single URL.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a dataset client. A zero timeout waits indefinitely.
// file:// URLs are read from the local filesystem.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Load performs one GET and decodes the dataset. It never retries.
func (c *Client) Load(ctx context.Context) (domain.Dataset, error) {
	start := time.Now()
	ds, err := c.load(ctx)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchErrors.WithLabelValues(errorKind(err)).Inc()
		return domain.Dataset{}, err
	}

	c.metrics.RecordsLoaded.Set(float64(len(ds.MonthlyVariance)))
	c.logger.Debug("dataset fetched",
		"url", c.url,
		"records", len(ds.MonthlyVariance),
		"duration", time.Since(start),
	)
	return ds, nil
}

func (c *Client) load(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("dataset request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Dataset{}, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read response: %w", err)
	}

	ds, err := domain.ParseDataset(body)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("decode response: %w", err)
	}
	return ds, nil
}

// errorKind classifies a Load error for the fetch_errors_total label.
func errorKind(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, domain.ErrInvalidDataset):
		return "invalid"
	case isDecodeError(err):
		return "decode"
	default:
		return "transport"
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
