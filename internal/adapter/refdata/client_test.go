package refdata

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"

	validBody = `{
		"baseTemperature": 8.66,
		"monthlyVariance": [
			{"year": 1753, "month": 1, "variance": -1.366},
			{"year": 1753, "month": 2, "variance": -2.223},
			{"year": 2015, "month": 9, "variance": 0.927}
		]
	}`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(url string) *Client {
	return NewClient(url, 5*time.Second, observability.NewMetricsForTesting(), discardLogger())
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Load_Success(t *testing.T) {
	srv := serve(t, http.StatusOK, validBody)
	c := testClient(srv.URL)

	ds, err := c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8.66, ds.BaseTemperature)
	require.Len(t, ds.MonthlyVariance, 3)
	assert.Equal(t, domain.MonthlyRecord{Year: 2015, Month: 9, Variance: 0.927}, ds.MonthlyVariance[2])
	assert.Equal(t, 3.0, testutil.ToFloat64(c.metrics.RecordsLoaded))
	assert.Equal(t, 1, testutil.CollectAndCount(c.metrics.FetchDuration))
}

func TestClient_Load_SingleRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Load_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   string
		substr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "status", "500"},
		{"not found", http.StatusNotFound, "", "status", "404"},
		{"malformed json", http.StatusOK, `{"baseTemperature": 8.66,`, "decode", "decode response"},
		{"mistyped field", http.StatusOK, `{"baseTemperature": "8.66", "monthlyVariance": []}`, "decode", "decode response"},
		{"missing field", http.StatusOK, `{"monthlyVariance": [{"year": 1, "month": 1, "variance": 0}]}`, "invalid", "baseTemperature"},
		{"bad month", http.StatusOK, `{"baseTemperature": 1, "monthlyVariance": [{"year": 1, "month": 14, "variance": 0}]}`, "invalid", "monthlyVariance[0].month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			c := testClient(srv.URL)

			_, err := c.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
			assert.Equal(t, tt.kind, errorKind(err))
			assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FetchErrors.WithLabelValues(tt.kind)))
			assert.Equal(t, 0.0, testutil.ToFloat64(c.metrics.RecordsLoaded))
		})
	}
}

func TestClient_Load_StatusError(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, "upstream down")

	_, err := testClient(srv.URL).Load(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestClient_Load_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := testClient(url)
	_, err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "transport", errorKind(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FetchErrors.WithLabelValues("transport")))
}

func TestClient_Load_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, observability.NewMetricsForTesting(), discardLogger())
	_, err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "transport", errorKind(err))
}

func TestClient_Load_ContextCancelled(t *testing.T) {
	srv := serve(t, http.StatusOK, validBody)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Load_FileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global-temperature.json")
	require.NoError(t, os.WriteFile(path, []byte(validBody), 0o600))

	ds, err := testClient("file://" + filepath.ToSlash(path)).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.MonthlyVariance, 3)
}

func TestClient_Load_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	_, err := testClient("file://" + filepath.ToSlash(path)).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "status", errorKind(err))
}
