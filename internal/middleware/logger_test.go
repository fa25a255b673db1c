package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	server := gin.New()
	server.Use(RequestLogger(logger))
	server.GET("/ping", func(gctx *gin.Context) {
		zerolog.Ctx(gctx.Request.Context()).Info().Msg("inside handler")
		gctx.JSON(http.StatusOK, gin.H{})
	})

	testCases := []struct {
		name      string
		requestID string
	}{
		{name: "Generated"},
		{name: "Propagated", requestID: "req-123"},
	}

	for _, tc := range testCases {
		buf.Reset()

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/ping", nil)

		if tc.requestID != "" {
			request.Header.Set(RequestIDHeader, tc.requestID)
		}

		server.ServeHTTP(recorder, request)

		gotID := recorder.Header().Get(RequestIDHeader)
		require.NotEmpty(t, gotID, tc.name)

		if tc.requestID != "" {
			require.Equal(t, tc.requestID, gotID, tc.name)
		}

		dec := json.NewDecoder(&buf)
		lines := 0

		for dec.More() {
			var entry map[string]any
			require.NoError(t, dec.Decode(&entry))
			require.Equal(t, gotID, entry["request_id"], tc.name)

			lines++
		}

		require.Equal(t, 2, lines, tc.name)
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	server := gin.New()
	server.Use(Metrics())
	server.GET("/metrics-test/:id", func(gctx *gin.Context) {
		gctx.Status(http.StatusTeapot)
	})

	before := sampleCount(t, "/metrics-test/:id")

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics-test/42", nil))

	require.Equal(t, http.StatusTeapot, recorder.Code)
	require.Equal(t, before+1, sampleCount(t, "/metrics-test/:id"))
}

// sampleCount returns how many GET requests to route got a 418 so far.
func sampleCount(t *testing.T, route string) uint64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "petbank_http_request_duration_seconds" {
			continue
		}

		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}

			if labels["route"] == route && labels["method"] == http.MethodGet && labels["status"] == "418" {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}

	return 0
}
