package rates_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotacao-api/cotacao/internal/rates"
	"github.com/cotacao-api/cotacao/internal/shared"
)

type stubFetcher struct {
	value string
	err   error
}

func (s stubFetcher) Dolar(ctx context.Context) (string, error) {
	return s.value, s.err
}

func newRatesRouter(fetcher rates.Fetcher) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	rates.NewHandler(logger, fetcher).MountRoutes(r)
	return r
}

func TestConsultarReturnsQuote(t *testing.T) {
	router := newRatesRouter(stubFetcher{value: "5,43"})

	req := httptest.NewRequest(http.MethodGet, "/consultar", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "5,43", body["Dolar agora"])
}

func TestConsultarUpstreamFailure(t *testing.T) {
	router := newRatesRouter(stubFetcher{err: shared.ErrUpstreamFetch})

	req := httptest.NewRequest(http.MethodGet, "/consultar", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Contains(t, res.Body.String(), "failed to retrieve dollar value")
}

func TestConsultarUnknownErrorStaysGeneric(t *testing.T) {
	router := newRatesRouter(stubFetcher{err: errors.New("socket exploded")})

	req := httptest.NewRequest(http.MethodGet, "/consultar", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.NotContains(t, res.Body.String(), "socket exploded")
}
