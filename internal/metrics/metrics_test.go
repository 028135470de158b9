package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/movies/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/movies/:id", "204"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/movies/:id", "204"))
	assert.Equal(t, float64(2), after-before)
}

func TestHandlerExposesDomainCounters(t *testing.T) {
	RecordWatchlistOp("add", "created")
	RecordMovieCache(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "moviewatch_watchlist_operations_total"))
	assert.True(t, strings.Contains(body, "moviewatch_movies_list_cache_total"))
}
