package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(m *Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/users/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	m := New()
	r := newRouter(m)

	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/"+id+"/logs", nil))
		require.Equal(t, http.StatusTeapot, rr.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/users/{id}/logs", "418"))
	assert.Equal(t, 3.0, got)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	m := New()
	r := newRouter(m)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ok", "200")))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.UserCreated()
	m.ExerciseAdded()
	m.ExerciseAdded()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.usersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.exercisesAdded))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.UserCreated()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "exercisetracker_users_created_total 1"))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	assert.NotSame(t, a.Registry(), b.Registry())
}
