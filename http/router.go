package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(
	limiter *RateLimiter,
	projection *ProjectionHandler,
	scenario *ScenarioHandler,
	goal *GoalHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	// Middleware is applied per route: mux drops the 405 match when
	// Use is set on a subrouter.
	limit := RateLimitMiddleware(limiter)
	route := func(path string, h http.HandlerFunc, method string) {
		r.Handle("/investment"+path, limit(h)).Methods(method)
	}

	route("/project", projection.CalculateProjection, http.MethodPost)
	route("/project", projection.ProjectFromQuery, http.MethodGet)
	route("/history", projection.History, http.MethodGet)
	route("/compare", scenario.Compare, http.MethodPost)
	route("/goal", goal.Reach, http.MethodPost)

	return r
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
