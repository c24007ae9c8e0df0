package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *HTTPServer) newRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.metrics.Middleware, s.timeout)

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.PathPrefix("/public/").Handler(publicHandler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/exercises", s.handleAddExercise).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/logs", s.handleGetLogs).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	return router
}
