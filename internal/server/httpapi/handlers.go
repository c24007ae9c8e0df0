package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/exercisetracker/internal/server/logquery"
	"github.com/dmitrijs2005/exercisetracker/internal/server/services"
	"github.com/gorilla/mux"
)

type createUserResponse struct {
	UserName string `json:"username"`
	ID       string `json:"id"`
}

type addExerciseResponse struct {
	ID          string  `json:"id"`
	UserName    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.CreateUser(r.Context(), in.Get("username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.UserCreated()

	writeJSON(w, http.StatusOK, createUserResponse{UserName: user.UserName, ID: user.ID})
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Duration is parsed by the service so that an unknown user is
	// reported before malformed input.
	ex := services.NewExercise{
		Description: in.Get("description"),
		DurationRaw: in.Get("duration"),
		Date:        in.Get("date"),
	}

	user, added, err := s.users.AddExercise(r.Context(), mux.Vars(r)["id"], ex)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ExerciseAdded()

	writeJSON(w, http.StatusOK, addExerciseResponse{
		ID:          user.ID,
		UserName:    user.UserName,
		Date:        logquery.RenderDate(added.Date),
		Duration:    added.Duration,
		Description: added.Description,
	})
}

func (s *HTTPServer) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	q := logquery.ParseQuery(r.URL.Query())

	res, err := s.users.GetLog(r.Context(), mux.Vars(r)["id"], q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
