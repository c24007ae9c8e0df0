package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/exercisetracker/internal/common"
)

const serverErrorMessage = "Server error"

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto the response contract: validation is a
// 400 carrying the message, an unknown user is a 200 with the "Not found"
// envelope, everything else is logged and hidden behind a 500.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Message})
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusOK, errorBody{Error: common.NotFoundMessage})
	default:
		s.requestLog(r).Error(r.Context(), "request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: serverErrorMessage})
	}
}
