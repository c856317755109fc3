package mux

import (
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeRoundError maps engine and seat errors to a status code
// bad decisions are a 400, a second round is a 409, no round is a 404, anything else is a 500
func writeRoundError(w http.ResponseWriter, err error) {
	var invalidDecision *blackjack.InvalidDecisionError
	var phaseErr *blackjack.PhaseError

	switch {
	case errors.As(err, &invalidDecision), errors.As(err, &phaseErr):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, room.ErrRoundInProgress):
		writeJSONError(w, http.StatusConflict, err)
	case errors.Is(err, room.ErrNoRound):
		writeJSONError(w, http.StatusNotFound, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
