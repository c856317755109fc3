package mux

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Seats   int    `json:"seats"`
}

// getHealth reports the version and how many players currently hold a seat
func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			Seats:   m.pitBoss.Seats(),
		})
	}
}
