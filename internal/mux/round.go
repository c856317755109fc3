package mux

import (
	"blackjack-server/pkg/playable"
	"net/http"
)

type postRoundDecisionPayload struct {
	Decision string `json:"decision"`
}

func (m *Mux) postRound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// the body is optional, chunked bodies report a length of -1
		var data playable.AdditionalData
		if r.Body != http.NoBody && r.Header.Get("Content-Type") != "" {
			if !decodeRequest(w, r, &data) {
				return
			}
		}

		resp, err := m.pitBoss.StartRound(playerID(r), data)
		if err != nil {
			writeRoundError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

func (m *Mux) getRound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := m.pitBoss.State(playerID(r))
		if err != nil {
			writeRoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) postRoundDecision() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postRoundDecisionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		id := playerID(r)
		if _, err := m.pitBoss.Action(id, &playable.PayloadIn{
			Action:  "decision",
			Subject: payload.Decision,
		}); err != nil {
			writeRoundError(w, err)
			return
		}

		resp, err := m.pitBoss.State(id)
		if err != nil {
			writeRoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) deleteRound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.pitBoss.Abandon(playerID(r)); err != nil {
			writeRoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, playable.OK())
	}
}

func (m *Mux) getRoundLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.LogMessages(playerID(r)))
	}
}
