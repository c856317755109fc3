package mux

import (
	"blackjack-server/internal/jwt"
	"blackjack-server/pkg/room"
	"context"
	"net/http"
	"strconv"
	"strings"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerIDKey ctxKey = iota
)

// PlayerIDHeader is set on every authorized response
const PlayerIDHeader = "Blackjack-PlayerID"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	signer  *jwt.Signer

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, signer *jwt.Signer) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		signer:  signer,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/round").Handler(this.postRound())
		r.Methods(http.MethodGet).Path("/round").Handler(this.getRound())
		r.Methods(http.MethodDelete).Path("/round").Handler(this.deleteRound())
		r.Methods(http.MethodPost).Path("/round/decision").Handler(this.postRoundDecision())
		r.Methods(http.MethodGet).Path("/round/log").Handler(this.getRoundLog())
		r.Methods(http.MethodGet).Path("/round/ws").Handler(this.getRoundWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := m.signer.ValidPlayerID(token)
		if err != nil || id <= 0 {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, id)
		w.Header().Set(PlayerIDHeader, strconv.FormatInt(id, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// playerID requires authMiddleware to execute first
func playerID(r *http.Request) int64 {
	return r.Context().Value(ctxPlayerIDKey).(int64)
}
