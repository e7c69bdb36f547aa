package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/letterduel/letterduel/internal/api/apierr"
	"github.com/letterduel/letterduel/internal/model"
)

type contextKey string

const playerContextKey contextKey = "player"

// Header names for the trusted identity the edge proxy injects.
const (
	PlayerIDHeader    = "X-Player-ID"
	DisplayNameHeader = "X-Display-Name"
)

// Identity creates middleware that extracts the caller's identity from
// request headers. The gateway in front of this service authenticates the
// user and forwards the verified identity.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := extractPlayer(r)
			if player == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractPlayer builds a player from the identity headers
func extractPlayer(r *http.Request) *model.Player {
	id := strings.TrimSpace(r.Header.Get(PlayerIDHeader))
	if id == "" {
		return nil
	}

	name := strings.TrimSpace(r.Header.Get(DisplayNameHeader))
	if name == "" {
		name = id
	}

	return &model.Player{
		ID:          model.PlayerID(id),
		DisplayName: name,
	}
}

// GetPlayer returns the identified player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// MustGetPlayer returns the identified player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - identity middleware not applied?")
	}
	return player
}
