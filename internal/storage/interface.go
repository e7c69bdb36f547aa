package storage

import (
	"context"

	"github.com/letterduel/letterduel/internal/model"
)

// UpdateFunc mutates a game in place as part of a transaction. Returning an
// error aborts the transaction with no state change.
type UpdateFunc func(game *model.Game) error

// Storage defines the interface for data persistence.
//
// UpdateGame is the authority boundary for game state: the whole
// read-validate-write sequence runs atomically per game, so two concurrent
// move submissions can never both apply. The second submitter observes the
// first submitter's write (or is retried against it) and is rejected by the
// turn-ownership check inside its UpdateFunc.
type Storage interface {
	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	UpdateGame(ctx context.Context, id model.GameID, fn UpdateFunc) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// FindWaitingGame returns a public waiting game with no second player,
	// not created by the excluded player. Returns (nil, nil) if none exists.
	FindWaitingGame(ctx context.Context, exclude model.PlayerID) (*model.Game, error)

	// FindGameByJoinCode looks up a private game by its join code
	FindGameByJoinCode(ctx context.Context, code string) (*model.Game, error)

	// ListFinishedGames returns all finished games involving the player
	ListFinishedGames(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error)

	// Matchmaking request operations (keyed one-per-user)
	SaveMatchmakingRequest(ctx context.Context, req *model.MatchmakingRequest) error
	GetMatchmakingRequest(ctx context.Context, userID model.PlayerID) (*model.MatchmakingRequest, error)
	DeleteMatchmakingRequest(ctx context.Context, userID model.PlayerID) error
	ListMatchmakingRequests(ctx context.Context) ([]*model.MatchmakingRequest, error)

	// Presence operations
	SavePresence(ctx context.Context, presence *model.Presence) error
	GetPresence(ctx context.Context, userID model.PlayerID) (*model.Presence, error)

	// Dictionary cache operations. Entries expire after the backend's
	// configured word-cache TTL.
	GetCachedWord(ctx context.Context, word string) (valid bool, found bool, err error)
	CacheWord(ctx context.Context, word string, valid bool) error
}
