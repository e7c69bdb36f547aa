package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/storage"
)

// WordCacheTTL is how long dictionary lookups stay cached
const WordCacheTTL = 24 * time.Hour

// Storage is an in-memory implementation of the storage interface.
// Games are stored by value behind the mutex; UpdateGame applies its
// function to a deep copy and commits only on success, so a failed
// validation never leaves partial state.
type Storage struct {
	mu sync.RWMutex

	games     map[model.GameID]*model.Game
	requests  map[model.PlayerID]*model.MatchmakingRequest
	presence  map[model.PlayerID]*model.Presence
	wordCache map[string]cachedWord
}

type cachedWord struct {
	valid     bool
	expiresAt time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:     make(map[model.GameID]*model.Game),
		requests:  make(map[model.PlayerID]*model.MatchmakingRequest),
		presence:  make(map[model.PlayerID]*model.Presence),
		wordCache: make(map[string]cachedWord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// cloneGame deep-copies a game so callers cannot mutate stored state
// without going through UpdateGame
func cloneGame(g *model.Game) *model.Game {
	out := *g
	if g.Board != nil {
		board := *g.Board
		out.Board = &board
	}
	out.Bag = append([]model.Tile(nil), g.Bag...)
	if g.Player1 != nil {
		p := *g.Player1
		p.Rack = append([]model.Tile(nil), g.Player1.Rack...)
		out.Player1 = &p
	}
	if g.Player2 != nil {
		p := *g.Player2
		p.Rack = append([]model.Tile(nil), g.Player2.Rack...)
		out.Player2 = &p
	}
	return &out
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn storage.UpdateFunc) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	working := cloneGame(game)
	if err := fn(working); err != nil {
		return nil, err
	}

	s.games[id] = working
	return cloneGame(working), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) FindWaitingGame(ctx context.Context, exclude model.PlayerID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, game := range s.games {
		if game.Status != model.GameStatusWaiting || game.Private {
			continue
		}
		if game.Player2 != nil {
			continue
		}
		if game.Player1 != nil && game.Player1.ID == exclude {
			continue
		}
		return cloneGame(game), nil
	}
	return nil, nil
}

func (s *Storage) FindGameByJoinCode(ctx context.Context, code string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code = strings.ToUpper(code)
	for _, game := range s.games {
		if game.Private && game.JoinCode == code {
			return cloneGame(game), nil
		}
	}
	return nil, model.ErrGameNotFound
}

func (s *Storage) ListFinishedGames(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var finished []*model.Game
	for _, game := range s.games {
		if game.Status == model.GameStatusFinished && game.HasPlayer(playerID) {
			finished = append(finished, cloneGame(game))
		}
	}
	return finished, nil
}

// Matchmaking request operations

func (s *Storage) SaveMatchmakingRequest(ctx context.Context, req *model.MatchmakingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *req
	s.requests[req.UserID] = &cp
	return nil
}

func (s *Storage) GetMatchmakingRequest(ctx context.Context, userID model.PlayerID) (*model.MatchmakingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[userID]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (s *Storage) DeleteMatchmakingRequest(ctx context.Context, userID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, userID)
	return nil
}

func (s *Storage) ListMatchmakingRequests(ctx context.Context) ([]*model.MatchmakingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	requests := make([]*model.MatchmakingRequest, 0, len(s.requests))
	for _, req := range s.requests {
		cp := *req
		requests = append(requests, &cp)
	}
	return requests, nil
}

// Presence operations

func (s *Storage) SavePresence(ctx context.Context, presence *model.Presence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *presence
	s.presence[presence.UserID] = &cp
	return nil
}

func (s *Storage) GetPresence(ctx context.Context, userID model.PlayerID) (*model.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presence[userID]
	if !ok {
		return &model.Presence{UserID: userID, Status: model.PresenceOffline}, nil
	}
	cp := *p
	return &cp, nil
}

// Dictionary cache operations

func (s *Storage) GetCachedWord(ctx context.Context, word string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.wordCache[strings.ToLower(word)]
	if !ok || time.Now().After(entry.expiresAt) {
		return false, false, nil
	}
	return entry.valid, true, nil
}

func (s *Storage) CacheWord(ctx context.Context, word string, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordCache[strings.ToLower(word)] = cachedWord{
		valid:     valid,
		expiresAt: time.Now().Add(WordCacheTTL),
	}
	return nil
}
