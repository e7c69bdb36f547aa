package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/storage"
)

// ErrTxConflict is returned when an optimistic game transaction keeps
// conflicting past the configured retry budget
var ErrTxConflict = errors.New("game transaction conflict: retries exhausted")

// Storage is a Redis-backed implementation of the storage interface.
// Game updates run under WATCH so the read-validate-write sequence is
// atomic per game key.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	if game.Status == model.GameStatusWaiting && !game.Private {
		pipe.SAdd(ctx, waitingGamesKey(), string(game.ID))
	}
	if game.Private && game.JoinCode != "" {
		pipe.Set(ctx, joinCodeKey(game.JoinCode), string(game.ID), s.cfg.GameTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn storage.UpdateFunc) (*model.Game, error) {
	key := gameKey(id)
	var updated *model.Game

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrGameNotFound
			}
			return err
		}

		var game model.Game
		if err := json.Unmarshal(data, &game); err != nil {
			return err
		}

		wasWaitingPublic := game.Status == model.GameStatusWaiting && !game.Private
		wasFinished := game.Status == model.GameStatusFinished

		if err := fn(&game); err != nil {
			return err
		}

		out, err := json.Marshal(&game)
		if err != nil {
			return err
		}

		isWaitingPublic := game.Status == model.GameStatusWaiting && !game.Private

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.cfg.GameTTL)
			if wasWaitingPublic && !isWaitingPublic {
				pipe.SRem(ctx, waitingGamesKey(), string(game.ID))
			}
			if !wasWaitingPublic && isWaitingPublic {
				pipe.SAdd(ctx, waitingGamesKey(), string(game.ID))
			}
			if !wasFinished && game.Status == model.GameStatusFinished {
				if game.Player1 != nil {
					pipe.SAdd(ctx, finishedGamesKey(game.Player1.ID), string(game.ID))
				}
				if game.Player2 != nil {
					pipe.SAdd(ctx, finishedGamesKey(game.Player2.ID), string(game.ID))
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = &game
		return nil
	}

	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer got in between read and write; re-run the
			// whole closure against the fresh document
			continue
		}
		return nil, err
	}

	return nil, ErrTxConflict
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, waitingGamesKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) FindWaitingGame(ctx context.Context, exclude model.PlayerID) (*model.Game, error) {
	ids, err := s.client.SMembers(ctx, waitingGamesKey()).Result()
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if errors.Is(err, model.ErrGameNotFound) {
			// Expired entry; drop it from the index
			s.client.SRem(ctx, waitingGamesKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if game.Status != model.GameStatusWaiting || game.Player2 != nil {
			s.client.SRem(ctx, waitingGamesKey(), id)
			continue
		}
		if game.Player1 != nil && game.Player1.ID == exclude {
			continue
		}
		return game, nil
	}

	return nil, nil
}

func (s *Storage) FindGameByJoinCode(ctx context.Context, code string) (*model.Game, error) {
	id, err := s.client.Get(ctx, joinCodeKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return s.GetGame(ctx, model.GameID(id))
}

func (s *Storage) ListFinishedGames(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, finishedGamesKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Game may have expired
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}

	return games, nil
}

// Matchmaking request operations

func (s *Storage) SaveMatchmakingRequest(ctx context.Context, req *model.MatchmakingRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchmakingKey(req.UserID), data, s.cfg.MatchmakingTTL)
	pipe.SAdd(ctx, matchmakingIndexKey(), string(req.UserID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatchmakingRequest(ctx context.Context, userID model.PlayerID) (*model.MatchmakingRequest, error) {
	data, err := s.client.Get(ctx, matchmakingKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRequestNotFound
		}
		return nil, err
	}

	var req model.MatchmakingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Storage) DeleteMatchmakingRequest(ctx context.Context, userID model.PlayerID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchmakingKey(userID))
	pipe.SRem(ctx, matchmakingIndexKey(), string(userID))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListMatchmakingRequests(ctx context.Context) ([]*model.MatchmakingRequest, error) {
	userIDs, err := s.client.SMembers(ctx, matchmakingIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []*model.MatchmakingRequest{}, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = matchmakingKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	requests := make([]*model.MatchmakingRequest, 0, len(values))
	for i, val := range values {
		if val == nil {
			// Request expired; drop from the index
			s.client.SRem(ctx, matchmakingIndexKey(), userIDs[i])
			continue
		}
		var req model.MatchmakingRequest
		if err := json.Unmarshal([]byte(val.(string)), &req); err != nil {
			continue
		}
		requests = append(requests, &req)
	}

	return requests, nil
}

// Presence operations

func (s *Storage) SavePresence(ctx context.Context, presence *model.Presence) error {
	data, err := json.Marshal(presence)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, presenceKey(presence.UserID), data, s.cfg.PresenceTTL).Err()
}

func (s *Storage) GetPresence(ctx context.Context, userID model.PlayerID) (*model.Presence, error) {
	data, err := s.client.Get(ctx, presenceKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired or never set; offline
			return &model.Presence{UserID: userID, Status: model.PresenceOffline}, nil
		}
		return nil, err
	}

	var presence model.Presence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, err
	}
	return &presence, nil
}

// Dictionary cache operations

func (s *Storage) GetCachedWord(ctx context.Context, word string) (bool, bool, error) {
	val, err := s.client.Get(ctx, wordCacheKey(word)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}
	return val == "1", true, nil
}

func (s *Storage) CacheWord(ctx context.Context, word string, valid bool) error {
	val := "0"
	if valid {
		val = "1"
	}
	return s.client.Set(ctx, wordCacheKey(word), val, s.cfg.WordCacheTTL).Err()
}
