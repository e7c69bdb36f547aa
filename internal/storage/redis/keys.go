package redis

import (
	"fmt"
	"strings"

	"github.com/letterduel/letterduel/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "letterduel"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// waitingGamesKey returns the Redis key for the SET of public waiting games
func waitingGamesKey() string {
	return fmt.Sprintf("%s:idx:waiting_games", keyPrefix)
}

// finishedGamesKey returns the Redis key for the SET of a player's finished games
func finishedGamesKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:finished_games:%s", keyPrefix, playerID)
}

// joinCodeKey returns the Redis key for the join_code -> game_id index
func joinCodeKey(code string) string {
	return fmt.Sprintf("%s:idx:join_code:%s", keyPrefix, strings.ToUpper(code))
}

// matchmakingKey returns the Redis key for a player's matchmaking request
func matchmakingKey(userID model.PlayerID) string {
	return fmt.Sprintf("%s:matchmaking:%s", keyPrefix, userID)
}

// matchmakingIndexKey returns the Redis key for the SET of active requests
func matchmakingIndexKey() string {
	return fmt.Sprintf("%s:idx:matchmaking", keyPrefix)
}

// presenceKey returns the Redis key for a player's presence record
func presenceKey(userID model.PlayerID) string {
	return fmt.Sprintf("%s:presence:%s", keyPrefix, userID)
}

// wordCacheKey returns the Redis key for a cached dictionary lookup
func wordCacheKey(word string) string {
	return fmt.Sprintf("%s:dict:%s", keyPrefix, strings.ToLower(word))
}
