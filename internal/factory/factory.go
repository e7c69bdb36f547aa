package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/letterduel/letterduel/internal/api/sse"
	"github.com/letterduel/letterduel/internal/dependencies/clock"
	"github.com/letterduel/letterduel/internal/dependencies/random"
	"github.com/letterduel/letterduel/internal/services/dictionary"
	"github.com/letterduel/letterduel/internal/services/game"
	"github.com/letterduel/letterduel/internal/services/matchmaking"
	"github.com/letterduel/letterduel/internal/services/presence"
	"github.com/letterduel/letterduel/internal/services/stats"
	"github.com/letterduel/letterduel/internal/services/tilebag"
	"github.com/letterduel/letterduel/internal/storage"
	"github.com/letterduel/letterduel/internal/storage/memory"
	redisstorage "github.com/letterduel/letterduel/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	TilebagService        *tilebag.Service
	DictionaryService     *dictionary.Service
	PresenceService       *presence.Service
	StatsService          *stats.Service
	GameController        *game.Controller
	MatchmakingController *matchmaking.Controller
	HubManager            *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryURL is the base URL of the word lookup service (optional)
	// If empty, every shaped word is accepted
	DictionaryURL string
	// GameConfig holds game rule settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// MatchmakingConfig holds matchmaking settings (optional)
	// If zero value, defaults to matchmaking.DefaultConfig()
	MatchmakingConfig matchmaking.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Word lookup backend
	var checker dictionary.Checker
	if cfg.DictionaryURL != "" {
		checker = dictionary.NewHTTPChecker(cfg.DictionaryURL)
	} else {
		checker = &dictionary.AcceptAllChecker{}
	}

	gameCfg := cfg.GameConfig
	if gameCfg.TurnDuration == 0 {
		gameCfg = game.DefaultConfig()
	}
	mmCfg := cfg.MatchmakingConfig
	if mmCfg.RetryDelay == 0 {
		mmCfg = matchmaking.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, checker, gameCfg, mmCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	checker dictionary.Checker,
	gameCfg game.Config,
	mmCfg matchmaking.Config,
	logger *slog.Logger,
) *App {
	// Create services
	tilebagService := tilebag.New(rnd)
	dictService := dictionary.New(checker, store, logger)
	presenceService := presence.New(store, clk, logger)
	statsService := stats.New(store)
	gameController := game.NewController(store, tilebagService, dictService, presenceService, clk, rnd, gameCfg, logger)
	matchmakingController := matchmaking.NewController(store, gameController, presenceService, clk, mmCfg, logger)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:               store,
		Clock:                 clk,
		Random:                rnd,
		TilebagService:        tilebagService,
		DictionaryService:     dictService,
		PresenceService:       presenceService,
		StatsService:          statsService,
		GameController:        gameController,
		MatchmakingController: matchmakingController,
		HubManager:            hubManager,
	}
}
