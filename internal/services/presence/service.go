package presence

import (
	"context"
	"log/slog"

	"github.com/letterduel/letterduel/internal/dependencies/clock"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/storage"
)

// Service tracks player availability. All writes are best-effort: failures
// are logged and swallowed so presence never blocks a game transition.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new presence service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// SetOnline marks a player as online
func (s *Service) SetOnline(ctx context.Context, userID model.PlayerID) {
	s.set(ctx, userID, model.PresenceOnline, "")
}

// SetInGame marks a player as playing the given game
func (s *Service) SetInGame(ctx context.Context, userID model.PlayerID, gameID model.GameID) {
	s.set(ctx, userID, model.PresenceInGame, gameID)
}

// SetOffline marks a player as offline
func (s *Service) SetOffline(ctx context.Context, userID model.PlayerID) {
	s.set(ctx, userID, model.PresenceOffline, "")
}

// Get returns a player's current presence; unknown players read as offline
func (s *Service) Get(ctx context.Context, userID model.PlayerID) (*model.Presence, error) {
	return s.storage.GetPresence(ctx, userID)
}

func (s *Service) set(ctx context.Context, userID model.PlayerID, status model.PresenceStatus, gameID model.GameID) {
	presence := &model.Presence{
		UserID:    userID,
		Status:    status,
		GameID:    gameID,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.storage.SavePresence(ctx, presence); err != nil {
		s.logger.Warn("failed to save presence",
			slog.String("user_id", string(userID)),
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
	}
}
