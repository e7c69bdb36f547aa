package stats

import (
	"context"

	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/storage"
)

// Service computes derived stats over a player's finished games. Nothing
// is stored; the view is recomputed from the finished-game set each call,
// which is cheap at per-player volumes.
type Service struct {
	storage storage.Storage
}

// New creates a new stats service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// ForPlayer aggregates the player's finished games into a stats view.
// Cancelled games never started and are excluded.
func (s *Service) ForPlayer(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	games, err := s.storage.ListFinishedGames(ctx, playerID)
	if err != nil {
		return nil, err
	}

	out := &model.PlayerStats{PlayerID: playerID}
	for _, g := range games {
		if g.EndReason == model.EndReasonCancelled {
			continue
		}
		state := g.PlayerState(playerID)
		if state == nil {
			continue
		}

		out.GamesPlayed++
		out.TotalScore += state.FinalScore
		if g.WinnerID == playerID {
			out.GamesWon++
		}
		if state.HighestWordScore > out.HighestWordScore {
			out.HighestWordScore = state.HighestWordScore
		}
	}

	if out.GamesPlayed > 0 {
		out.WinRate = float64(out.GamesWon) / float64(out.GamesPlayed) * 100
		out.AverageScore = float64(out.TotalScore) / float64(out.GamesPlayed)
	}

	return out, nil
}
