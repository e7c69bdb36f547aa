package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedFinishedGame(id string, winner model.PlayerID, p1Score, p2Score int, p1Highest int, reason model.EndReason) {
	g := &model.Game{
		ID:     model.GameID(id),
		Status: model.GameStatusFinished,
		Player1: &model.PlayerState{
			ID:               "alice",
			FinalScore:       p1Score,
			HighestWordScore: p1Highest,
		},
		Player2: &model.PlayerState{
			ID:         "bob",
			FinalScore: p2Score,
		},
		WinnerID:  winner,
		EndReason: reason,
		EndedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))
}

func (s *ServiceSuite) TestNoGames() {
	stats, err := s.service.ForPlayer(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("alice"), stats.PlayerID)
	s.Equal(0, stats.GamesPlayed)
	s.Equal(0.0, stats.WinRate)
	s.Equal(0.0, stats.AverageScore)
}

func (s *ServiceSuite) TestAggregatesAcrossGames() {
	s.seedFinishedGame("g1", "alice", 120, 90, 24, model.EndReasonTilesExhausted)
	s.seedFinishedGame("g2", "bob", 60, 100, 18, model.EndReasonDoublePass)
	s.seedFinishedGame("g3", "alice", 90, 30, 33, model.EndReasonResignation)

	stats, err := s.service.ForPlayer(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(3, stats.GamesPlayed)
	s.Equal(2, stats.GamesWon)
	s.Equal(270, stats.TotalScore)
	s.Equal(33, stats.HighestWordScore)
	s.InDelta(66.67, stats.WinRate, 0.01)
	s.Equal(90.0, stats.AverageScore)
}

func (s *ServiceSuite) TestOpponentPerspective() {
	s.seedFinishedGame("g1", "alice", 120, 90, 24, model.EndReasonTilesExhausted)

	stats, err := s.service.ForPlayer(s.ctx, "bob")
	s.Require().NoError(err)

	s.Equal(1, stats.GamesPlayed)
	s.Equal(0, stats.GamesWon)
	s.Equal(90, stats.TotalScore)
	s.Equal(0.0, stats.WinRate)
}

func (s *ServiceSuite) TestCancelledGamesExcluded() {
	s.seedFinishedGame("g1", "", 0, 0, 0, model.EndReasonCancelled)
	s.seedFinishedGame("g2", "alice", 50, 10, 12, model.EndReasonResignation)

	stats, err := s.service.ForPlayer(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(1, stats.GamesPlayed)
	s.Equal(50, stats.TotalScore)
}

func (s *ServiceSuite) TestTieCountsAsPlayedNotWon() {
	s.seedFinishedGame("g1", "", 80, 80, 15, model.EndReasonDoublePass)

	stats, err := s.service.ForPlayer(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(1, stats.GamesPlayed)
	s.Equal(0, stats.GamesWon)
	s.Equal(0.0, stats.WinRate)
}
