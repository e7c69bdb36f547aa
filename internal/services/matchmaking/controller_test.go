package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/letterduel/letterduel/internal/dependencies/mocks"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/services/dictionary"
	"github.com/letterduel/letterduel/internal/services/game"
	"github.com/letterduel/letterduel/internal/services/presence"
	"github.com/letterduel/letterduel/internal/services/tilebag"
	"github.com/letterduel/letterduel/internal/storage/memory"
	"github.com/letterduel/letterduel/internal/testutil"
)

var (
	alice = model.Player{ID: "alice", DisplayName: "Alice"}
	bob   = model.Player{ID: "bob", DisplayName: "Bob"}
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	logger := testutil.NopLogger()
	tilebagService := tilebag.New(s.random)
	dictService := dictionary.New(&dictionary.AcceptAllChecker{}, s.storage, logger)
	presenceService := presence.New(s.storage, s.clock, logger)

	gameController := game.NewController(
		s.storage, tilebagService, dictService, presenceService,
		s.clock, s.random, game.DefaultConfig(), logger,
	)
	s.controller = NewController(
		s.storage, gameController, presenceService,
		s.clock, DefaultConfig(), logger,
	)
	s.controller.SetSleepForTesting(func(time.Duration) {})
	s.ctx = context.Background()
}

func (s *ControllerSuite) TestFirstSearcherWaits() {
	result, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)

	s.False(result.Matched)
	s.Require().NotNil(result.Game)
	s.Equal(model.GameStatusWaiting, result.Game.Status)
	s.Equal(alice.ID, result.Game.Player1.ID)

	req, err := s.storage.GetMatchmakingRequest(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(result.Game.ID, req.GameID)
}

func (s *ControllerSuite) TestSecondSearcherMatches() {
	first, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)
	s.False(first.Matched)

	second, err := s.controller.FindMatch(s.ctx, bob)
	s.Require().NoError(err)

	s.True(second.Matched)
	s.Equal(first.Game.ID, second.Game.ID)
	s.Equal(model.GameStatusPlaying, second.Game.Status)
	s.Equal(alice.ID, second.Game.Player1.ID)
	s.Equal(bob.ID, second.Game.Player2.ID)

	// Matched requests are cleaned up on both sides
	_, err = s.storage.GetMatchmakingRequest(s.ctx, alice.ID)
	s.ErrorIs(err, model.ErrRequestNotFound)
	_, err = s.storage.GetMatchmakingRequest(s.ctx, bob.ID)
	s.ErrorIs(err, model.ErrRequestNotFound)
}

func (s *ControllerSuite) TestDuplicateSearchRejected() {
	_, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)

	_, err = s.controller.FindMatch(s.ctx, alice)
	s.ErrorIs(err, model.ErrAlreadySearching)
}

func (s *ControllerSuite) TestSearcherNeverJoinsOwnGame() {
	result, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)
	s.False(result.Matched, "own waiting game is not a match candidate")
}

func (s *ControllerSuite) TestCancelSearch() {
	result, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelSearch(s.ctx, alice.ID))

	_, err = s.storage.GetMatchmakingRequest(s.ctx, alice.ID)
	s.ErrorIs(err, model.ErrRequestNotFound)

	cancelled, err := s.storage.GetGame(s.ctx, result.Game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusFinished, cancelled.Status)
	s.Equal(model.EndReasonCancelled, cancelled.EndReason)

	// A later searcher gets a fresh game, not the cancelled one
	next, err := s.controller.FindMatch(s.ctx, bob)
	s.Require().NoError(err)
	s.False(next.Matched)
}

func (s *ControllerSuite) TestCancelSearchWithoutRequestFails() {
	err := s.controller.CancelSearch(s.ctx, alice.ID)
	s.ErrorIs(err, model.ErrRequestNotFound)
}

func (s *ControllerSuite) TestCreatePrivateAndJoinByCode() {
	s.random.QueueString("XYZ789")

	created, err := s.controller.CreatePrivate(s.ctx, alice)
	s.Require().NoError(err)
	s.True(created.Private)
	s.Equal("XYZ789", created.JoinCode)

	joined, err := s.controller.JoinByCode(s.ctx, "xyz789", bob)
	s.Require().NoError(err)
	s.Equal(created.ID, joined.ID)
	s.Equal(model.GameStatusPlaying, joined.Status)
}

func (s *ControllerSuite) TestPrivateGameNotMatchedPublicly() {
	s.random.QueueString("XYZ789")
	_, err := s.controller.CreatePrivate(s.ctx, alice)
	s.Require().NoError(err)

	result, err := s.controller.FindMatch(s.ctx, bob)
	s.Require().NoError(err)
	s.False(result.Matched)
}

func (s *ControllerSuite) TestCleanupStalePurgesOldRequests() {
	first, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)
	s.False(first.Matched)

	s.clock.Advance(DefaultConfig().StaleAfter + time.Minute)

	purged, err := s.controller.CleanupStale(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, purged)

	_, err = s.storage.GetMatchmakingRequest(s.ctx, alice.ID)
	s.ErrorIs(err, model.ErrRequestNotFound)

	game, err := s.storage.GetGame(s.ctx, first.Game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusFinished, game.Status)
}

func (s *ControllerSuite) TestCleanupStaleKeepsFreshRequests() {
	_, err := s.controller.FindMatch(s.ctx, alice)
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)

	purged, err := s.controller.CleanupStale(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, purged)

	_, err = s.storage.GetMatchmakingRequest(s.ctx, alice.ID)
	s.NoError(err)
}
