package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/letterduel/letterduel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour
	cfg.MatchmakingTTL = time.Hour
	cfg.PresenceTTL = time.Minute

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame(id string, p1 model.PlayerID) *model.Game {
	return &model.Game{
		ID:     model.GameID(id),
		Status: model.GameStatusWaiting,
		Player1: &model.PlayerState{
			ID:   p1,
			Rack: []model.Tile{model.NewTile('A'), model.NewTile('B')},
		},
		Board:     model.NewBoard(),
		Bag:       []model.Tile{model.NewTile('C')},
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Game tests

func (s *StorageSuite) TestCreateAndGetGame() {
	g := s.newGame("g1", "alice")
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))

	got, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(g.ID, got.ID)
	s.Equal(model.PlayerID("alice"), got.Player1.ID)
	s.Len(got.Player1.Rack, 2)
	s.Len(got.Bag, 1)
}

func (s *StorageSuite) TestGetMissingGame() {
	_, err := s.storage.GetGame(s.ctx, "nope")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestBoardSurvivesRoundTrip() {
	g := s.newGame("g1", "alice")
	g.Board.Lock(model.Position{Row: 7, Col: 7}, 'X')
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))

	got, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(1, got.Board.LockedCount())
	cell := got.Board.Cell(model.Position{Row: 7, Col: 7})
	s.True(cell.Locked)
	s.Equal('X', cell.Letter)
	s.Equal(model.CellCenter, cell.Type)
}

func (s *StorageSuite) TestUpdateGameCommitsOnSuccess() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("g1", "alice")))

	updated, err := s.storage.UpdateGame(s.ctx, "g1", func(g *model.Game) error {
		g.Status = model.GameStatusPlaying
		g.Player1.Score = 42
		return nil
	})
	s.Require().NoError(err)
	s.Equal(model.GameStatusPlaying, updated.Status)

	stored, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(42, stored.Player1.Score)
}

func (s *StorageSuite) TestUpdateGameRollsBackOnError() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("g1", "alice")))

	boom := errors.New("rejected")
	_, err := s.storage.UpdateGame(s.ctx, "g1", func(g *model.Game) error {
		g.Player1.Score = 42
		return boom
	})
	s.ErrorIs(err, boom)

	stored, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(0, stored.Player1.Score)
}

func (s *StorageSuite) TestUpdateMissingGame() {
	_, err := s.storage.UpdateGame(s.ctx, "nope", func(*model.Game) error { return nil })
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("g1", "alice")))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, "g1"))

	_, err := s.storage.GetGame(s.ctx, "g1")
	s.ErrorIs(err, model.ErrGameNotFound)

	found, err := s.storage.FindWaitingGame(s.ctx, "bob")
	s.Require().NoError(err)
	s.Nil(found)
}

// Waiting-game index

func (s *StorageSuite) TestFindWaitingGameExcludesOwner() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("g1", "alice")))

	found, err := s.storage.FindWaitingGame(s.ctx, "alice")
	s.Require().NoError(err)
	s.Nil(found)

	found, err = s.storage.FindWaitingGame(s.ctx, "bob")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(model.GameID("g1"), found.ID)
}

func (s *StorageSuite) TestPrivateGameNotIndexedAsWaiting() {
	private := s.newGame("g1", "alice")
	private.Private = true
	private.JoinCode = "ABC123"
	s.Require().NoError(s.storage.CreateGame(s.ctx, private))

	found, err := s.storage.FindWaitingGame(s.ctx, "bob")
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *StorageSuite) TestStartedGameLeavesWaitingIndex() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("g1", "alice")))

	_, err := s.storage.UpdateGame(s.ctx, "g1", func(g *model.Game) error {
		g.Status = model.GameStatusPlaying
		g.Player2 = &model.PlayerState{ID: "bob"}
		return nil
	})
	s.Require().NoError(err)

	found, err := s.storage.FindWaitingGame(s.ctx, "carol")
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *StorageSuite) TestFindGameByJoinCode() {
	private := s.newGame("g1", "alice")
	private.Private = true
	private.JoinCode = "ABC123"
	s.Require().NoError(s.storage.CreateGame(s.ctx, private))

	found, err := s.storage.FindGameByJoinCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.GameID("g1"), found.ID)

	_, err = s.storage.FindGameByJoinCode(s.ctx, "WRONG1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Finished-games index

func (s *StorageSuite) TestFinishingIndexesBothPlayers() {
	g := s.newGame("g1", "alice")
	g.Status = model.GameStatusPlaying
	g.Player2 = &model.PlayerState{ID: "bob"}
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))

	_, err := s.storage.UpdateGame(s.ctx, "g1", func(g *model.Game) error {
		g.Status = model.GameStatusFinished
		g.WinnerID = "alice"
		return nil
	})
	s.Require().NoError(err)

	for _, playerID := range []model.PlayerID{"alice", "bob"} {
		games, err := s.storage.ListFinishedGames(s.ctx, playerID)
		s.Require().NoError(err)
		s.Require().Len(games, 1)
		s.Equal(model.GameID("g1"), games[0].ID)
	}
}

func (s *StorageSuite) TestListFinishedGamesEmpty() {
	games, err := s.storage.ListFinishedGames(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestListFinishedGamesSkipsExpired() {
	g := s.newGame("g1", "alice")
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))
	_, err := s.storage.UpdateGame(s.ctx, "g1", func(g *model.Game) error {
		g.Status = model.GameStatusFinished
		return nil
	})
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	games, err := s.storage.ListFinishedGames(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(games)
}

// Matchmaking requests

func (s *StorageSuite) TestMatchmakingRequestLifecycle() {
	req := &model.MatchmakingRequest{
		UserID:      "alice",
		DisplayName: "Alice",
		Status:      model.MatchmakingSearching,
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveMatchmakingRequest(s.ctx, req))

	got, err := s.storage.GetMatchmakingRequest(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(req.DisplayName, got.DisplayName)
	s.True(req.CreatedAt.Equal(got.CreatedAt))

	all, err := s.storage.ListMatchmakingRequests(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)

	s.Require().NoError(s.storage.DeleteMatchmakingRequest(s.ctx, "alice"))
	_, err = s.storage.GetMatchmakingRequest(s.ctx, "alice")
	s.ErrorIs(err, model.ErrRequestNotFound)
}

func (s *StorageSuite) TestExpiredRequestDroppedFromList() {
	req := &model.MatchmakingRequest{UserID: "alice", Status: model.MatchmakingSearching}
	s.Require().NoError(s.storage.SaveMatchmakingRequest(s.ctx, req))

	s.mini.FastForward(2 * time.Hour)

	all, err := s.storage.ListMatchmakingRequests(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

// Presence

func (s *StorageSuite) TestPresenceRoundTrip() {
	p := &model.Presence{
		UserID:    "alice",
		Status:    model.PresenceInGame,
		GameID:    "g1",
		UpdatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SavePresence(s.ctx, p))

	got, err := s.storage.GetPresence(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PresenceInGame, got.Status)
	s.Equal(model.GameID("g1"), got.GameID)
}

func (s *StorageSuite) TestExpiredPresenceReadsAsOffline() {
	p := &model.Presence{UserID: "alice", Status: model.PresenceOnline}
	s.Require().NoError(s.storage.SavePresence(s.ctx, p))

	s.mini.FastForward(2 * time.Minute)

	got, err := s.storage.GetPresence(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PresenceOffline, got.Status)
}

// Word cache

func (s *StorageSuite) TestWordCache() {
	_, found, err := s.storage.GetCachedWord(s.ctx, "CAT")
	s.Require().NoError(err)
	s.False(found)

	s.Require().NoError(s.storage.CacheWord(s.ctx, "CAT", true))
	s.Require().NoError(s.storage.CacheWord(s.ctx, "ZZZ", false))

	valid, found, err := s.storage.GetCachedWord(s.ctx, "CAT")
	s.Require().NoError(err)
	s.True(found)
	s.True(valid)

	valid, found, err = s.storage.GetCachedWord(s.ctx, "ZZZ")
	s.Require().NoError(err)
	s.True(found)
	s.False(valid)
}
