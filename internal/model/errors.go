package model

import "errors"

// Common errors used across the application
var (
	// Not-found errors
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRequestNotFound  = errors.New("matchmaking request not found")

	// Lifecycle errors
	ErrGameNotJoinable   = errors.New("game is not joinable")
	ErrJoinCodeExpired   = errors.New("join code has expired")
	ErrJoinCodeMismatch  = errors.New("join code does not match")
	ErrGameFull          = errors.New("game already has two players")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrGamePaused        = errors.New("game is paused")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotInGame         = errors.New("player is not in this game")
	ErrCannotJoinOwnGame = errors.New("cannot join a game you created")

	// Move validation rejections. Each legality failure has its own
	// sentinel so the submitting client can see why.
	ErrNotYourTurn    = errors.New("not this player's turn")
	ErrTooFewTiles    = errors.New("at least two tiles must be placed")
	ErrNotInLine      = errors.New("placed tiles must share a row or column")
	ErrMustCoverCenter = errors.New("first move must cover the center square")
	ErrNotConnected   = errors.New("placement must connect to existing tiles")
	ErrNotContiguous  = errors.New("placement contains gaps")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidPosition = errors.New("invalid board position")
	ErrNotAWord       = errors.New("word failed validation")
	ErrInvalidLetter  = errors.New("letter must be A-Z")
	ErrTilesNotInRack = errors.New("player does not hold the placed tiles")

	// Resource exhaustion (expected, not erroneous)
	ErrBagTooSmall = errors.New("bag holds fewer than seven tiles")
	ErrRackEmpty   = errors.New("rack is empty")

	// Timer errors
	ErrTimerNotExpired = errors.New("turn timer has not expired")

	// Pause handshake errors
	ErrPauseNotRequested  = errors.New("no pause has been requested")
	ErrPauseAlreadyActive = errors.New("a pause is already in effect")
	ErrCannotAnswerOwnPause = errors.New("pause requester cannot answer the request")

	// Matchmaking errors
	ErrAlreadySearching = errors.New("player already has a matchmaking request")
)
