package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/letterduel/letterduel/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes. Every validation rejection has its own code so the
// client always learns why a move was refused.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeGameNotFound      = "GAME_NOT_FOUND"
	CodeRequestNotFound   = "REQUEST_NOT_FOUND"
	CodeNotYourTurn       = "NOT_YOUR_TURN"
	CodeTooFewTiles       = "TOO_FEW_TILES"
	CodeNotInLine         = "NOT_IN_LINE"
	CodeMustCoverCenter   = "MUST_COVER_CENTER"
	CodeNotConnected      = "NOT_CONNECTED"
	CodeNotContiguous     = "NOT_CONTIGUOUS"
	CodeCellOccupied      = "CELL_OCCUPIED"
	CodeInvalidPosition   = "INVALID_POSITION"
	CodeInvalidLetter     = "INVALID_LETTER"
	CodeNotAWord          = "NOT_A_WORD"
	CodeTilesNotInRack    = "TILES_NOT_IN_RACK"
	CodeBagTooSmall       = "BAG_TOO_SMALL"
	CodeRackEmpty         = "RACK_EMPTY"
	CodeGameNotJoinable   = "GAME_NOT_JOINABLE"
	CodeJoinCodeExpired   = "JOIN_CODE_EXPIRED"
	CodeJoinCodeMismatch  = "JOIN_CODE_MISMATCH"
	CodeCannotJoinOwn     = "CANNOT_JOIN_OWN_GAME"
	CodeNotInGame         = "NOT_IN_GAME"
	CodeGamePaused        = "GAME_PAUSED"
	CodeGameFinished      = "GAME_FINISHED"
	CodeGameNotInProgress = "GAME_NOT_IN_PROGRESS"
	CodeTimerNotExpired   = "TIMER_NOT_EXPIRED"
	CodePauseNotRequested = "PAUSE_NOT_REQUESTED"
	CodePauseActive       = "PAUSE_ALREADY_ACTIVE"
	CodeOwnPauseAnswer    = "CANNOT_ANSWER_OWN_PAUSE"
	CodeAlreadySearching  = "ALREADY_SEARCHING"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Not found
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrRequestNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRequestNotFound, "Matchmaking request not found"}}

	// Move validation rejections
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrTooFewTiles):
		return &httpError{http.StatusBadRequest, APIError{CodeTooFewTiles, "At least two tiles must be placed"}}
	case errors.Is(err, model.ErrNotInLine):
		return &httpError{http.StatusBadRequest, APIError{CodeNotInLine, "Placed tiles must share a row or column"}}
	case errors.Is(err, model.ErrMustCoverCenter):
		return &httpError{http.StatusBadRequest, APIError{CodeMustCoverCenter, "First move must cover the center square"}}
	case errors.Is(err, model.ErrNotConnected):
		return &httpError{http.StatusBadRequest, APIError{CodeNotConnected, "Placement must connect to existing tiles"}}
	case errors.Is(err, model.ErrNotContiguous):
		return &httpError{http.StatusBadRequest, APIError{CodeNotContiguous, "Placement contains gaps"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter must be A-Z"}}
	case errors.Is(err, model.ErrNotAWord):
		return &httpError{http.StatusBadRequest, APIError{CodeNotAWord, "Word failed validation"}}
	case errors.Is(err, model.ErrTilesNotInRack):
		return &httpError{http.StatusBadRequest, APIError{CodeTilesNotInRack, "You do not hold those tiles"}}

	// Resource exhaustion
	case errors.Is(err, model.ErrBagTooSmall):
		return &httpError{http.StatusConflict, APIError{CodeBagTooSmall, "Bag holds fewer than seven tiles"}}
	case errors.Is(err, model.ErrRackEmpty):
		return &httpError{http.StatusConflict, APIError{CodeRackEmpty, "No tiles to exchange"}}

	// Lifecycle
	case errors.Is(err, model.ErrGameNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeGameNotJoinable, "Game is not joinable"}}
	case errors.Is(err, model.ErrJoinCodeExpired):
		return &httpError{http.StatusGone, APIError{CodeJoinCodeExpired, "Join code has expired"}}
	case errors.Is(err, model.ErrJoinCodeMismatch):
		return &httpError{http.StatusNotFound, APIError{CodeJoinCodeMismatch, "Join code does not match"}}
	case errors.Is(err, model.ErrCannotJoinOwnGame):
		return &httpError{http.StatusConflict, APIError{CodeCannotJoinOwn, "Cannot join a game you created"}}
	case errors.Is(err, model.ErrNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodeNotInGame, "You are not in this game"}}
	case errors.Is(err, model.ErrGamePaused):
		return &httpError{http.StatusConflict, APIError{CodeGamePaused, "Game is paused"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrGameNotInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameNotInProgress, "Game is not in progress"}}
	case errors.Is(err, model.ErrTimerNotExpired):
		return &httpError{http.StatusConflict, APIError{CodeTimerNotExpired, "Turn timer has not expired"}}

	// Pause handshake
	case errors.Is(err, model.ErrPauseNotRequested):
		return &httpError{http.StatusConflict, APIError{CodePauseNotRequested, "No pause has been requested"}}
	case errors.Is(err, model.ErrPauseAlreadyActive):
		return &httpError{http.StatusConflict, APIError{CodePauseActive, "A pause is already in effect"}}
	case errors.Is(err, model.ErrCannotAnswerOwnPause):
		return &httpError{http.StatusConflict, APIError{CodeOwnPauseAnswer, "Pause requester cannot answer the request"}}

	// Matchmaking
	case errors.Is(err, model.ErrAlreadySearching):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySearching, "Already searching for a match"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
