package request

// FindMatchRequest is the request body for entering matchmaking
type FindMatchRequest struct {
	DisplayName string `json:"display_name,omitempty"`
}

// CreatePrivateRequest is the request body for creating a private game
type CreatePrivateRequest struct {
	DisplayName string `json:"display_name,omitempty"`
}

// JoinByCodeRequest is the request body for joining a private game
type JoinByCodeRequest struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name,omitempty"`
}

// Placement is a single tile placement within a move
type Placement struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

// SubmitMoveRequest is the request body for submitting a move
type SubmitMoveRequest struct {
	Placements []Placement `json:"placements"`
}

// ExchangeRequest is the request body for exchanging tiles
type ExchangeRequest struct {
	Letters string `json:"letters"`
}

// AnswerPauseRequest is the request body for answering a pause request
type AnswerPauseRequest struct {
	Accept bool `json:"accept"`
}
