package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/letterduel/letterduel/internal/model"
)

// Broadcaster publishes game change events to subscribed clients. Both
// players observe every transition through their own subscription; nobody
// is pushed a direct signal out of band.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends a game event to all clients subscribed to the game.
// Best-effort: if nobody is subscribed or marshalling fails, the game
// transition has already committed and is unaffected.
func (b *Broadcaster) Publish(gameID model.GameID, eventType model.EventType, playerID model.PlayerID, payload any) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	event := model.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		GameID:    gameID,
		PlayerID:  playerID,
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to marshal event",
			slog.String("game", string(gameID)),
			slog.String("type", string(eventType)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(eventType), string(data))
}
