package service

import (
	"context"
	"encoding/json"

	"github.com/gymdesk/gymdesk-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// BoardEvent is broadcast after every successful ledger write so front-desk
// wall displays refresh without polling.
type BoardEvent struct {
	Type           string `json:"type"`
	ClassID        int    `json:"class_id"`
	MemberID       int    `json:"member_id"`
	OccurrenceDate string `json:"occurrence_date"`
}

// BoardPublisher fans BoardEvents out over Redis PubSub. A nil publisher is
// a no-op, so the engine works without Redis wired.
type BoardPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewBoardPublisher creates a new BoardPublisher.
func NewBoardPublisher(rdb *redis.Client, log zerolog.Logger) *BoardPublisher {
	return &BoardPublisher{
		rdb: rdb,
		log: log.With().Str("component", "board_publisher").Logger(),
	}
}

// Publish sends the event on the board channel. Delivery is best-effort:
// a publish failure is logged, never surfaced to the booking call.
func (p *BoardPublisher) Publish(ctx context.Context, ev BoardEvent) {
	if p == nil || p.rdb == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Msg("Marshal board event")
		return
	}

	if err := p.rdb.Publish(ctx, config.CacheKey.BoardChannel(), payload).Err(); err != nil {
		p.log.Warn().Err(err).Msg("Publish board event")
	}
}
