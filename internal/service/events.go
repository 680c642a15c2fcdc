package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

// EventPublisher delivers an event to a topic without blocking.
type EventPublisher interface {
	Publish(topic string, event domain.Event) int
}

type SquaresClaimedPayload struct {
	OwnerID        string          `json:"ownerId"`
	Squares        []domain.Square `json:"squares"`
	ClaimedSquares int             `json:"claimedSquares"`
	Remaining      int             `json:"remaining"`
}

type PaymentConfirmedPayload struct {
	Square      domain.Square `json:"square"`
	PaidSquares int           `json:"paidSquares"`
}

type StatusChangePayload struct {
	From domain.BoardStatus `json:"from"`
	To   domain.BoardStatus `json:"to"`
}

type ScorePayload struct {
	Game domain.Game `json:"game"`
}

type WinnerPayload struct {
	Game   domain.Game     `json:"game"`
	Square domain.Square   `json:"square"`
	Payout decimal.Decimal `json:"payout"`
}

type SquaresReleasedPayload struct {
	SquareIDs []uint `json:"squareIds"`
}

type emitter struct {
	events EventPublisher
	now    func() time.Time
}

func (e emitter) toBoard(boardID uint, typ domain.EventType, payload any) {
	e.events.Publish(domain.BoardTopic(boardID), domain.Event{
		Type:      typ,
		BoardID:   boardID,
		Payload:   payload,
		Timestamp: e.now(),
	})
}

func (e emitter) toUser(ownerID string, boardID uint, typ domain.EventType, payload any) {
	e.events.Publish(domain.UserTopic(ownerID), domain.Event{
		Type:      typ,
		BoardID:   boardID,
		Payload:   payload,
		Timestamp: e.now(),
	})
}
