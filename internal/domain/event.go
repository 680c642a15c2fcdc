package domain

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventSquareClaimed       EventType = "square_claimed"
	EventPaymentConfirmed    EventType = "payment_confirmed"
	EventPaymentNotification EventType = "payment_notification"
	EventBoardStatusChange   EventType = "board_status_change"
	EventBoardAssigned       EventType = "board_assigned"
	EventScoreUpdate         EventType = "score_update"
	EventWinnerAnnounced     EventType = "winner_announced"
	EventWinnerNotification  EventType = "winner_notification"
	EventSquaresReleased     EventType = "squares_released"
)

// Event is the envelope delivered to subscribers of a topic.
type Event struct {
	Type      EventType `json:"type"`
	BoardID   uint      `json:"boardId"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

func BoardTopic(boardID uint) string {
	return fmt.Sprintf("board:%d", boardID)
}

func UserTopic(ownerID string) string {
	return "user:" + ownerID
}
