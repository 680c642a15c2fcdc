package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Square is one cell of a board. It exists once claimed; GridPosition and the
// digits stay nil until the board is assigned.
type Square struct {
	ID            uint          `json:"id"`
	BoardID       uint          `json:"boardId"`
	OwnerID       string        `json:"ownerId"`
	GridPosition  *int          `json:"gridPosition"`
	WinningDigit  *int          `json:"winningDigit"`
	LosingDigit   *int          `json:"losingDigit"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	ClaimedAt     time.Time     `json:"claimedAt"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}

func (s Square) IsPaid() bool {
	return s.PaymentStatus == PaymentPaid
}

func (s Square) IsAssigned() bool {
	return s.GridPosition != nil
}

// Row is the grid row of an assigned square, -1 otherwise.
func (s Square) Row() int {
	if s.GridPosition == nil {
		return -1
	}

	return *s.GridPosition / GridSize
}

// Column is the grid column of an assigned square, -1 otherwise.
func (s Square) Column() int {
	if s.GridPosition == nil {
		return -1
	}

	return *s.GridPosition % GridSize
}
