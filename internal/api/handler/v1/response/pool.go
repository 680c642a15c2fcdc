package response

import "github.com/vietanh2810/squares-pool/internal/domain"

// PaymentResponse reports a committed payment. AssignmentError is set when the
// payment filled the board but the assignment that followed failed; the board
// then stays FILLED until an admin triggers the assignment again.
type PaymentResponse struct {
	Square          domain.Square `json:"square"`
	AssignmentError *Err          `json:"assignmentError,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
