package returns

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusInProcess Status = "in_process"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// transitions for the return lifecycle; rejection is only possible while the
// request is still open.
var transitions = map[Status][]Status{
	StatusRequested: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusInProcess},
	StatusInProcess: {StatusCompleted},
	StatusCompleted: {},
	StatusRejected:  {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Return struct {
	ID           uuid.UUID `json:"id"`
	OrderID      int64     `json:"order_id"`
	UserID       int64     `json:"user_id"`
	Reason       string    `json:"reason"`
	RefundAmount float64   `json:"refund_amount"`
	RefundMethod string    `json:"refund_method"`
	ProofImages  []string  `json:"proof_images"`
	Status       Status    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateInput struct {
	OrderID      int64    `json:"order_id"`
	Reason       string   `json:"reason"`
	RefundMethod string   `json:"refund_method"`
	ProofImages  []string `json:"proof_images"`
}
