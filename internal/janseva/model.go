package janseva

import (
	"time"

	"github.com/google/uuid"
)

// ServiceInfo describes a government service the shop facilitates (Aadhaar
// updates, certificates, bill payments and so on).
type ServiceInfo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	NameHi      *string  `json:"name_hi,omitempty"`
	Description *string  `json:"description,omitempty"`
	Fee         float64  `json:"fee"`
	Documents   []string `json:"documents"`
	Active      bool     `json:"active"`
}

type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusInReview  ApplicationStatus = "in_review"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCompleted ApplicationStatus = "completed"
)

var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted: {StatusInReview, StatusRejected},
	StatusInReview:  {StatusApproved, StatusRejected},
	StatusApproved:  {StatusCompleted},
	StatusRejected:  {},
	StatusCompleted: {},
}

func (s ApplicationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Application struct {
	ID             uuid.UUID         `json:"id"`
	ServiceID      int64             `json:"service_id"`
	UserID         int64             `json:"user_id"`
	ApplicantName  string            `json:"applicant_name"`
	ApplicantPhone string            `json:"applicant_phone"`
	Details        *string           `json:"details,omitempty"`
	Status         ApplicationStatus `json:"status"`
	Note           *string           `json:"note,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type ApplyInput struct {
	ServiceID      int64   `json:"service_id"`
	ApplicantName  string  `json:"applicant_name"`
	ApplicantPhone string  `json:"applicant_phone"`
	Details        *string `json:"details"`
}
