package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	Specialization  string          `json:"specialization"`
	Biography       string          `json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}
