package model

import "time"

// Transaction is an append-only ledger record. Once written it is never
// updated or deleted.
type Transaction struct {
	ID          int       `json:"id"`
	Owner       string    `json:"userId"`
	Lend        bool      `json:"Lend"`
	Amount      float64   `json:"Amount"`
	To          string    `json:"To"`
	Description string    `json:"Description"`
	CreatedAt   time.Time `json:"Time"`
}

// RecordTransaction is the request payload of POST /trans. Trans selects the
// plain recording mode; lend mode additionally requires From ("me" or a
// counterparty name).
type RecordTransaction struct {
	Trans       bool    `json:"trans"`
	From        string  `json:"From"`
	To          string  `json:"to" validate:"required"`
	Amount      float64 `json:"amt" validate:"required,gt=0"`
	Description string  `json:"desc"`
}

// OTPRequest is the payload of POST /sendotp.
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}
