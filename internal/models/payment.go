package models

import "time"

const (
	PaymentMethodCash      = "cash"
	PaymentMethodTransfer  = "transfer"
	PaymentMethodCard      = "card"
	PaymentMethodPettyCash = "petty_cash"
)

const (
	PaymentTypeMonthlyRent = "monthly_rent"
	PaymentTypeMatricula   = "matricula"
	PaymentTypeDeposit     = "deposit"
	PaymentTypeUtilities   = "utilities"
	PaymentTypeOther       = "other"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusCancelled = "cancelled"
)

// Payment is money owed by or received from a resident (or the
// general-income sentinel). Status moves one way: pending to completed or
// pending to cancelled. Completing a pending payment below the owed amount
// closes it at the collected amount and spawns a new pending payment for the
// shortfall flagged IsPartialPayment.
type Payment struct {
	ID               string    `json:"id"`
	ResidentID       string    `json:"resident_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"` // "USD" | "ARS"
	Method           string    `json:"method"`
	Date             time.Time `json:"date"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	ReceiptNumber    string    `json:"receipt_number,omitempty"`
	IsPartialPayment bool      `json:"is_partial_payment,omitempty"`
}
