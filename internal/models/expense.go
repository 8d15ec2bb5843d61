package models

import "time"

// Expense is an operational outlay. Amount is sign-overloaded: positive is an
// outflow, negative is a petty-cash top-up. An expense paid from petty cash
// debits the petty-cash balance at creation time.
type Expense struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"` // "USD" | "ARS"
	Date        time.Time `json:"date"`
	Method      string    `json:"method"` // same set as payment methods
	Receipt     string    `json:"receipt,omitempty"`
}
