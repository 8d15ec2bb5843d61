package models

import "time"

// RoomRates holds one rate per capacity tier.
type RoomRates struct {
	Individual float64 `json:"individual"`
	Double     float64 `json:"double"`
	Triple     float64 `json:"triple"`
	Quadruple  float64 `json:"quadruple"`
	Quintuple  float64 `json:"quintuple"`
}

// ForType returns the rate for a room type, 0 for unknown types.
func (r RoomRates) ForType(roomType string) float64 {
	switch roomType {
	case RoomTypeIndividual:
		return r.Individual
	case RoomTypeDouble:
		return r.Double
	case RoomTypeTriple:
		return r.Triple
	case RoomTypeQuadruple:
		return r.Quadruple
	case RoomTypeQuintuple:
		return r.Quintuple
	default:
		return 0
	}
}

// MonthlyRateHistory is a snapshot of the rates in force for one month.
// Month is keyed "YYYY-MM".
type MonthlyRateHistory struct {
	ID           string    `json:"id"`
	Month        string    `json:"month"`
	ExchangeRate float64   `json:"exchange_rate"`
	RoomRatesUSD RoomRates `json:"room_rates_usd"`
	RoomRatesARS RoomRates `json:"room_rates_ars"`
	CreatedDate  time.Time `json:"created_date"`
	CreatedBy    string    `json:"created_by"`
}

// MonthlyHistoryCap bounds the retained rate history (most recent months).
const MonthlyHistoryCap = 24

// Configuration is the process-wide singleton. RoomRatesARS normally derives
// from RoomRates x ExchangeRate but can be overridden manually. PettyCash
// mirrors the top-level state scalar for row compatibility; the state scalar
// is authoritative.
type Configuration struct {
	ID                string               `json:"id"`
	ExchangeRate      float64              `json:"exchange_rate"` // USD -> ARS
	LastUpdated       time.Time            `json:"last_updated"`
	RoomRates         RoomRates            `json:"room_rates"` // USD
	RoomRatesARS      RoomRates            `json:"room_rates_ars"`
	PaymentMethods    []string             `json:"payment_methods"`
	ExpenseCategories []string             `json:"expense_categories"`
	MaintenanceAreas  []string             `json:"maintenance_areas"`
	MonthlyHistory    []MonthlyRateHistory `json:"monthly_history"`
	PettyCash         float64              `json:"petty_cash"`
}
