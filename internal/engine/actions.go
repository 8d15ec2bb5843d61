package engine

import "residencia-backend/internal/models"

// Action is the sealed catalogue of state transitions. Every action is
// handled totally by the reducer; unrecognized actions leave the state
// untouched.
type Action interface {
	isAction()
}

type AddRoom struct{ Room models.Room }
type UpdateRoom struct{ Room models.Room }
type DeleteRoom struct{ RoomID string }

type AddResident struct{ Resident models.Resident }
type UpdateResident struct{ Resident models.Resident }
type DeleteResident struct{ ResidentID string }

type AddReservation struct{ Reservation models.Reservation }
type UpdateReservation struct{ Reservation models.Reservation }
type DeleteReservation struct{ ReservationID string }

type AddPayment struct{ Payment models.Payment }
type UpdatePayment struct{ Payment models.Payment }
type DeletePayment struct{ PaymentID string }

type AddExpense struct{ Expense models.Expense }
type UpdateExpense struct{ Expense models.Expense }
type DeleteExpense struct{ ExpenseID string }

type AddMaintenanceTask struct{ Task models.MaintenanceTask }
type UpdateMaintenanceTask struct{ Task models.MaintenanceTask }
type DeleteMaintenanceTask struct{ TaskID string }

type UpdateConfiguration struct{ Configuration models.Configuration }
type UpdatePettyCash struct{ Amount float64 }

// SaveMonthlyRates snapshots the current rates under a "YYYY-MM" month key.
type SaveMonthlyRates struct {
	Month  string
	UserID string
}

// GenerateMonthlyPayments synthesizes one pending monthly-rent payment for
// every active resident who does not already have one. Idempotent.
type GenerateMonthlyPayments struct{}

// SetUser replaces the signed-in user on the snapshot.
type SetUser struct{ User models.User }

// LoadData wholesale-replaces the supplied collections; nil fields are left
// untouched. Issued only by the bootstrap sequencer.
type LoadData struct {
	Rooms            *[]models.Room
	Residents        *[]models.Resident
	Reservations     *[]models.Reservation
	Payments         *[]models.Payment
	Expenses         *[]models.Expense
	MaintenanceTasks *[]models.MaintenanceTask
	Configuration    *models.Configuration
	PettyCash        *float64
	IsLoading        *bool
	IsConnected      *bool
	IsDemoMode       *bool
}

func (AddRoom) isAction()                 {}
func (UpdateRoom) isAction()              {}
func (DeleteRoom) isAction()              {}
func (AddResident) isAction()             {}
func (UpdateResident) isAction()          {}
func (DeleteResident) isAction()          {}
func (AddReservation) isAction()          {}
func (UpdateReservation) isAction()       {}
func (DeleteReservation) isAction()       {}
func (AddPayment) isAction()              {}
func (UpdatePayment) isAction()           {}
func (DeletePayment) isAction()           {}
func (AddExpense) isAction()              {}
func (UpdateExpense) isAction()           {}
func (DeleteExpense) isAction()           {}
func (AddMaintenanceTask) isAction()      {}
func (UpdateMaintenanceTask) isAction()   {}
func (DeleteMaintenanceTask) isAction()   {}
func (UpdateConfiguration) isAction()     {}
func (UpdatePettyCash) isAction()         {}
func (SaveMonthlyRates) isAction()        {}
func (GenerateMonthlyPayments) isAction() {}
func (SetUser) isAction()                 {}
func (LoadData) isAction()                {}
