package engine

import "residencia-backend/internal/models"

// Copy-on-write helpers: the reducer never appends to or filters a slice it
// received, it always builds a fresh one.

func appendResident(in []models.Resident, r models.Resident) []models.Resident {
	out := make([]models.Resident, 0, len(in)+1)
	out = append(out, in...)
	return append(out, r)
}

func appendRoom(in []models.Room, r models.Room) []models.Room {
	out := make([]models.Room, 0, len(in)+1)
	out = append(out, in...)
	return append(out, r)
}

func appendReservation(in []models.Reservation, r models.Reservation) []models.Reservation {
	out := make([]models.Reservation, 0, len(in)+1)
	out = append(out, in...)
	return append(out, r)
}

func appendPayment(in []models.Payment, p models.Payment) []models.Payment {
	out := make([]models.Payment, 0, len(in)+1)
	out = append(out, in...)
	return append(out, p)
}

func appendExpense(in []models.Expense, e models.Expense) []models.Expense {
	out := make([]models.Expense, 0, len(in)+1)
	out = append(out, in...)
	return append(out, e)
}

func appendTask(in []models.MaintenanceTask, t models.MaintenanceTask) []models.MaintenanceTask {
	out := make([]models.MaintenanceTask, 0, len(in)+1)
	out = append(out, in...)
	return append(out, t)
}

func filterResidents(in []models.Resident, keep func(models.Resident) bool) []models.Resident {
	out := make([]models.Resident, 0, len(in))
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterRooms(in []models.Room, keep func(models.Room) bool) []models.Room {
	out := make([]models.Room, 0, len(in))
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterReservations(in []models.Reservation, keep func(models.Reservation) bool) []models.Reservation {
	out := make([]models.Reservation, 0, len(in))
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterPayments(in []models.Payment, keep func(models.Payment) bool) []models.Payment {
	out := make([]models.Payment, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func filterExpenses(in []models.Expense, keep func(models.Expense) bool) []models.Expense {
	out := make([]models.Expense, 0, len(in))
	for _, e := range in {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func filterTasks(in []models.MaintenanceTask, keep func(models.MaintenanceTask) bool) []models.MaintenanceTask {
	out := make([]models.MaintenanceTask, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func findResident(in []models.Resident, id string) (models.Resident, bool) {
	for _, r := range in {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resident{}, false
}

func findRoom(in []models.Room, id string) (models.Room, bool) {
	for _, r := range in {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}

func findReservation(in []models.Reservation, id string) (models.Reservation, bool) {
	for _, r := range in {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reservation{}, false
}

func findPayment(in []models.Payment, id string) (models.Payment, bool) {
	for _, p := range in {
		if p.ID == id {
			return p, true
		}
	}
	return models.Payment{}, false
}

func findExpense(in []models.Expense, id string) (models.Expense, bool) {
	for _, e := range in {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

func findTask(in []models.MaintenanceTask, id string) (models.MaintenanceTask, bool) {
	for _, t := range in {
		if t.ID == id {
			return t, true
		}
	}
	return models.MaintenanceTask{}, false
}

func hasPendingMonthlyRent(payments []models.Payment, residentID string) bool {
	for _, p := range payments {
		if p.ResidentID == residentID && p.Type == models.PaymentTypeMonthlyRent && p.Status == models.PaymentStatusPending {
			return true
		}
	}
	return false
}
