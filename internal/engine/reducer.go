package engine

import (
	"fmt"
	"sort"
	"time"

	"residencia-backend/internal/models"
	"residencia-backend/internal/store"
)

// reduce maps (state, action) to the next state plus the persistence ops the
// transition implies. Pure and total: it never fails, never performs I/O,
// and never mutates its inputs. Ops are executed later by the engine's
// effect runner; a failed op never rolls the state back.
func reduce(s State, action Action, now time.Time) (State, []store.Op) {
	switch a := action.(type) {
	case AddResident:
		return reduceAddResident(s, a, now)
	case UpdateResident:
		return reduceUpdateResident(s, a, now)
	case DeleteResident:
		return reduceDeleteResident(s, a)
	case AddRoom:
		return reduceAddRoom(s, a)
	case UpdateRoom:
		return reduceUpdateRoom(s, a, now)
	case DeleteRoom:
		return reduceDeleteRoom(s, a, now)
	case AddReservation:
		return reduceAddReservation(s, a, now)
	case UpdateReservation:
		return reduceUpdateReservation(s, a, now)
	case DeleteReservation:
		return reduceDeleteReservation(s, a)
	case AddPayment:
		return reduceAddPayment(s, a)
	case UpdatePayment:
		return reduceUpdatePayment(s, a, now)
	case DeletePayment:
		return reduceDeletePayment(s, a)
	case AddExpense:
		return reduceAddExpense(s, a, now)
	case UpdateExpense:
		return reduceUpdateExpense(s, a, now)
	case DeleteExpense:
		return reduceDeleteExpense(s, a, now)
	case AddMaintenanceTask:
		return reduceAddTask(s, a)
	case UpdateMaintenanceTask:
		return reduceUpdateTask(s, a, now)
	case DeleteMaintenanceTask:
		return reduceDeleteTask(s, a)
	case UpdateConfiguration:
		return reduceUpdateConfiguration(s, a, now)
	case UpdatePettyCash:
		return reduceUpdatePettyCash(s, a, now)
	case SaveMonthlyRates:
		return reduceSaveMonthlyRates(s, a, now)
	case GenerateMonthlyPayments:
		return reduceGenerateMonthlyPayments(s, now)
	case SetUser:
		user := a.User
		s.User = &user
		return s, nil
	case LoadData:
		return reduceLoadData(s, a)
	default:
		return s, nil
	}
}

func reduceAddResident(s State, a AddResident, now time.Time) (State, []store.Op) {
	s.Residents = appendResident(s.Residents, a.Resident)
	s.Rooms = DeriveRooms(s.Rooms, s.Residents)

	if a.Resident.ID == models.GeneralIncomeID {
		return s, nil
	}
	return s, []store.Op{store.InsertOp(store.TableResidents, store.ResidentToRow(a.Resident))}
}

func reduceUpdateResident(s State, a UpdateResident, now time.Time) (State, []store.Op) {
	updated := a.Resident
	old, found := findResident(s.Residents, updated.ID)

	residents := make([]models.Resident, len(s.Residents))
	for i, r := range s.Residents {
		if r.ID == updated.ID {
			residents[i] = updated
		} else {
			residents[i] = r
		}
	}
	s.Residents = residents
	s.Rooms = DeriveRooms(s.Rooms, s.Residents)

	var ops []store.Op
	if updated.ID != models.GeneralIncomeID {
		row := store.ResidentToRow(updated)
		row.UpdatedAt = &now
		ops = append(ops, store.UpdateOp(store.TableResidents, updated.ID, row))
	}

	// Deactivating a resident purges their pending payments.
	if found && old.Status == models.ResidentStatusActive && updated.Status == models.ResidentStatusInactive {
		s.Payments = filterPayments(s.Payments, func(p models.Payment) bool {
			return !(p.ResidentID == updated.ID && p.Status == models.PaymentStatusPending)
		})
		ops = append(ops, store.DeleteWhereOp(store.TablePayments, map[string]string{
			"resident_id": updated.ID,
			"status":      models.PaymentStatusPending,
		}))
	}
	return s, ops
}

func reduceDeleteResident(s State, a DeleteResident) (State, []store.Op) {
	id := a.ResidentID
	s.Residents = filterResidents(s.Residents, func(r models.Resident) bool { return r.ID != id })
	s.Rooms = DeriveRooms(s.Rooms, s.Residents)
	s.Payments = filterPayments(s.Payments, func(p models.Payment) bool { return p.ResidentID != id })
	s.Reservations = filterReservations(s.Reservations, func(r models.Reservation) bool { return r.ResidentID != id })

	if id == models.GeneralIncomeID {
		return s, nil
	}
	return s, []store.Op{
		store.DeleteOp(store.TableResidents, id),
		store.DeleteWhereOp(store.TablePayments, map[string]string{"resident_id": id}),
		store.DeleteWhereOp(store.TableReservations, map[string]string{"resident_id": id}),
	}
}

func reduceAddRoom(s State, a AddRoom) (State, []store.Op) {
	rooms := appendRoom(s.Rooms, a.Room)
	s.Rooms = DeriveRooms(rooms, s.Residents)
	return s, []store.Op{store.InsertOp(store.TableRooms, store.RoomToRow(a.Room))}
}

func reduceUpdateRoom(s State, a UpdateRoom, now time.Time) (State, []store.Op) {
	rooms := make([]models.Room, len(s.Rooms))
	for i, r := range s.Rooms {
		if r.ID == a.Room.ID {
			rooms[i] = a.Room
		} else {
			rooms[i] = r
		}
	}
	s.Rooms = DeriveRooms(rooms, s.Residents)

	row := store.RoomToRow(a.Room)
	row.UpdatedAt = &now
	return s, []store.Op{store.UpdateOp(store.TableRooms, a.Room.ID, row)}
}

func reduceDeleteRoom(s State, a DeleteRoom, now time.Time) (State, []store.Op) {
	roomID := a.RoomID

	var affected []string
	residents := make([]models.Resident, len(s.Residents))
	for i, r := range s.Residents {
		if r.RoomID == roomID {
			affected = append(affected, r.ID)
			r.RoomID = ""
			r.Status = models.ResidentStatusInactive
		}
		residents[i] = r
	}

	affectedSet := make(map[string]bool, len(affected))
	for _, id := range affected {
		affectedSet[id] = true
	}

	s.Residents = residents
	s.Reservations = filterReservations(s.Reservations, func(r models.Reservation) bool { return r.RoomID != roomID })
	s.Payments = filterPayments(s.Payments, func(p models.Payment) bool {
		return !(affectedSet[p.ResidentID] && p.Status == models.PaymentStatusPending)
	})
	s.Rooms = DeriveRooms(
		filterRooms(s.Rooms, func(r models.Room) bool { return r.ID != roomID }),
		s.Residents,
	)

	ops := []store.Op{
		store.DeleteOp(store.TableRooms, roomID),
		store.DeleteWhereOp(store.TableReservations, map[string]string{"room_id": roomID}),
	}
	for _, id := range affected {
		if id == models.GeneralIncomeID {
			continue
		}
		ops = append(ops,
			store.UpdateOp(store.TableResidents, id, map[string]any{
				"room_id":    "",
				"status":     models.ResidentStatusInactive,
				"updated_at": now,
			}),
			store.DeleteWhereOp(store.TablePayments, map[string]string{
				"resident_id": id,
				"status":      models.PaymentStatusPending,
			}),
		)
	}
	return s, ops
}

func reduceAddReservation(s State, a AddReservation, now time.Time) (State, []store.Op) {
	reservation := a.Reservation
	s.Reservations = appendReservation(s.Reservations, reservation)

	// Every reservation books its enrollment fee up front.
	matricula := models.Payment{
		ID:         fmt.Sprintf("matricula-%d-%s", now.UnixMilli(), reservation.ResidentID),
		ResidentID: reservation.ResidentID,
		Amount:     reservation.MatriculaAmount,
		Currency:   "ARS",
		Method:     models.PaymentMethodCash,
		Date:       now,
		Type:       models.PaymentTypeMatricula,
		Status:     models.PaymentStatusPending,
	}
	s.Payments = appendPayment(s.Payments, matricula)

	return s, []store.Op{
		store.InsertOp(store.TableReservations, store.ReservationToRow(reservation)),
		store.InsertOp(store.TablePayments, store.PaymentToRow(matricula)),
	}
}

func reduceUpdateReservation(s State, a UpdateReservation, now time.Time) (State, []store.Op) {
	reservations := make([]models.Reservation, len(s.Reservations))
	for i, r := range s.Reservations {
		if r.ID == a.Reservation.ID {
			reservations[i] = a.Reservation
		} else {
			reservations[i] = r
		}
	}
	s.Reservations = reservations

	row := store.ReservationToRow(a.Reservation)
	row.UpdatedAt = &now
	return s, []store.Op{store.UpdateOp(store.TableReservations, a.Reservation.ID, row)}
}

func reduceDeleteReservation(s State, a DeleteReservation) (State, []store.Op) {
	reservation, found := findReservation(s.Reservations, a.ReservationID)

	s.Reservations = filterReservations(s.Reservations, func(r models.Reservation) bool {
		return r.ID != a.ReservationID
	})
	ops := []store.Op{store.DeleteOp(store.TableReservations, a.ReservationID)}

	if !found {
		return s, ops
	}

	// Cancelling before check-in also removes the placeholder resident and
	// its pending payments. An active resident (post check-in) is left
	// alone; check-in already deleted the reservation, so this branch is
	// unreachable for them.
	resident, ok := findResident(s.Residents, reservation.ResidentID)
	if ok && resident.Status == models.ResidentStatusPending {
		s.Residents = filterResidents(s.Residents, func(r models.Resident) bool {
			return r.ID != reservation.ResidentID
		})
		s.Rooms = DeriveRooms(s.Rooms, s.Residents)
		s.Payments = filterPayments(s.Payments, func(p models.Payment) bool {
			return !(p.ResidentID == reservation.ResidentID && p.Status == models.PaymentStatusPending)
		})
		ops = append(ops,
			store.DeleteOp(store.TableResidents, reservation.ResidentID),
			store.DeleteWhereOp(store.TablePayments, map[string]string{
				"resident_id": reservation.ResidentID,
				"status":      models.PaymentStatusPending,
			}),
		)
	}
	return s, ops
}

func reduceAddPayment(s State, a AddPayment) (State, []store.Op) {
	s.Payments = appendPayment(s.Payments, a.Payment)
	return s, []store.Op{store.InsertOp(store.TablePayments, store.PaymentToRow(a.Payment))}
}

func reduceUpdatePayment(s State, a UpdatePayment, now time.Time) (State, []store.Op) {
	updated := a.Payment
	original, found := findPayment(s.Payments, updated.ID)

	payments := make([]models.Payment, len(s.Payments))
	for i, p := range s.Payments {
		if p.ID == updated.ID {
			payments[i] = updated
		} else {
			payments[i] = p
		}
	}

	row := store.PaymentToRow(updated)
	row.UpdatedAt = &now
	ops := []store.Op{store.UpdateOp(store.TablePayments, updated.ID, row)}

	// Collecting less than owed closes the original at the collected amount
	// and opens a pending payment for the shortfall.
	if found && updated.Status == models.PaymentStatusCompleted && updated.Amount < original.Amount {
		remainder := models.Payment{
			ID:               fmt.Sprintf("partial-%d-%s", now.UnixMilli(), updated.ResidentID),
			ResidentID:       updated.ResidentID,
			Amount:           original.Amount - updated.Amount,
			Currency:         updated.Currency,
			Method:           updated.Method,
			Date:             now,
			Type:             updated.Type,
			Status:           models.PaymentStatusPending,
			IsPartialPayment: true,
		}
		payments = append(payments, remainder)
		ops = append(ops, store.InsertOp(store.TablePayments, store.PaymentToRow(remainder)))
	}

	s.Payments = payments
	return s, ops
}

func reduceDeletePayment(s State, a DeletePayment) (State, []store.Op) {
	s.Payments = filterPayments(s.Payments, func(p models.Payment) bool { return p.ID != a.PaymentID })
	return s, []store.Op{store.DeleteOp(store.TablePayments, a.PaymentID)}
}

func reduceAddExpense(s State, a AddExpense, now time.Time) (State, []store.Op) {
	expense := a.Expense
	s.Expenses = appendExpense(s.Expenses, expense)
	ops := []store.Op{store.InsertOp(store.TableExpenses, store.ExpenseToRow(expense))}

	// Paying from petty cash debits the balance; a negative amount is a
	// top-up and credits it.
	if expense.Method == models.PaymentMethodPettyCash {
		s.PettyCash -= expense.Amount
		s.Configuration.PettyCash = s.PettyCash
		ops = append(ops, pettyCashOp(s.Configuration.ID, s.PettyCash, now))
	}
	return s, ops
}

func reduceUpdateExpense(s State, a UpdateExpense, now time.Time) (State, []store.Op) {
	expenses := make([]models.Expense, len(s.Expenses))
	for i, e := range s.Expenses {
		if e.ID == a.Expense.ID {
			expenses[i] = a.Expense
		} else {
			expenses[i] = e
		}
	}
	s.Expenses = expenses

	row := store.ExpenseToRow(a.Expense)
	row.UpdatedAt = &now
	return s, []store.Op{store.UpdateOp(store.TableExpenses, a.Expense.ID, row)}
}

func reduceDeleteExpense(s State, a DeleteExpense, now time.Time) (State, []store.Op) {
	expense, found := findExpense(s.Expenses, a.ExpenseID)
	if !found {
		return s, nil
	}
	s.Expenses = filterExpenses(s.Expenses, func(e models.Expense) bool { return e.ID != a.ExpenseID })
	ops := []store.Op{store.DeleteOp(store.TableExpenses, a.ExpenseID)}

	// Deleting a petty-cash expense reverses the debit it caused.
	if expense.Method == models.PaymentMethodPettyCash {
		s.PettyCash += expense.Amount
		s.Configuration.PettyCash = s.PettyCash
		ops = append(ops, pettyCashOp(s.Configuration.ID, s.PettyCash, now))
	}
	return s, ops
}

func reduceAddTask(s State, a AddMaintenanceTask) (State, []store.Op) {
	s.MaintenanceTasks = appendTask(s.MaintenanceTasks, a.Task)
	return s, []store.Op{store.InsertOp(store.TableMaintenanceTasks, store.MaintenanceTaskToRow(a.Task))}
}

func reduceUpdateTask(s State, a UpdateMaintenanceTask, now time.Time) (State, []store.Op) {
	updated := a.Task
	old, found := findTask(s.MaintenanceTasks, updated.ID)

	// CompletedDate follows the status transition, not the caller.
	if updated.Status == models.TaskStatusCompleted {
		if updated.CompletedDate == nil {
			if found && old.Status == models.TaskStatusCompleted && old.CompletedDate != nil {
				updated.CompletedDate = old.CompletedDate
			} else {
				stamp := now
				updated.CompletedDate = &stamp
			}
		}
	} else {
		updated.CompletedDate = nil
	}

	tasks := make([]models.MaintenanceTask, len(s.MaintenanceTasks))
	for i, t := range s.MaintenanceTasks {
		if t.ID == updated.ID {
			tasks[i] = updated
		} else {
			tasks[i] = t
		}
	}
	s.MaintenanceTasks = tasks

	row := store.MaintenanceTaskToRow(updated)
	row.UpdatedAt = &now
	return s, []store.Op{store.UpdateOp(store.TableMaintenanceTasks, updated.ID, row)}
}

func reduceDeleteTask(s State, a DeleteMaintenanceTask) (State, []store.Op) {
	s.MaintenanceTasks = filterTasks(s.MaintenanceTasks, func(t models.MaintenanceTask) bool {
		return t.ID != a.TaskID
	})
	return s, []store.Op{store.DeleteOp(store.TableMaintenanceTasks, a.TaskID)}
}

func reduceUpdateConfiguration(s State, a UpdateConfiguration, now time.Time) (State, []store.Op) {
	cfg := a.Configuration
	s.Configuration = cfg
	// The top-level scalar is authoritative; adopting the incoming value
	// keeps the two views equal instead of drifting.
	s.PettyCash = cfg.PettyCash

	row := store.ConfigurationToRow(cfg)
	row.UpdatedAt = &now
	return s, []store.Op{store.UpsertOp(store.TableConfigurations, row, "id")}
}

func reduceUpdatePettyCash(s State, a UpdatePettyCash, now time.Time) (State, []store.Op) {
	s.PettyCash = a.Amount
	s.Configuration.PettyCash = a.Amount
	return s, []store.Op{pettyCashOp(s.Configuration.ID, a.Amount, now)}
}

func reduceSaveMonthlyRates(s State, a SaveMonthlyRates, now time.Time) (State, []store.Op) {
	entry := models.MonthlyRateHistory{
		ID:           fmt.Sprintf("history-%d", now.UnixMilli()),
		Month:        a.Month,
		ExchangeRate: s.Configuration.ExchangeRate,
		RoomRatesUSD: s.Configuration.RoomRates,
		RoomRatesARS: s.Configuration.RoomRatesARS,
		CreatedDate:  now,
		CreatedBy:    a.UserID,
	}

	history := make([]models.MonthlyRateHistory, len(s.Configuration.MonthlyHistory))
	copy(history, s.Configuration.MonthlyHistory)

	replaced := false
	for i, h := range history {
		if h.Month == a.Month {
			entry.ID = h.ID // keep the stored identity on re-save
			history[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, entry)
	}

	sort.Slice(history, func(i, j int) bool { return history[i].Month > history[j].Month })
	if len(history) > models.MonthlyHistoryCap {
		history = history[:models.MonthlyHistoryCap]
	}

	s.Configuration.MonthlyHistory = history
	s.Configuration.LastUpdated = now

	return s, []store.Op{
		store.UpsertOp(store.TableMonthlyRateHistory, store.MonthlyRateHistoryToRow(entry), "month"),
		store.UpdateOp(store.TableConfigurations, s.Configuration.ID, map[string]any{
			"last_updated": now,
			"updated_at":   now,
		}),
	}
}

func reduceGenerateMonthlyPayments(s State, now time.Time) (State, []store.Op) {
	var generated []models.Payment
	var ops []store.Op

	for _, resident := range s.Residents {
		if resident.Status != models.ResidentStatusActive {
			continue
		}
		room, ok := findRoom(s.Rooms, resident.RoomID)
		if !ok {
			continue
		}
		if hasPendingMonthlyRent(s.Payments, resident.ID) {
			continue
		}
		payment := models.Payment{
			ID:         fmt.Sprintf("monthly-%d-%s", now.UnixMilli(), resident.ID),
			ResidentID: resident.ID,
			Amount:     s.Configuration.RoomRatesARS.ForType(room.Type),
			Currency:   "ARS",
			Method:     models.PaymentMethodCash,
			Date:       now,
			Type:       models.PaymentTypeMonthlyRent,
			Status:     models.PaymentStatusPending,
		}
		generated = append(generated, payment)
		ops = append(ops, store.InsertOp(store.TablePayments, store.PaymentToRow(payment)))
	}

	if len(generated) == 0 {
		return s, nil
	}
	payments := make([]models.Payment, 0, len(s.Payments)+len(generated))
	payments = append(payments, s.Payments...)
	payments = append(payments, generated...)
	s.Payments = payments
	return s, ops
}

func reduceLoadData(s State, a LoadData) (State, []store.Op) {
	if a.Residents != nil {
		s.Residents = *a.Residents
	}
	if a.Rooms != nil {
		residents := []models.Resident{}
		if a.Residents != nil {
			residents = *a.Residents
		}
		s.Rooms = DeriveRooms(*a.Rooms, residents)
	}
	if a.Reservations != nil {
		s.Reservations = *a.Reservations
	}
	if a.Payments != nil {
		s.Payments = *a.Payments
	}
	if a.Expenses != nil {
		s.Expenses = *a.Expenses
	}
	if a.MaintenanceTasks != nil {
		s.MaintenanceTasks = *a.MaintenanceTasks
	}
	if a.Configuration != nil {
		s.Configuration = *a.Configuration
	}
	if a.PettyCash != nil {
		s.PettyCash = *a.PettyCash
	}
	if a.IsLoading != nil {
		s.IsLoading = *a.IsLoading
	}
	if a.IsConnected != nil {
		s.IsConnected = *a.IsConnected
	}
	if a.IsDemoMode != nil {
		s.IsDemoMode = *a.IsDemoMode
	}
	return s, nil
}

func pettyCashOp(configID string, balance float64, now time.Time) store.Op {
	return store.UpdateOp(store.TableConfigurations, configID, map[string]any{
		"petty_cash": balance,
		"updated_at": now,
	})
}
