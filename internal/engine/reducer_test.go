package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residencia-backend/internal/models"
	"residencia-backend/internal/store"
)

var testNow = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

func testState() State {
	s := InitialState()
	s.Configuration = DefaultConfiguration()
	s.Rooms = []models.Room{
		{ID: "r1", Number: "101", Type: models.RoomTypeIndividual, Capacity: 1, MonthlyRate: 245},
		{ID: "r2", Number: "102", Type: models.RoomTypeDouble, Capacity: 2, MonthlyRate: 190},
	}
	s.Rooms = DeriveRooms(s.Rooms, s.Residents)
	return s
}

func activeResident(id, roomID string) models.Resident {
	return models.Resident{
		ID:        id,
		FirstName: "Test",
		LastName:  id,
		RoomID:    roomID,
		Status:    models.ResidentStatusActive,
	}
}

func opKinds(ops []store.Op) []string {
	kinds := make([]string, len(ops))
	for i, op := range ops {
		kinds[i] = op.Kind + ":" + op.Table
	}
	return kinds
}

func TestDeriveRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", Capacity: 1},
		{ID: "r2", Capacity: 2},
	}
	residents := []models.Resident{
		{ID: "a", RoomID: "r1", Status: models.ResidentStatusActive},
		{ID: "b", RoomID: "r2", Status: models.ResidentStatusActive},
		{ID: "c", RoomID: "r2", Status: models.ResidentStatusPending},  // not counted
		{ID: "d", RoomID: "r2", Status: models.ResidentStatusInactive}, // not counted
		{ID: "e", RoomID: "missing", Status: models.ResidentStatusActive},
	}

	derived := DeriveRooms(rooms, residents)

	assert.Equal(t, 1, derived[0].CurrentOccupancy)
	assert.Equal(t, models.RoomStatusOccupied, derived[0].Status)
	assert.Equal(t, 1, derived[1].CurrentOccupancy)
	assert.Equal(t, models.RoomStatusOccupied, derived[1].Status)

	// Input slice untouched
	assert.Equal(t, 0, rooms[0].CurrentOccupancy)
}

func TestAddResident(t *testing.T) {
	t.Run("occupies room and persists", func(t *testing.T) {
		s := testState()
		next, ops := reduce(s, AddResident{Resident: activeResident("a", "r1")}, testNow)

		assert.Equal(t, 1, next.Rooms[0].CurrentOccupancy)
		assert.Equal(t, models.RoomStatusOccupied, next.Rooms[0].Status)
		require.Len(t, ops, 1)
		assert.Equal(t, store.OpInsert, ops[0].Kind)
		assert.Equal(t, store.TableResidents, ops[0].Table)
	})

	t.Run("general income sentinel stays in memory", func(t *testing.T) {
		s := testState()
		next, ops := reduce(s, AddResident{Resident: models.Resident{
			ID:     models.GeneralIncomeID,
			Status: models.ResidentStatusActive,
		}}, testNow)

		assert.Len(t, next.Residents, 1)
		assert.Empty(t, ops)
	})
}

func TestUpdateResidentDeactivation(t *testing.T) {
	s := testState()
	s, _ = reduce(s, AddResident{Resident: activeResident("a", "r1")}, testNow)
	s, _ = reduce(s, AddPayment{Payment: models.Payment{
		ID: "p1", ResidentID: "a", Amount: 1000, Status: models.PaymentStatusPending,
	}}, testNow)
	s, _ = reduce(s, AddPayment{Payment: models.Payment{
		ID: "p2", ResidentID: "a", Amount: 2000, Status: models.PaymentStatusCompleted,
	}}, testNow)

	deactivated := activeResident("a", "r1")
	deactivated.Status = models.ResidentStatusInactive
	next, ops := reduce(s, UpdateResident{Resident: deactivated}, testNow)

	// Pending payment purged, completed kept
	require.Len(t, next.Payments, 1)
	assert.Equal(t, "p2", next.Payments[0].ID)

	// Room freed
	assert.Equal(t, 0, next.Rooms[0].CurrentOccupancy)
	assert.Equal(t, models.RoomStatusAvailable, next.Rooms[0].Status)

	assert.Equal(t, []string{
		"update:residents",
		"delete:payments",
	}, opKinds(ops))
}

func TestDeleteResidentCascade(t *testing.T) {
	s := testState()
	s, _ = reduce(s, AddResident{Resident: activeResident("a", "r1")}, testNow)
	s, _ = reduce(s, AddPayment{Payment: models.Payment{ID: "p1", ResidentID: "a", Status: models.PaymentStatusCompleted}}, testNow)
	s, _ = reduce(s, AddPayment{Payment: models.Payment{ID: "p2", ResidentID: "other", Status: models.PaymentStatusPending}}, testNow)

	next, ops := reduce(s, DeleteResident{ResidentID: "a"}, testNow)

	assert.Empty(t, next.Residents)
	require.Len(t, next.Payments, 1)
	assert.Equal(t, "p2", next.Payments[0].ID)
	assert.Equal(t, 0, next.Rooms[0].CurrentOccupancy)

	assert.Equal(t, []string{
		"delete:residents",
		"delete:payments",
		"delete:reservations",
	}, opKinds(ops))
}

func TestDeleteRoomCascade(t *testing.T) {
	s := testState()
	s, _ = reduce(s, AddResident{Resident: activeResident("a", "r1")}, testNow)
	s, _ = reduce(s, AddResident{Resident: activeResident("b", "r2")}, testNow)
	s, _ = reduce(s, AddPayment{Payment: models.Payment{ID: "p1", ResidentID: "a", Status: models.PaymentStatusPending}}, testNow)
	s, _ = reduce(s, AddPayment{Payment: models.Payment{ID: "p2", ResidentID: "a", Status: models.PaymentStatusCompleted}}, testNow)
	s.Reservations = []models.Reservation{{ID: "res1", ResidentID: "x", RoomID: "r1"}}

	next, ops := reduce(s, DeleteRoom{RoomID: "r1"}, testNow)

	// Room gone
	require.Len(t, next.Rooms, 1)
	assert.Equal(t, "r2", next.Rooms[0].ID)

	// Occupant detached and deactivated
	resident := next.Residents[0]
	assert.Equal(t, "a", resident.ID)
	assert.Equal(t, "", resident.RoomID)
	assert.Equal(t, models.ResidentStatusInactive, resident.Status)

	// Reservations for the room gone, pending payment purged, completed kept
	assert.Empty(t, next.Reservations)
	require.Len(t, next.Payments, 1)
	assert.Equal(t, "p2", next.Payments[0].ID)

	// Other room untouched
	assert.Equal(t, models.ResidentStatusActive, next.Residents[1].Status)

	assert.Equal(t, []string{
		"delete:rooms",
		"delete:reservations",
		"update:residents",
		"delete:payments",
	}, opKinds(ops))
}

func TestAddReservationBooksMatricula(t *testing.T) {
	s := testState()
	next, ops := reduce(s, AddReservation{Reservation: models.Reservation{
		ID:              "res1",
		ResidentID:      "a",
		RoomID:          "r1",
		Status:          models.ReservationStatusPending,
		MatriculaAmount: 175500,
	}}, testNow)

	require.Len(t, next.Payments, 1)
	matricula := next.Payments[0]
	assert.Equal(t, fmt.Sprintf("matricula-%d-a", testNow.UnixMilli()), matricula.ID)
	assert.Equal(t, models.PaymentTypeMatricula, matricula.Type)
	assert.Equal(t, models.PaymentStatusPending, matricula.Status)
	assert.Equal(t, 175500.0, matricula.Amount)
	assert.Equal(t, "ARS", matricula.Currency)

	assert.Equal(t, []string{
		"insert:reservations",
		"insert:payments",
	}, opKinds(ops))
}

func TestDeleteReservation(t *testing.T) {
	setup := func() State {
		s := testState()
		placeholder := activeResident("a", "r1")
		placeholder.Status = models.ResidentStatusPending
		s, _ = reduce(s, AddResident{Resident: placeholder}, testNow)
		s, _ = reduce(s, AddReservation{Reservation: models.Reservation{
			ID: "res1", ResidentID: "a", RoomID: "r1", MatriculaAmount: 1000,
		}}, testNow)
		return s
	}

	t.Run("pending placeholder is removed with its payments", func(t *testing.T) {
		s := setup()
		next, ops := reduce(s, DeleteReservation{ReservationID: "res1"}, testNow)

		assert.Empty(t, next.Reservations)
		assert.Empty(t, next.Residents)
		assert.Empty(t, next.Payments)
		assert.Equal(t, []string{
			"delete:reservations",
			"delete:residents",
			"delete:payments",
		}, opKinds(ops))
	})

	t.Run("active resident survives", func(t *testing.T) {
		s := setup()
		active := activeResident("a", "r1")
		s, _ = reduce(s, UpdateResident{Resident: active}, testNow)

		next, ops := reduce(s, DeleteReservation{ReservationID: "res1"}, testNow)

		assert.Empty(t, next.Reservations)
		require.Len(t, next.Residents, 1)
		assert.Equal(t, []string{"delete:reservations"}, opKinds(ops))
	})
}

func TestUpdatePaymentPartialSplit(t *testing.T) {
	s := testState()
	s, _ = reduce(s, AddPayment{Payment: models.Payment{
		ID: "p1", ResidentID: "a", Amount: 100000, Currency: "ARS",
		Type: models.PaymentTypeMonthlyRent, Status: models.PaymentStatusPending,
	}}, testNow)

	collected := models.Payment{
		ID: "p1", ResidentID: "a", Amount: 60000, Currency: "ARS",
		Method: models.PaymentMethodCash,
		Type:   models.PaymentTypeMonthlyRent, Status: models.PaymentStatusCompleted,
	}
	next, ops := reduce(s, UpdatePayment{Payment: collected}, testNow)

	require.Len(t, next.Payments, 2)
	assert.Equal(t, 60000.0, next.Payments[0].Amount)
	assert.Equal(t, models.PaymentStatusCompleted, next.Payments[0].Status)

	remainder := next.Payments[1]
	assert.Equal(t, fmt.Sprintf("partial-%d-a", testNow.UnixMilli()), remainder.ID)
	assert.Equal(t, 40000.0, remainder.Amount)
	assert.Equal(t, models.PaymentStatusPending, remainder.Status)
	assert.True(t, remainder.IsPartialPayment)
	assert.Equal(t, models.PaymentTypeMonthlyRent, remainder.Type)

	assert.Equal(t, []string{
		"update:payments",
		"insert:payments",
	}, opKinds(ops))

	t.Run("full collection does not split", func(t *testing.T) {
		s := testState()
		s, _ = reduce(s, AddPayment{Payment: models.Payment{
			ID: "p1", Amount: 100000, Status: models.PaymentStatusPending,
		}}, testNow)

		full := models.Payment{ID: "p1", Amount: 100000, Status: models.PaymentStatusCompleted}
		next, _ := reduce(s, UpdatePayment{Payment: full}, testNow)
		assert.Len(t, next.Payments, 1)
	})
}

func TestGenerateMonthlyPayments(t *testing.T) {
	s := testState()
	s, _ = reduce(s, AddResident{Resident: activeResident("a", "r1")}, testNow)
	s, _ = reduce(s, AddResident{Resident: activeResident("b", "r2")}, testNow)
	inactive := activeResident("c", "r2")
	inactive.Status = models.ResidentStatusInactive
	s, _ = reduce(s, AddResident{Resident: inactive}, testNow)

	next, ops := reduce(s, GenerateMonthlyPayments{}, testNow)

	// One pending rent per active resident, at the ARS rate for the room type
	require.Len(t, next.Payments, 2)
	assert.Len(t, ops, 2)
	assert.Equal(t, s.Configuration.RoomRatesARS.Individual, next.Payments[0].Amount)
	assert.Equal(t, s.Configuration.RoomRatesARS.Double, next.Payments[1].Amount)

	// Idempotent while rents are still pending
	again, ops2 := reduce(next, GenerateMonthlyPayments{}, testNow)
	assert.Len(t, again.Payments, 2)
	assert.Empty(t, ops2)
}

func TestExpensePettyCash(t *testing.T) {
	t.Run("petty cash expense debits the balance", func(t *testing.T) {
		s := testState()
		next, ops := reduce(s, AddExpense{Expense: models.Expense{
			ID: "e1", Amount: 5000, Method: models.PaymentMethodPettyCash,
		}}, testNow)

		assert.Equal(t, 45000.0, next.PettyCash)
		assert.Equal(t, 45000.0, next.Configuration.PettyCash)
		assert.Equal(t, []string{
			"insert:expenses",
			"update:configurations",
		}, opKinds(ops))
	})

	t.Run("negative amount tops up", func(t *testing.T) {
		s := testState()
		next, _ := reduce(s, AddExpense{Expense: models.Expense{
			ID: "e1", Amount: -10000, Method: models.PaymentMethodPettyCash,
		}}, testNow)
		assert.Equal(t, 60000.0, next.PettyCash)
	})

	t.Run("other methods leave the balance alone", func(t *testing.T) {
		s := testState()
		next, ops := reduce(s, AddExpense{Expense: models.Expense{
			ID: "e1", Amount: 5000, Method: models.PaymentMethodTransfer,
		}}, testNow)
		assert.Equal(t, 50000.0, next.PettyCash)
		assert.Len(t, ops, 1)
	})

	t.Run("deleting a petty cash expense reverses the debit", func(t *testing.T) {
		s := testState()
		s, _ = reduce(s, AddExpense{Expense: models.Expense{
			ID: "e1", Amount: 5000, Method: models.PaymentMethodPettyCash,
		}}, testNow)

		next, ops := reduce(s, DeleteExpense{ExpenseID: "e1"}, testNow)
		assert.Empty(t, next.Expenses)
		assert.Equal(t, 50000.0, next.PettyCash)
		assert.Equal(t, []string{
			"delete:expenses",
			"update:configurations",
		}, opKinds(ops))
	})

	t.Run("deleting an unknown expense is a no-op", func(t *testing.T) {
		s := testState()
		next, ops := reduce(s, DeleteExpense{ExpenseID: "ghost"}, testNow)
		assert.Equal(t, s.PettyCash, next.PettyCash)
		assert.Empty(t, ops)
	})
}

func TestUpdatePettyCash(t *testing.T) {
	s := testState()
	next, ops := reduce(s, UpdatePettyCash{Amount: 80000}, testNow)

	assert.Equal(t, 80000.0, next.PettyCash)
	assert.Equal(t, 80000.0, next.Configuration.PettyCash)
	require.Len(t, ops, 1)
	assert.Equal(t, store.TableConfigurations, ops[0].Table)
}

func TestUpdateConfigurationAdoptsPettyCash(t *testing.T) {
	s := testState()
	cfg := s.Configuration
	cfg.ExchangeRate = 1500
	cfg.PettyCash = 75000

	next, ops := reduce(s, UpdateConfiguration{Configuration: cfg}, testNow)

	assert.Equal(t, 1500.0, next.Configuration.ExchangeRate)
	assert.Equal(t, 75000.0, next.PettyCash)
	require.Len(t, ops, 1)
	assert.Equal(t, store.OpUpsert, ops[0].Kind)
	assert.Equal(t, "id", ops[0].OnConflict)
}

func TestSaveMonthlyRates(t *testing.T) {
	t.Run("snapshots current rates under the month key", func(t *testing.T) {
		s := testState()
		next, ops := reduce(s, SaveMonthlyRates{Month: "2025-08", UserID: "u1"}, testNow)

		require.Len(t, next.Configuration.MonthlyHistory, 1)
		entry := next.Configuration.MonthlyHistory[0]
		assert.Equal(t, "2025-08", entry.Month)
		assert.Equal(t, s.Configuration.ExchangeRate, entry.ExchangeRate)
		assert.Equal(t, s.Configuration.RoomRates, entry.RoomRatesUSD)
		assert.Equal(t, "u1", entry.CreatedBy)

		assert.Equal(t, []string{
			"upsert:monthly_rate_history",
			"update:configurations",
		}, opKinds(ops))
		assert.Equal(t, "month", ops[0].OnConflict)
	})

	t.Run("re-saving a month replaces it and keeps its identity", func(t *testing.T) {
		s := testState()
		s, _ = reduce(s, SaveMonthlyRates{Month: "2025-08", UserID: "u1"}, testNow)
		firstID := s.Configuration.MonthlyHistory[0].ID

		s.Configuration.ExchangeRate = 1400
		next, _ := reduce(s, SaveMonthlyRates{Month: "2025-08", UserID: "u2"}, testNow.Add(time.Hour))

		require.Len(t, next.Configuration.MonthlyHistory, 1)
		assert.Equal(t, firstID, next.Configuration.MonthlyHistory[0].ID)
		assert.Equal(t, 1400.0, next.Configuration.MonthlyHistory[0].ExchangeRate)
	})

	t.Run("history is capped and sorted newest first", func(t *testing.T) {
		s := testState()
		for i := 0; i < models.MonthlyHistoryCap+6; i++ {
			month := fmt.Sprintf("%04d-%02d", 2020+i/12, 1+i%12)
			s, _ = reduce(s, SaveMonthlyRates{Month: month}, testNow.Add(time.Duration(i)*time.Minute))
		}

		history := s.Configuration.MonthlyHistory
		require.Len(t, history, models.MonthlyHistoryCap)
		for i := 1; i < len(history); i++ {
			assert.Greater(t, history[i-1].Month, history[i].Month)
		}
	})
}

func TestUpdateTaskCompletedDate(t *testing.T) {
	s := testState()
	s, _ = reduce(s, AddMaintenanceTask{Task: models.MaintenanceTask{
		ID: "t1", Status: models.TaskStatusPending, AssignedDate: testNow,
	}}, testNow)

	completed := models.MaintenanceTask{ID: "t1", Status: models.TaskStatusCompleted, AssignedDate: testNow}
	s, _ = reduce(s, UpdateMaintenanceTask{Task: completed}, testNow)
	require.NotNil(t, s.MaintenanceTasks[0].CompletedDate)
	assert.Equal(t, testNow, *s.MaintenanceTasks[0].CompletedDate)

	// Re-saving an already completed task keeps the original stamp
	later := testNow.Add(48 * time.Hour)
	s, _ = reduce(s, UpdateMaintenanceTask{Task: completed}, later)
	assert.Equal(t, testNow, *s.MaintenanceTasks[0].CompletedDate)

	// Reverting clears it
	reverted := models.MaintenanceTask{ID: "t1", Status: models.TaskStatusInProgress, AssignedDate: testNow}
	s, _ = reduce(s, UpdateMaintenanceTask{Task: reverted}, later)
	assert.Nil(t, s.MaintenanceTasks[0].CompletedDate)
}

func TestLoadData(t *testing.T) {
	t.Run("replaces supplied collections and derives rooms", func(t *testing.T) {
		s := testState()
		rooms := []models.Room{{ID: "r9", Capacity: 2}}
		residents := []models.Resident{{ID: "a", RoomID: "r9", Status: models.ResidentStatusActive}}
		demo := true
		next, ops := reduce(s, LoadData{
			Rooms:      &rooms,
			Residents:  &residents,
			IsDemoMode: &demo,
		}, testNow)

		require.Len(t, next.Rooms, 1)
		assert.Equal(t, 1, next.Rooms[0].CurrentOccupancy)
		assert.True(t, next.IsDemoMode)
		assert.Empty(t, ops)

		// Collections not named are untouched
		assert.Equal(t, s.Payments, next.Payments)
		assert.Equal(t, s.Configuration, next.Configuration)
	})

	t.Run("nil fields leave state alone", func(t *testing.T) {
		s := testState()
		next, _ := reduce(s, LoadData{}, testNow)
		assert.Equal(t, s.Rooms, next.Rooms)
		assert.Equal(t, s.PettyCash, next.PettyCash)
	})
}
