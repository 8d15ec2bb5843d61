// Package sampledata bundles the offline demo dataset: a small, coherent
// residence used whenever no remote store is reachable.
package sampledata

import (
	"time"

	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/timeutil"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, timeutil.BuenosAires)
}

// Configuration returns the demo configuration: the engine defaults with the
// petty-cash balance the demo expenses below are consistent with.
func Configuration() models.Configuration {
	return engine.DefaultConfiguration()
}

func Rooms() []models.Room {
	return []models.Room{
		{ID: "room-101", Number: "101", Type: models.RoomTypeIndividual, Capacity: 1, MonthlyRate: 245, Gender: "male"},
		{ID: "room-102", Number: "102", Type: models.RoomTypeDouble, Capacity: 2, MonthlyRate: 190, Gender: "male"},
		{ID: "room-103", Number: "103", Type: models.RoomTypeTriple, Capacity: 3, MonthlyRate: 165, Gender: "female"},
		{ID: "room-201", Number: "201", Type: models.RoomTypeQuadruple, Capacity: 4, MonthlyRate: 150, Gender: "male"},
		{ID: "room-202", Number: "202", Type: models.RoomTypeDouble, Capacity: 2, MonthlyRate: 190, Gender: "female"},
		{ID: "room-301", Number: "301", Type: models.RoomTypeQuintuple, Capacity: 5, MonthlyRate: 135, Gender: "male"},
	}
}

func Residents() []models.Resident {
	return []models.Resident{
		{
			ID: "resident-1", FirstName: "Joaquín", LastName: "Pereyra",
			Nationality: "argentina", Email: "joaquin.pereyra@example.com", Phone: "+54 11 5555-0101",
			EmergencyContact: models.EmergencyContact{Name: "Marta Pereyra", Phone: "+54 11 5555-0102", Relationship: "madre"},
			RoomID:           "room-101", CheckInDate: date(2025, time.March, 1),
			Status:        models.ResidentStatusActive,
			BehaviorNotes: []models.BehaviorNote{}, Documents: []models.Document{},
		},
		{
			ID: "resident-2", FirstName: "Matías", LastName: "Rodríguez",
			Nationality: "uruguay", Email: "matias.rodriguez@example.com", Phone: "+598 99 555 010",
			EmergencyContact: models.EmergencyContact{Name: "Lucía Rodríguez", Phone: "+598 99 555 011", Relationship: "hermana"},
			RoomID:           "room-102", CheckInDate: date(2025, time.February, 15),
			Status:        models.ResidentStatusActive,
			BehaviorNotes: []models.BehaviorNote{}, Documents: []models.Document{},
		},
		{
			ID: "resident-3", FirstName: "Camila", LastName: "Santos",
			Nationality: "brasil", Email: "camila.santos@example.com", Phone: "+55 11 95555-0100",
			EmergencyContact: models.EmergencyContact{Name: "Paulo Santos", Phone: "+55 11 95555-0101", Relationship: "padre"},
			RoomID:           "room-103", CheckInDate: date(2025, time.March, 10),
			Status:        models.ResidentStatusActive,
			BehaviorNotes: []models.BehaviorNote{}, Documents: []models.Document{},
		},
		{
			ID: "resident-4", FirstName: "Felipe", LastName: "Aravena",
			Nationality: "chile", Email: "felipe.aravena@example.com", Phone: "+56 9 5555 0100",
			EmergencyContact: models.EmergencyContact{Name: "Carolina Aravena", Phone: "+56 9 5555 0101", Relationship: "madre"},
			RoomID:           "room-201", CheckInDate: date(2025, time.January, 20),
			Status:        models.ResidentStatusActive,
			BehaviorNotes: []models.BehaviorNote{}, Documents: []models.Document{},
		},
		{
			ID: "resident-5", FirstName: "Valentina", LastName: "Ríos",
			Nationality: "colombia", Email: "valentina.rios@example.com", Phone: "+57 300 5550100",
			EmergencyContact: models.EmergencyContact{Name: "Andrés Ríos", Phone: "+57 300 5550101", Relationship: "padre"},
			RoomID:           "room-202", CheckInDate: date(2024, time.November, 5),
			Status:        models.ResidentStatusInactive,
			BehaviorNotes: []models.BehaviorNote{}, Documents: []models.Document{},
		},
		{
			// Placeholder created by the open reservation below.
			ID: "resident-6", FirstName: "Santiago", LastName: "Benítez",
			Nationality:      "paraguay",
			EmergencyContact: models.EmergencyContact{},
			RoomID:           "room-301", CheckInDate: date(2025, time.September, 1),
			Status:        models.ResidentStatusPending,
			BehaviorNotes: []models.BehaviorNote{}, Documents: []models.Document{},
		},
	}
}

func Reservations() []models.Reservation {
	end := date(2025, time.December, 20)
	return []models.Reservation{
		{
			ID: "reservation-1", ResidentID: "resident-6", RoomID: "room-301",
			StartDate: date(2025, time.September, 1), EndDate: &end,
			Status: models.ReservationStatusPending, MatriculaAmount: 175500,
		},
	}
}

func Payments() []models.Payment {
	return []models.Payment{
		{
			ID: "payment-1", ResidentID: "resident-1", Amount: 318500, Currency: "ARS",
			Method: models.PaymentMethodTransfer, Date: date(2025, time.August, 2),
			Type: models.PaymentTypeMonthlyRent, Status: models.PaymentStatusCompleted,
			ReceiptNumber: "RES-000101",
		},
		{
			ID: "payment-2", ResidentID: "resident-2", Amount: 247000, Currency: "ARS",
			Method: models.PaymentMethodCash, Date: date(2025, time.August, 3),
			Type: models.PaymentTypeMonthlyRent, Status: models.PaymentStatusPending,
		},
		{
			ID: "payment-3", ResidentID: "resident-3", Amount: 214500, Currency: "ARS",
			Method: models.PaymentMethodCash, Date: date(2025, time.August, 5),
			Type: models.PaymentTypeMonthlyRent, Status: models.PaymentStatusPending,
		},
		{
			ID: "payment-4", ResidentID: "resident-6", Amount: 175500, Currency: "ARS",
			Method: models.PaymentMethodCash, Date: date(2025, time.August, 12),
			Type: models.PaymentTypeMatricula, Status: models.PaymentStatusPending,
		},
	}
}

func Expenses() []models.Expense {
	return []models.Expense{
		{
			ID: "expense-1", Category: "Luz", Description: "Factura Edesur agosto",
			Amount: 98000, Currency: "ARS", Date: date(2025, time.August, 8),
			Method: models.PaymentMethodTransfer,
		},
		{
			ID: "expense-2", Category: "Compras Limpieza", Description: "Artículos de limpieza",
			Amount: 15400, Currency: "ARS", Date: date(2025, time.August, 11),
			Method: models.PaymentMethodPettyCash,
		},
		{
			ID: "expense-3", Category: "Wifi", Description: "Fibertel agosto",
			Amount: 32000, Currency: "ARS", Date: date(2025, time.August, 6),
			Method: models.PaymentMethodCard,
		},
	}
}

func MaintenanceTasks() []models.MaintenanceTask {
	completed := date(2025, time.August, 9)
	return []models.MaintenanceTask{
		{
			ID: "task-1", Area: "Cocina 2", Description: "Pérdida en la canilla de la bacha",
			Priority: models.TaskPriorityHigh, Status: models.TaskStatusInProgress,
			AssignedDate: date(2025, time.August, 7),
		},
		{
			ID: "task-2", Area: "Baño 3", Description: "Cambiar flexible del inodoro",
			Priority: models.TaskPriorityMedium, Status: models.TaskStatusCompleted,
			AssignedDate: date(2025, time.August, 4), CompletedDate: &completed,
		},
		{
			ID: "task-3", Area: "Escalera principal", Description: "Luminaria del descanso quemada",
			Priority: models.TaskPriorityLow, Status: models.TaskStatusPending,
			AssignedDate: date(2025, time.August, 13),
		},
	}
}
