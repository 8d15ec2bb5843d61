package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residencia-backend/internal/models"
)

func TestResidentRowRoundTrip(t *testing.T) {
	in := models.Resident{
		ID:          "resident-1",
		FirstName:   "Juan",
		LastName:    "Perez",
		Nationality: "Argentina",
		Email:       "juan@example.com",
		Phone:       "+54 11 5555-0001",
		EmergencyContact: models.EmergencyContact{
			Name:         "Maria Perez",
			Phone:        "+54 11 5555-0002",
			Relationship: "madre",
		},
		RoomID:      "room-101",
		CheckInDate: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		Status:      "active",
		BehaviorNotes: []models.BehaviorNote{
			{ID: "note-1", Date: time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC), Type: "verbal", Description: "llegada tarde", Severity: "low"},
		},
		Documents: []models.Document{},
	}

	out := ResidentToRow(in).Resident()
	assert.Equal(t, in, out)
}

func TestResidentRowNormalizesNilSlices(t *testing.T) {
	row := ResidentRow{ID: "resident-1", Status: "active"}
	r := row.Resident()
	assert.NotNil(t, r.BehaviorNotes)
	assert.NotNil(t, r.Documents)
	assert.Empty(t, r.BehaviorNotes)
}

func TestRoomRowDefaultsGender(t *testing.T) {
	// Rows written before the gender column existed come back empty.
	r := RoomRow{ID: "room-101", Number: "101", Type: "double", Capacity: 2}.Room()
	assert.Equal(t, "male", r.Gender)

	r = RoomRow{ID: "room-102", Gender: "female"}.Room()
	assert.Equal(t, "female", r.Gender)
}

func TestReservationRowDiscount(t *testing.T) {
	in := models.Reservation{
		ID:              "reservation-1",
		ResidentID:      "resident-6",
		RoomID:          "room-301",
		StartDate:       time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC),
		Status:          "confirmed",
		MatriculaAmount: 175500,
		Discount:        &models.Discount{Type: "percentage", Value: 10},
	}

	row := ReservationToRow(in)
	assert.Equal(t, "percentage", row.DiscountType)
	assert.Equal(t, 10.0, row.DiscountValue)

	out := row.Reservation()
	require.NotNil(t, out.Discount)
	assert.Equal(t, in, out)
}

func TestReservationRowNoDiscount(t *testing.T) {
	row := ReservationRow{ID: "reservation-2", ResidentID: "resident-1", RoomID: "room-101", Status: "confirmed"}
	out := row.Reservation()
	assert.Nil(t, out.Discount)
}

func TestConfigurationRowAttachesHistory(t *testing.T) {
	cfg := models.Configuration{
		ID:           "config-1",
		ExchangeRate: 1300,
		LastUpdated:  time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC),
		RoomRates: models.RoomRates{
			Individual: 245, Double: 190, Triple: 165, Quadruple: 150, Quintuple: 135,
		},
		PaymentMethods:    []string{"cash", "transfer"},
		ExpenseCategories: []string{"limpieza"},
		MaintenanceAreas:  []string{"cocina"},
		PettyCash:         50000,
		MonthlyHistory: []models.MonthlyRateHistory{
			{ID: "history-1", Month: "2025-08", ExchangeRate: 1300},
		},
	}

	row := ConfigurationToRow(cfg)
	out := row.Configuration(cfg.MonthlyHistory)
	assert.Equal(t, cfg, out)

	// History is stored in its own table; with no rows the slice is still
	// usable.
	out = row.Configuration(nil)
	assert.NotNil(t, out.MonthlyHistory)
	assert.Empty(t, out.MonthlyHistory)
}

func TestMaintenanceTaskRowNormalizesPhotos(t *testing.T) {
	task := MaintenanceTaskRow{ID: "task-1", Area: "cocina", Status: "pending"}.MaintenanceTask()
	assert.NotNil(t, task.Photos)
}
