package engine

import "residencia-backend/internal/models"

// State is the full in-memory domain model plus operating-mode flags. It is
// replaced wholesale (by value) on every dispatch; the reducer never mutates
// collections in place, so a snapshot handed to a caller stays stable.
type State struct {
	User             *models.User             `json:"user,omitempty"`
	Rooms            []models.Room            `json:"rooms"`
	Residents        []models.Resident        `json:"residents"`
	Reservations     []models.Reservation     `json:"reservations"`
	Payments         []models.Payment         `json:"payments"`
	Expenses         []models.Expense         `json:"expenses"`
	MaintenanceTasks []models.MaintenanceTask `json:"maintenance_tasks"`
	Configuration    models.Configuration     `json:"configuration"`
	PettyCash        float64                  `json:"petty_cash"`
	IsLoading        bool                     `json:"is_loading"`
	IsConnected      bool                     `json:"is_connected"`
	IsDemoMode       bool                     `json:"is_demo_mode"`
}

// DefaultConfiguration is the configuration in force before any data loads
// and whenever the remote store has no configuration row.
func DefaultConfiguration() models.Configuration {
	rates := models.RoomRates{
		Individual: 245,
		Double:     190,
		Triple:     165,
		Quadruple:  150,
		Quintuple:  135,
	}
	const exchangeRate = 1300
	return models.Configuration{
		ID:           "default-config-id",
		ExchangeRate: exchangeRate,
		RoomRates:    rates,
		RoomRatesARS: models.RoomRates{
			Individual: rates.Individual * exchangeRate,
			Double:     rates.Double * exchangeRate,
			Triple:     rates.Triple * exchangeRate,
			Quadruple:  rates.Quadruple * exchangeRate,
			Quintuple:  rates.Quintuple * exchangeRate,
		},
		PaymentMethods: []string{models.PaymentMethodCash, models.PaymentMethodTransfer},
		ExpenseCategories: []string{
			"Alquiler", "Aysa", "Luz", "ABL", "Wifi", "Seguro",
			"Compras Limpieza", "Meli", "Eduardo", "Honorarios Cont",
			"Mantenimiento Edu", "IIBB", "Mantenimiento", "Monotributo",
			"Publicidad", "Serv. Emergencias", "Fumig. y Limp. Tanques",
			"Inversión/Mejora",
		},
		MaintenanceAreas: []string{
			"Habitación", "Sala de Estar", "Escalera principal",
			"Escalera Terraza", "Pasillo", "Oficina", "Hall",
			"Cocina 1", "Cocina 2", "Cocina 3",
			"Baño 1", "Baño 2", "Baño 3", "Baño 4", "Baño 5",
			"Heladera 1", "Heladera 2", "Heladera 3", "Heladera 4",
		},
		MonthlyHistory: []models.MonthlyRateHistory{},
		PettyCash:      50000,
	}
}

// InitialState is the pre-bootstrap state: empty collections, defaults, demo
// flags until the load sequencer decides otherwise.
func InitialState() State {
	return State{
		User: &models.User{
			ID:    "1",
			Name:  "Admin",
			Email: "admin@residencia.com",
			Role:  "admin",
		},
		Rooms:            []models.Room{},
		Residents:        []models.Resident{},
		Reservations:     []models.Reservation{},
		Payments:         []models.Payment{},
		Expenses:         []models.Expense{},
		MaintenanceTasks: []models.MaintenanceTask{},
		Configuration:    DefaultConfiguration(),
		PettyCash:        50000,
		IsLoading:        true,
		IsConnected:      false,
		IsDemoMode:       true,
	}
}
