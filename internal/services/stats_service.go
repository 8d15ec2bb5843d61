package services

import (
	"context"
	"encoding/json"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/timeutil"
)

// DashboardStats are the aggregates the dashboard landing page shows.
type DashboardStats struct {
	TotalRooms       int     `json:"total_rooms"`
	TotalBeds        int     `json:"total_beds"`
	OccupiedBeds     int     `json:"occupied_beds"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	ActiveResidents  int     `json:"active_residents"`
	PendingResidents int     `json:"pending_residents"`
	OpenReservations int     `json:"open_reservations"`
	PendingPayments  int     `json:"pending_payments"`
	PendingAmountARS float64 `json:"pending_amount_ars"`
	MonthIncomeARS   float64 `json:"month_income_ars"`
	MonthExpensesARS float64 `json:"month_expenses_ars"`
	PettyCash        float64 `json:"petty_cash"`
	OpenTasks        int     `json:"open_tasks"`
	DemoMode         bool    `json:"demo_mode"`
}

// StatsService computes dashboard aggregates from the state snapshot, with a
// Redis cache in front. The cache is invalidated on every dispatch, so a hit
// is always current.
type StatsService struct {
	Engine *engine.Engine
}

func NewStatsService(e *engine.Engine) *StatsService {
	return &StatsService{Engine: e}
}

func (s *StatsService) Stats(ctx context.Context) (DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.StatsKey); ok {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return stats, nil
		}
	}

	stats := s.compute()

	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(ctx, cache.StatsKey, data, cache.StatsTTL)
	}
	return stats, nil
}

func (s *StatsService) compute() DashboardStats {
	state := s.Engine.Snapshot()
	monthKey := timeutil.MonthKey(timeutil.Now())

	var stats DashboardStats
	stats.TotalRooms = len(state.Rooms)
	for _, room := range state.Rooms {
		stats.TotalBeds += room.Capacity
		stats.OccupiedBeds += room.CurrentOccupancy
	}
	if stats.TotalBeds > 0 {
		stats.OccupancyRate = float64(stats.OccupiedBeds) / float64(stats.TotalBeds) * 100
	}

	for _, resident := range state.Residents {
		switch resident.Status {
		case models.ResidentStatusActive:
			stats.ActiveResidents++
		case models.ResidentStatusPending:
			stats.PendingResidents++
		}
	}

	stats.OpenReservations = len(state.Reservations)

	for _, payment := range state.Payments {
		switch payment.Status {
		case models.PaymentStatusPending:
			stats.PendingPayments++
			stats.PendingAmountARS += paymentARS(state.Configuration, payment.Amount, payment.Currency)
		case models.PaymentStatusCompleted:
			if timeutil.MonthKey(payment.Date) == monthKey {
				stats.MonthIncomeARS += paymentARS(state.Configuration, payment.Amount, payment.Currency)
			}
		}
	}

	for _, expense := range state.Expenses {
		// Negative amounts are petty-cash top-ups, not spending.
		if expense.Amount > 0 && timeutil.MonthKey(expense.Date) == monthKey {
			stats.MonthExpensesARS += paymentARS(state.Configuration, expense.Amount, expense.Currency)
		}
	}

	for _, task := range state.MaintenanceTasks {
		if task.Status != models.TaskStatusCompleted {
			stats.OpenTasks++
		}
	}

	stats.PettyCash = state.PettyCash
	stats.DemoMode = state.IsDemoMode
	return stats
}

func paymentARS(cfg models.Configuration, amount float64, currency string) float64 {
	if currency == "USD" {
		return amount * cfg.ExchangeRate
	}
	return amount
}
