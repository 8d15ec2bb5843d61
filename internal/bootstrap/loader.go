// Package bootstrap loads the initial application state: every table in
// parallel when a remote store is configured, the bundled sample dataset when
// it is not or when any read fails.
package bootstrap

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/sampledata"
	"residencia-backend/internal/store"
)

// LoadTimeout bounds the whole remote read phase. A slow or unreachable
// store must not keep the server from starting in demo mode.
const LoadTimeout = 20 * time.Second

type Loader struct {
	Store  store.Store
	Engine *engine.Engine

	// Demo forces the sample dataset without touching the store.
	Demo bool
}

// LoadAll populates the engine and returns true when live data was loaded.
// Failure is never fatal: any read error falls back to the sample dataset
// wholesale so the state is always internally consistent.
func (l *Loader) LoadAll(ctx context.Context) bool {
	if l.Demo {
		log.Println("[Bootstrap] Demo mode, loading sample data")
		l.loadSample()
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	data, err := l.fetch(ctx)
	if err != nil {
		log.Printf("[Bootstrap] Remote load failed, falling back to sample data: %v", err)
		l.loadSample()
		return false
	}

	l.Engine.Dispatch(data.action(false))
	log.Printf("[Bootstrap] Loaded %d residents, %d rooms, %d payments from store",
		len(data.residents), len(data.rooms), len(data.payments))
	return true
}

type snapshot struct {
	rooms        []store.RoomRow
	residents    []store.ResidentRow
	reservations []store.ReservationRow
	payments     []store.PaymentRow
	expenses     []store.ExpenseRow
	tasks        []store.MaintenanceTaskRow
	configs      []store.ConfigurationRow
	history      []store.MonthlyRateHistoryRow
}

func (l *Loader) fetch(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableRooms, &snap.rooms) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableResidents, &snap.residents) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableReservations, &snap.reservations) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TablePayments, &snap.payments) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableExpenses, &snap.expenses) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableMaintenanceTasks, &snap.tasks) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableConfigurations, &snap.configs) })
	g.Go(func() error { return l.Store.SelectAll(ctx, store.TableMonthlyRateHistory, &snap.history) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

type loaded struct {
	rooms        []models.Room
	residents    []models.Resident
	reservations []models.Reservation
	payments     []models.Payment
	expenses     []models.Expense
	tasks        []models.MaintenanceTask
	config       models.Configuration
}

func (snap *snapshot) domain() loaded {
	var d loaded
	d.rooms = make([]models.Room, 0, len(snap.rooms))
	for _, r := range snap.rooms {
		d.rooms = append(d.rooms, r.Room())
	}
	d.residents = make([]models.Resident, 0, len(snap.residents))
	for _, r := range snap.residents {
		d.residents = append(d.residents, r.Resident())
	}
	d.reservations = make([]models.Reservation, 0, len(snap.reservations))
	for _, r := range snap.reservations {
		d.reservations = append(d.reservations, r.Reservation())
	}
	d.payments = make([]models.Payment, 0, len(snap.payments))
	for _, r := range snap.payments {
		d.payments = append(d.payments, r.Payment())
	}
	d.expenses = make([]models.Expense, 0, len(snap.expenses))
	for _, r := range snap.expenses {
		d.expenses = append(d.expenses, r.Expense())
	}
	d.tasks = make([]models.MaintenanceTask, 0, len(snap.tasks))
	for _, r := range snap.tasks {
		d.tasks = append(d.tasks, r.MaintenanceTask())
	}

	history := make([]models.MonthlyRateHistory, 0, len(snap.history))
	for _, r := range snap.history {
		history = append(history, r.MonthlyRateHistory())
	}
	if len(snap.configs) > 0 {
		d.config = snap.configs[0].Configuration(history)
	} else {
		d.config = engine.DefaultConfiguration()
		d.config.MonthlyHistory = history
	}
	return d
}

func (snap *snapshot) action(demo bool) engine.LoadData {
	d := snap.domain()
	connected := !demo
	notLoading := false
	return engine.LoadData{
		Rooms:            &d.rooms,
		Residents:        &d.residents,
		Reservations:     &d.reservations,
		Payments:         &d.payments,
		Expenses:         &d.expenses,
		MaintenanceTasks: &d.tasks,
		Configuration:    &d.config,
		PettyCash:        &d.config.PettyCash,
		IsLoading:        &notLoading,
		IsConnected:      &connected,
		IsDemoMode:       &demo,
	}
}

func (l *Loader) loadSample() {
	rooms := sampledata.Rooms()
	residents := sampledata.Residents()
	reservations := sampledata.Reservations()
	payments := sampledata.Payments()
	expenses := sampledata.Expenses()
	tasks := sampledata.MaintenanceTasks()
	config := sampledata.Configuration()
	demo := true
	connected := false
	notLoading := false
	l.Engine.Dispatch(engine.LoadData{
		Rooms:            &rooms,
		Residents:        &residents,
		Reservations:     &reservations,
		Payments:         &payments,
		Expenses:         &expenses,
		MaintenanceTasks: &tasks,
		Configuration:    &config,
		PettyCash:        &config.PettyCash,
		IsLoading:        &notLoading,
		IsConnected:      &connected,
		IsDemoMode:       &demo,
	})
}
