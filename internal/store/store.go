package store

import "context"

// Remote table names, one per top-level entity collection.
const (
	TableResidents          = "residents"
	TableRooms              = "rooms"
	TableReservations       = "reservations"
	TablePayments           = "payments"
	TableExpenses           = "expenses"
	TableMaintenanceTasks   = "maintenance_tasks"
	TableConfigurations     = "configurations"
	TableMonthlyRateHistory = "monthly_rate_history"
)

// Store is the persistence gateway: row-shaped operations against a remote
// relational store. rows and patches are JSON-marshalable values whose
// snake_case field names are the column names; match is a set of equality
// filters. Implementations: Supabase PostgREST, direct Postgres, and a null
// store for demo mode.
type Store interface {
	// SelectAll reads every row of a table into dest (a pointer to a slice
	// of row structs).
	SelectAll(ctx context.Context, table string, dest any) error
	Insert(ctx context.Context, table string, row any) error
	Update(ctx context.Context, table string, match map[string]string, patch any) error
	Delete(ctx context.Context, table string, match map[string]string) error
	// Upsert inserts or, on a conflict over onConflict (a column name),
	// replaces the existing row.
	Upsert(ctx context.Context, table string, row any, onConflict string) error
	Count(ctx context.Context, table string) (int64, error)
	Ping(ctx context.Context) error
	Name() string
}

// Op kinds for outbox entries emitted by the state engine.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpUpsert = "upsert"
)

// Op is one deferred persistence intent. The reducer returns ops instead of
// touching the gateway; the engine's effect runner applies them
// fire-and-forget.
type Op struct {
	Kind       string
	Table      string
	Match      map[string]string
	Row        any
	OnConflict string
}

func InsertOp(table string, row any) Op {
	return Op{Kind: OpInsert, Table: table, Row: row}
}

func UpdateOp(table, id string, patch any) Op {
	return Op{Kind: OpUpdate, Table: table, Match: ByID(id), Row: patch}
}

func DeleteOp(table, id string) Op {
	return Op{Kind: OpDelete, Table: table, Match: ByID(id)}
}

func DeleteWhereOp(table string, match map[string]string) Op {
	return Op{Kind: OpDelete, Table: table, Match: match}
}

func UpsertOp(table string, row any, onConflict string) Op {
	return Op{Kind: OpUpsert, Table: table, Row: row, OnConflict: onConflict}
}

// ByID builds the match filter for a primary-key row.
func ByID(id string) map[string]string {
	return map[string]string{"id": id}
}

// Apply runs one outbox op against a store.
func Apply(ctx context.Context, s Store, op Op) error {
	switch op.Kind {
	case OpInsert:
		return s.Insert(ctx, op.Table, op.Row)
	case OpUpdate:
		return s.Update(ctx, op.Table, op.Match, op.Row)
	case OpDelete:
		return s.Delete(ctx, op.Table, op.Match)
	case OpUpsert:
		return s.Upsert(ctx, op.Table, op.Row, op.OnConflict)
	default:
		return nil
	}
}
