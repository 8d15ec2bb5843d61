package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var validTables = map[string]bool{
	TableResidents:          true,
	TableRooms:              true,
	TableReservations:       true,
	TablePayments:           true,
	TableExpenses:           true,
	TableMaintenanceTasks:   true,
	TableConfigurations:     true,
	TableMonthlyRateHistory: true,
}

// PostgresStore implements the gateway over a direct pgx connection, for
// deployments that point DATABASE_URL at the store instead of going through
// PostgREST. SQL is generated from the same row shapes the Supabase gateway
// sends as JSON.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Name() string { return "postgres" }

// Pool exposes the underlying connection pool for the migrator.
func (s *PostgresStore) Pool() *pgxpool.Pool { return s.pool }

func (s *PostgresStore) Close() { s.pool.Close() }

func (s *PostgresStore) SelectAll(ctx context.Context, table string, dest any) error {
	if err := checkTable(table); err != nil {
		return err
	}
	rows, err := s.pool.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return err
	}
	// Round-trip through JSON so row structs decode identically to the
	// PostgREST path.
	body, err := json.Marshal(maps)
	if err != nil {
		return fmt.Errorf("encode %s rows: %w", table, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, table string, row any) error {
	if err := checkTable(table); err != nil {
		return err
	}
	cols, args, err := rowColumns(row)
	if err != nil {
		return err
	}
	placeholders := make([]string, len(cols))
	for i, arg := range args {
		placeholders[i] = placeholder(i+1, arg)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	_, err = s.pool.Exec(ctx, query, plainArgs(args)...)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, table string, match map[string]string, patch any) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(match) == 0 {
		return fmt.Errorf("refusing unfiltered update on %s", table)
	}
	cols, args, err := rowColumns(patch)
	if err != nil {
		return err
	}
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = " + placeholder(i+1, args[i])
	}
	where, whereArgs := matchClause(match, len(cols)+1)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), where)
	_, err = s.pool.Exec(ctx, query, append(plainArgs(args), whereArgs...)...)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, table string, match map[string]string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(match) == 0 {
		return fmt.Errorf("refusing unfiltered delete on %s", table)
	}
	where, args := matchClause(match, 1)
	_, err := s.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", table, where), args...)
	return err
}

func (s *PostgresStore) Upsert(ctx context.Context, table string, row any, onConflict string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	cols, args, err := rowColumns(row)
	if err != nil {
		return err
	}
	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols))
	for i, col := range cols {
		placeholders[i] = placeholder(i+1, args[i])
		if col != onConflict {
			updates = append(updates, col+" = EXCLUDED."+col)
		}
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
		onConflict, strings.Join(updates, ", "))
	_, err = s.pool.Exec(ctx, query, plainArgs(args)...)
	return err
}

func (s *PostgresStore) Count(ctx context.Context, table string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	var n int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func checkTable(table string) error {
	if !validTables[table] {
		return fmt.Errorf("unknown table %q", table)
	}
	return nil
}

// jsonArg marks a value that must be bound as jsonb.
type jsonArg struct{ data string }

// rowColumns flattens a row struct (or map) into sorted column names and
// bind values. Nested objects and arrays become jsonb arguments.
func rowColumns(row any) ([]string, []any, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return nil, nil, fmt.Errorf("encode row: %w", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, nil, fmt.Errorf("row is not an object: %w", err)
	}
	cols := make([]string, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols))
	for _, col := range cols {
		raw := m[col]
		switch raw[0] {
		case '{', '[':
			args = append(args, jsonArg{data: string(raw)})
		case '"':
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, nil, err
			}
			args = append(args, s)
		case 'n': // null
			args = append(args, nil)
		case 't', 'f':
			args = append(args, raw[0] == 't')
		default:
			var f float64
			if err := json.Unmarshal(raw, &f); err != nil {
				return nil, nil, err
			}
			args = append(args, f)
		}
	}
	return cols, args, nil
}

func placeholder(n int, arg any) string {
	if _, ok := arg.(jsonArg); ok {
		return fmt.Sprintf("$%d::jsonb", n)
	}
	return fmt.Sprintf("$%d", n)
}

func plainArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if j, ok := arg.(jsonArg); ok {
			out[i] = j.data
		} else {
			out[i] = arg
		}
	}
	return out
}

func matchClause(match map[string]string, start int) (string, []any) {
	keys := make([]string, 0, len(match))
	for k := range match {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	conds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		conds[i] = fmt.Sprintf("%s = $%d", k, start+i)
		args[i] = match[k]
	}
	return strings.Join(conds, " AND "), args
}
