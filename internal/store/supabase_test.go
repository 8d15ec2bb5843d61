package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

func newTestSupabase(t *testing.T, status int, respBody string, respHeader map[string]string) (*SupabaseStore, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.RawQuery
		captured.Header = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		captured.Body = body

		for k, v := range respHeader {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	s, err := NewSupabaseStore(SupabaseConfig{
		ProjectURL: srv.URL,
		AnonKey:    "anon-key",
	})
	require.NoError(t, err)
	return s, captured
}

func TestSupabaseSelectAll(t *testing.T) {
	s, captured := newTestSupabase(t, http.StatusOK, `[{"id":"r1","number":"101"}]`, nil)

	var rows []RoomRow
	err := s.SelectAll(context.Background(), TableRooms, &rows)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/rest/v1/rooms", captured.Path)
	assert.Equal(t, "select=*", captured.Query)
	assert.Equal(t, "anon-key", captured.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", captured.Header.Get("Authorization"))

	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0].ID)
}

func TestSupabaseInsertWrapsRowInArray(t *testing.T) {
	s, captured := newTestSupabase(t, http.StatusCreated, "", nil)

	err := s.Insert(context.Background(), TablePayments, PaymentRow{ID: "p1", Amount: 100})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0]["id"])
}

func TestSupabaseUpdateFilters(t *testing.T) {
	s, captured := newTestSupabase(t, http.StatusNoContent, "", nil)

	err := s.Update(context.Background(), TableResidents, ByID("a"), map[string]string{"status": "inactive"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, captured.Method)
	assert.Equal(t, "id=eq.a", captured.Query)
}

func TestSupabaseDelete(t *testing.T) {
	t.Run("renders sorted multi-column filters", func(t *testing.T) {
		s, captured := newTestSupabase(t, http.StatusNoContent, "", nil)

		err := s.Delete(context.Background(), TablePayments, map[string]string{
			"status":      "pending",
			"resident_id": "a",
		})
		require.NoError(t, err)
		assert.Equal(t, "resident_id=eq.a&status=eq.pending", captured.Query)
	})

	t.Run("refuses an unfiltered delete", func(t *testing.T) {
		s, _ := newTestSupabase(t, http.StatusNoContent, "", nil)
		err := s.Delete(context.Background(), TablePayments, nil)
		assert.Error(t, err)
	})
}

func TestSupabaseUpsert(t *testing.T) {
	s, captured := newTestSupabase(t, http.StatusCreated, "", nil)

	err := s.Upsert(context.Background(), TableMonthlyRateHistory, MonthlyRateHistoryRow{ID: "h1", Month: "2025-08"}, "month")
	require.NoError(t, err)

	assert.Equal(t, "on_conflict=month", captured.Query)
	assert.Equal(t, "resolution=merge-duplicates", captured.Header.Get("Prefer"))
}

func TestSupabaseCount(t *testing.T) {
	s, captured := newTestSupabase(t, http.StatusOK, "[]", map[string]string{
		"Content-Range": "0-0/42",
	})

	n, err := s.Count(context.Background(), TableResidents)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, "count=exact", captured.Header.Get("Prefer"))
}

func TestSupabaseServiceKeyUsedForWrites(t *testing.T) {
	srvKeyHeader := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srvKeyHeader = r.Header.Get("apikey")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s, err := NewSupabaseStore(SupabaseConfig{
		ProjectURL:     srv.URL,
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
	})
	require.NoError(t, err)

	require.NoError(t, s.Insert(context.Background(), TableRooms, RoomRow{ID: "r1"}))
	assert.Equal(t, "service-key", srvKeyHeader)
}

func TestSupabaseErrorStatus(t *testing.T) {
	s, _ := newTestSupabase(t, http.StatusUnauthorized, `{"message":"bad key"}`, nil)

	err := s.Insert(context.Background(), TableRooms, RoomRow{ID: "r1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
