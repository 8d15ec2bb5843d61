package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residencia-backend/internal/engine"
	"residencia-backend/internal/handlers"
	"residencia-backend/internal/health"
	"residencia-backend/internal/models"
	"residencia-backend/internal/realtime"
	"residencia-backend/internal/services"
	"residencia-backend/internal/store"
)

func newTestRouter(t *testing.T) (*mux.Router, *engine.Engine) {
	t.Helper()
	eng := engine.New(store.NewNullStore())
	reservationSvc := services.NewReservationService(eng)
	statsSvc := services.NewStatsService(eng)
	receiptSvc := services.NewReceiptService(eng)
	checker := health.NewHealthChecker(store.NewNullStore(), true)

	router := NewRouter(
		handlers.NewStateHandler(eng),
		handlers.NewRoomHandler(eng),
		handlers.NewResidentHandler(eng, nil),
		handlers.NewReservationHandler(eng, reservationSvc),
		handlers.NewPaymentHandler(eng, receiptSvc),
		handlers.NewExpenseHandler(eng),
		handlers.NewMaintenanceHandler(eng, nil),
		handlers.NewConfigHandler(eng),
		handlers.NewStatsHandler(statsSvc),
		handlers.NewFileHandler(nil),
		handlers.NewHealthHandler(checker),
		realtime.NewHub(),
	)
	return router, eng
}

func do(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStateEndpoint(t *testing.T) {
	router, eng := newTestRouter(t)
	eng.Dispatch(engine.AddRoom{Room: models.Room{ID: "room-101", Number: "101", Type: "individual", Capacity: 1}})

	rec := do(t, router, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state engine.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Rooms, 1)
}

func TestRoomLifecycle(t *testing.T) {
	router, eng := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/rooms", models.Room{
		Number: "201", Type: "double", Status: "available", Gender: "female",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	// Capacity follows the room type when the client omits it.
	assert.Equal(t, 2, created.Capacity)

	created.Status = "maintenance"
	rec = do(t, router, http.MethodPut, "/api/rooms/"+created.ID, created)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "maintenance", eng.Snapshot().Rooms[0].Status)

	rec = do(t, router, http.MethodDelete, "/api/rooms/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, eng.Snapshot().Rooms)
}

func TestReservationCheckInEndpoint(t *testing.T) {
	router, eng := newTestRouter(t)
	eng.Dispatch(engine.AddRoom{Room: models.Room{ID: "room-101", Number: "101", Type: "individual", Capacity: 1}})

	payload := map[string]any{
		"resident": map[string]any{
			"first_name": "Carla",
			"last_name":  "Diaz",
		},
		"reservation": map[string]any{
			"room_id":          "room-101",
			"matricula_amount": 175500,
			"status":           "confirmed",
		},
	}
	rec := do(t, router, http.MethodPost, "/api/reservations", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	state := eng.Snapshot()
	require.Len(t, state.Reservations, 1)
	reservationID := state.Reservations[0].ID

	rec = do(t, router, http.MethodPost, "/api/reservations/"+reservationID+"/checkin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	state = eng.Snapshot()
	assert.Empty(t, state.Reservations)
	require.Len(t, state.Residents, 1)
	assert.Equal(t, models.ResidentStatusActive, state.Residents[0].Status)

	// A second check-in against the same room must bounce.
	payload["reservation"].(map[string]any)["room_id"] = "room-101"
	rec = do(t, router, http.MethodPost, "/api/reservations", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := eng.Snapshot().Reservations[0].ID

	rec = do(t, router, http.MethodPost, "/api/reservations/"+second+"/checkin", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPettyCashEndpoints(t *testing.T) {
	router, eng := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/api/petty-cash", map[string]float64{"amount": 80000})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 80000.0, eng.Snapshot().PettyCash)

	rec = do(t, router, http.MethodGet, "/api/petty-cash", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 80000.0, resp["petty_cash"])
}

func TestExpenseDebitsPettyCash(t *testing.T) {
	router, eng := newTestRouter(t)
	eng.Dispatch(engine.UpdatePettyCash{Amount: 50000})

	rec := do(t, router, http.MethodPost, "/api/expenses", models.Expense{
		Category: "limpieza", Amount: 12000, Currency: "ARS",
		Method: models.PaymentMethodPettyCash, Description: "Lavandina",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 38000.0, eng.Snapshot().PettyCash)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status health.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "demo", status.Mode)
	assert.Equal(t, "healthy", status.Status)
}

func TestGenerateMonthlyEndpoint(t *testing.T) {
	router, eng := newTestRouter(t)
	eng.Dispatch(engine.AddRoom{Room: models.Room{ID: "room-101", Number: "101", Type: "individual", Capacity: 1}})
	eng.Dispatch(engine.AddResident{Resident: models.Resident{
		ID: "resident-1", FirstName: "Pedro", RoomID: "room-101", Status: models.ResidentStatusActive,
	}})

	rec := do(t, router, http.MethodPost, "/api/payments/generate-monthly", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["generated"])
	assert.Len(t, eng.Snapshot().Payments, 1)
}
