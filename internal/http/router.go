package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"residencia-backend/internal/handlers"
	"residencia-backend/internal/realtime"
)

func NewRouter(
	stateHandler *handlers.StateHandler,
	roomHandler *handlers.RoomHandler,
	residentHandler *handlers.ResidentHandler,
	reservationHandler *handlers.ReservationHandler,
	paymentHandler *handlers.PaymentHandler,
	expenseHandler *handlers.ExpenseHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	configHandler *handlers.ConfigHandler,
	statsHandler *handlers.StatsHandler,
	fileHandler *handlers.FileHandler,
	healthHandler *handlers.HealthHandler,
	hub *realtime.Hub,
) *mux.Router {
	r := mux.NewRouter()

	// Full snapshot, loaded once by the dashboard
	r.HandleFunc("/api/state", stateHandler.GetState).Methods("GET")

	// Rooms
	roomsAPI := r.PathPrefix("/api/rooms").Subrouter()
	roomsAPI.HandleFunc("", roomHandler.ListRooms).Methods("GET")
	roomsAPI.HandleFunc("", roomHandler.CreateRoom).Methods("POST")
	roomsAPI.HandleFunc("/{id}", roomHandler.UpdateRoom).Methods("PUT")
	roomsAPI.HandleFunc("/{id}", roomHandler.DeleteRoom).Methods("DELETE")

	// Residents
	residentsAPI := r.PathPrefix("/api/residents").Subrouter()
	residentsAPI.HandleFunc("", residentHandler.ListResidents).Methods("GET")
	residentsAPI.HandleFunc("", residentHandler.CreateResident).Methods("POST")
	residentsAPI.HandleFunc("/{id}", residentHandler.GetResident).Methods("GET")
	residentsAPI.HandleFunc("/{id}", residentHandler.UpdateResident).Methods("PUT")
	residentsAPI.HandleFunc("/{id}", residentHandler.DeleteResident).Methods("DELETE")
	residentsAPI.HandleFunc("/{id}/documents", residentHandler.UploadDocument).Methods("POST")

	// Reservations
	reservationsAPI := r.PathPrefix("/api/reservations").Subrouter()
	reservationsAPI.HandleFunc("", reservationHandler.ListReservations).Methods("GET")
	reservationsAPI.HandleFunc("", reservationHandler.CreateReservation).Methods("POST")
	reservationsAPI.HandleFunc("/{id}", reservationHandler.UpdateReservation).Methods("PUT")
	reservationsAPI.HandleFunc("/{id}/checkin", reservationHandler.CheckIn).Methods("POST")
	reservationsAPI.HandleFunc("/{id}/cancel", reservationHandler.Cancel).Methods("POST")

	// Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.CreatePayment).Methods("POST")
	paymentsAPI.HandleFunc("/generate-monthly", paymentHandler.GenerateMonthly).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.UpdatePayment).Methods("PUT")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.DeletePayment).Methods("DELETE")
	paymentsAPI.HandleFunc("/{id}/receipt", paymentHandler.Receipt).Methods("GET")

	// Expenses
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/{id}", expenseHandler.UpdateExpense).Methods("PUT")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Maintenance
	maintenanceAPI := r.PathPrefix("/api/maintenance").Subrouter()
	maintenanceAPI.HandleFunc("", maintenanceHandler.ListTasks).Methods("GET")
	maintenanceAPI.HandleFunc("", maintenanceHandler.CreateTask).Methods("POST")
	maintenanceAPI.HandleFunc("/{id}", maintenanceHandler.UpdateTask).Methods("PUT")
	maintenanceAPI.HandleFunc("/{id}", maintenanceHandler.DeleteTask).Methods("DELETE")
	maintenanceAPI.HandleFunc("/{id}/photos", maintenanceHandler.UploadPhoto).Methods("POST")

	// Configuration
	configAPI := r.PathPrefix("/api/config").Subrouter()
	configAPI.HandleFunc("", configHandler.GetConfiguration).Methods("GET")
	configAPI.HandleFunc("", configHandler.UpdateConfiguration).Methods("PUT")
	configAPI.HandleFunc("/monthly-rates", configHandler.SaveMonthlyRates).Methods("POST")

	r.HandleFunc("/api/petty-cash", configHandler.GetPettyCash).Methods("GET")
	r.HandleFunc("/api/petty-cash", configHandler.UpdatePettyCash).Methods("PUT")

	// Aggregates
	r.HandleFunc("/api/stats", statsHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/stats/system", statsHandler.GetSystemStats).Methods("GET")

	// Stored files
	r.HandleFunc("/api/files/{key:.+}", fileHandler.ServeFile).Methods("GET")

	// Realtime snapshot stream
	r.HandleFunc("/ws", hub.HandleWebSocket)

	// Probes and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
