package store

import (
	"time"

	"residencia-backend/internal/models"
)

// Row shapes: flattened, snake_cased projections of the nested domain
// entities. Field names double as column names for both the PostgREST and
// the direct-Postgres gateways.

type ResidentRow struct {
	ID                           string                `json:"id"`
	FirstName                    string                `json:"first_name"`
	LastName                     string                `json:"last_name"`
	Nationality                  string                `json:"nationality"`
	Email                        string                `json:"email"`
	Phone                        string                `json:"phone"`
	EmergencyContactName         string                `json:"emergency_contact_name"`
	EmergencyContactPhone        string                `json:"emergency_contact_phone"`
	EmergencyContactRelationship string                `json:"emergency_contact_relationship"`
	RoomID                       string                `json:"room_id"`
	CheckInDate                  time.Time             `json:"check_in_date"`
	CheckOutDate                 *time.Time            `json:"check_out_date,omitempty"`
	Status                       string                `json:"status"`
	BehaviorNotes                []models.BehaviorNote `json:"behavior_notes"`
	Documents                    []models.Document     `json:"documents"`
	UpdatedAt                    *time.Time            `json:"updated_at,omitempty"`
}

func ResidentToRow(r models.Resident) ResidentRow {
	return ResidentRow{
		ID:                           r.ID,
		FirstName:                    r.FirstName,
		LastName:                     r.LastName,
		Nationality:                  r.Nationality,
		Email:                        r.Email,
		Phone:                        r.Phone,
		EmergencyContactName:         r.EmergencyContact.Name,
		EmergencyContactPhone:        r.EmergencyContact.Phone,
		EmergencyContactRelationship: r.EmergencyContact.Relationship,
		RoomID:                       r.RoomID,
		CheckInDate:                  r.CheckInDate,
		CheckOutDate:                 r.CheckOutDate,
		Status:                       r.Status,
		BehaviorNotes:                r.BehaviorNotes,
		Documents:                    r.Documents,
	}
}

func (row ResidentRow) Resident() models.Resident {
	notes := row.BehaviorNotes
	if notes == nil {
		notes = []models.BehaviorNote{}
	}
	docs := row.Documents
	if docs == nil {
		docs = []models.Document{}
	}
	return models.Resident{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Nationality: row.Nationality,
		Email:       row.Email,
		Phone:       row.Phone,
		EmergencyContact: models.EmergencyContact{
			Name:         row.EmergencyContactName,
			Phone:        row.EmergencyContactPhone,
			Relationship: row.EmergencyContactRelationship,
		},
		RoomID:        row.RoomID,
		CheckInDate:   row.CheckInDate,
		CheckOutDate:  row.CheckOutDate,
		Status:        row.Status,
		BehaviorNotes: notes,
		Documents:     docs,
	}
}

type RoomRow struct {
	ID               string     `json:"id"`
	Number           string     `json:"number"`
	Type             string     `json:"type"`
	Capacity         int        `json:"capacity"`
	CurrentOccupancy int        `json:"current_occupancy"`
	Status           string     `json:"status"`
	MonthlyRateUSD   float64    `json:"monthly_rate_usd"`
	Gender           string     `json:"gender"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func RoomToRow(r models.Room) RoomRow {
	return RoomRow{
		ID:               r.ID,
		Number:           r.Number,
		Type:             r.Type,
		Capacity:         r.Capacity,
		CurrentOccupancy: r.CurrentOccupancy,
		Status:           r.Status,
		MonthlyRateUSD:   r.MonthlyRate,
		Gender:           r.Gender,
	}
}

func (row RoomRow) Room() models.Room {
	gender := row.Gender
	if gender == "" {
		gender = "male"
	}
	return models.Room{
		ID:               row.ID,
		Number:           row.Number,
		Type:             row.Type,
		Capacity:         row.Capacity,
		CurrentOccupancy: row.CurrentOccupancy,
		Status:           row.Status,
		MonthlyRate:      row.MonthlyRateUSD,
		Gender:           gender,
	}
}

type ReservationRow struct {
	ID                 string     `json:"id"`
	ResidentID         string     `json:"resident_id"`
	RoomID             string     `json:"room_id"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Status             string     `json:"status"`
	MatriculaAmount    float64    `json:"matricula_amount"`
	DiscountType       string     `json:"discount_type,omitempty"`
	DiscountValue      float64    `json:"discount_value,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

func ReservationToRow(r models.Reservation) ReservationRow {
	row := ReservationRow{
		ID:                 r.ID,
		ResidentID:         r.ResidentID,
		RoomID:             r.RoomID,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Status:             r.Status,
		MatriculaAmount:    r.MatriculaAmount,
		CancellationReason: r.CancellationReason,
	}
	if r.Discount != nil {
		row.DiscountType = r.Discount.Type
		row.DiscountValue = r.Discount.Value
	}
	return row
}

func (row ReservationRow) Reservation() models.Reservation {
	r := models.Reservation{
		ID:                 row.ID,
		ResidentID:         row.ResidentID,
		RoomID:             row.RoomID,
		StartDate:          row.StartDate,
		EndDate:            row.EndDate,
		Status:             row.Status,
		MatriculaAmount:    row.MatriculaAmount,
		CancellationReason: row.CancellationReason,
	}
	if row.DiscountType != "" {
		r.Discount = &models.Discount{Type: row.DiscountType, Value: row.DiscountValue}
	}
	return r
}

type PaymentRow struct {
	ID               string     `json:"id"`
	ResidentID       string     `json:"resident_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Method           string     `json:"method"`
	Date             time.Time  `json:"date"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	ReceiptNumber    string     `json:"receipt_number,omitempty"`
	IsPartialPayment bool       `json:"is_partial_payment,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func PaymentToRow(p models.Payment) PaymentRow {
	return PaymentRow{
		ID:               p.ID,
		ResidentID:       p.ResidentID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Method:           p.Method,
		Date:             p.Date,
		Type:             p.Type,
		Status:           p.Status,
		ReceiptNumber:    p.ReceiptNumber,
		IsPartialPayment: p.IsPartialPayment,
	}
}

func (row PaymentRow) Payment() models.Payment {
	return models.Payment{
		ID:               row.ID,
		ResidentID:       row.ResidentID,
		Amount:           row.Amount,
		Currency:         row.Currency,
		Method:           row.Method,
		Date:             row.Date,
		Type:             row.Type,
		Status:           row.Status,
		ReceiptNumber:    row.ReceiptNumber,
		IsPartialPayment: row.IsPartialPayment,
	}
}

type ExpenseRow struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Method      string     `json:"method"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	Receipt     string     `json:"receipt,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func ExpenseToRow(e models.Expense) ExpenseRow {
	return ExpenseRow{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Method:      e.Method,
		Date:        e.Date,
		Description: e.Description,
		Receipt:     e.Receipt,
	}
}

func (row ExpenseRow) Expense() models.Expense {
	return models.Expense{
		ID:          row.ID,
		Category:    row.Category,
		Amount:      row.Amount,
		Currency:    row.Currency,
		Method:      row.Method,
		Date:        row.Date,
		Description: row.Description,
		Receipt:     row.Receipt,
	}
}

type MaintenanceTaskRow struct {
	ID            string     `json:"id"`
	Area          string     `json:"area"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	AssignedDate  time.Time  `json:"assigned_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Photos        []string   `json:"photos,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func MaintenanceTaskToRow(t models.MaintenanceTask) MaintenanceTaskRow {
	return MaintenanceTaskRow{
		ID:            t.ID,
		Area:          t.Area,
		Description:   t.Description,
		Priority:      t.Priority,
		Status:        t.Status,
		AssignedDate:  t.AssignedDate,
		CompletedDate: t.CompletedDate,
		Photos:        t.Photos,
		Notes:         t.Notes,
	}
}

func (row MaintenanceTaskRow) MaintenanceTask() models.MaintenanceTask {
	photos := row.Photos
	if photos == nil {
		photos = []string{}
	}
	return models.MaintenanceTask{
		ID:            row.ID,
		Area:          row.Area,
		Description:   row.Description,
		Priority:      row.Priority,
		Status:        row.Status,
		AssignedDate:  row.AssignedDate,
		CompletedDate: row.CompletedDate,
		Photos:        photos,
		Notes:         row.Notes,
	}
}

type ConfigurationRow struct {
	ID                string           `json:"id"`
	ExchangeRate      float64          `json:"exchange_rate"`
	LastUpdated       time.Time        `json:"last_updated"`
	RoomRatesUSD      models.RoomRates `json:"room_rates_usd"`
	RoomRatesARS      models.RoomRates `json:"room_rates_ars"`
	PaymentMethods    []string         `json:"payment_methods"`
	ExpenseCategories []string         `json:"expense_categories"`
	MaintenanceAreas  []string         `json:"maintenance_areas"`
	PettyCash         float64          `json:"petty_cash"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"`
}

func ConfigurationToRow(c models.Configuration) ConfigurationRow {
	return ConfigurationRow{
		ID:                c.ID,
		ExchangeRate:      c.ExchangeRate,
		LastUpdated:       c.LastUpdated,
		RoomRatesUSD:      c.RoomRates,
		RoomRatesARS:      c.RoomRatesARS,
		PaymentMethods:    c.PaymentMethods,
		ExpenseCategories: c.ExpenseCategories,
		MaintenanceAreas:  c.MaintenanceAreas,
		PettyCash:         c.PettyCash,
	}
}

// Configuration rebuilds the domain singleton; the history slice lives in its
// own table and is attached by the caller.
func (row ConfigurationRow) Configuration(history []models.MonthlyRateHistory) models.Configuration {
	if history == nil {
		history = []models.MonthlyRateHistory{}
	}
	return models.Configuration{
		ID:                row.ID,
		ExchangeRate:      row.ExchangeRate,
		LastUpdated:       row.LastUpdated,
		RoomRates:         row.RoomRatesUSD,
		RoomRatesARS:      row.RoomRatesARS,
		PaymentMethods:    row.PaymentMethods,
		ExpenseCategories: row.ExpenseCategories,
		MaintenanceAreas:  row.MaintenanceAreas,
		MonthlyHistory:    history,
		PettyCash:         row.PettyCash,
	}
}

type MonthlyRateHistoryRow struct {
	ID           string           `json:"id"`
	Month        string           `json:"month"`
	ExchangeRate float64          `json:"exchange_rate"`
	RoomRatesUSD models.RoomRates `json:"room_rates_usd"`
	RoomRatesARS models.RoomRates `json:"room_rates_ars"`
	CreatedDate  time.Time        `json:"created_date"`
	CreatedBy    string           `json:"created_by"`
}

func MonthlyRateHistoryToRow(h models.MonthlyRateHistory) MonthlyRateHistoryRow {
	return MonthlyRateHistoryRow(h)
}

func (row MonthlyRateHistoryRow) MonthlyRateHistory() models.MonthlyRateHistory {
	return models.MonthlyRateHistory(row)
}
