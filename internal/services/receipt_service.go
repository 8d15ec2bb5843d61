package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/timeutil"
)

// ReceiptService renders payment receipts as PDF.
type ReceiptService struct {
	Engine *engine.Engine
}

func NewReceiptService(e *engine.Engine) *ReceiptService {
	return &ReceiptService{Engine: e}
}

var paymentTypeLabels = map[string]string{
	models.PaymentTypeMonthlyRent: "Alquiler mensual",
	models.PaymentTypeMatricula:   "Matricula",
	models.PaymentTypeDeposit:     "Deposito",
	models.PaymentTypeUtilities:   "Servicios",
	models.PaymentTypeOther:       "Otro",
}

var paymentMethodLabels = map[string]string{
	models.PaymentMethodCash:      "Efectivo",
	models.PaymentMethodTransfer:  "Transferencia",
	models.PaymentMethodCard:      "Tarjeta",
	models.PaymentMethodPettyCash: "Caja chica",
}

// GeneratePaymentReceipt builds the receipt for one payment. The resident
// name falls back to a generic label for general-income bookings.
func (s *ReceiptService) GeneratePaymentReceipt(paymentID string) ([]byte, error) {
	state := s.Engine.Snapshot()

	var payment models.Payment
	found := false
	for _, p := range state.Payments {
		if p.ID == paymentID {
			payment = p
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}

	residentName := "Ingreso general"
	roomNumber := "-"
	if payment.ResidentID != models.GeneralIncomeID {
		if resident, ok := findResident(state.Residents, payment.ResidentID); ok {
			residentName = strings.TrimSpace(resident.FirstName + " " + resident.LastName)
			if room, ok := findRoom(state.Rooms, resident.RoomID); ok {
				roomNumber = room.Number
			}
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Residencia - Recibo de Pago", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Emitido: %s", timeutil.FormatDisplay(timeutil.Now())), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Payment info box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Detalle del pago", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	receiptNumber := payment.ReceiptNumber
	if receiptNumber == "" {
		receiptNumber = payment.ID
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Recibo: %s", receiptNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Fecha: %s", payment.Date.In(timeutil.BuenosAires).Format("02-01-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Residente: %s", residentName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Habitacion: %s", roomNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Concepto: %s", label(paymentTypeLabels, payment.Type)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Medio: %s", label(paymentMethodLabels, payment.Method)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Amount, highlighted by status
	if payment.Status == models.PaymentStatusCompleted {
		pdf.SetFillColor(200, 255, 200)
	} else {
		pdf.SetFillColor(255, 230, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	statusText := "PAGADO"
	if payment.Status != models.PaymentStatusCompleted {
		statusText = "PENDIENTE"
	}
	pdf.CellFormat(190, 10, fmt.Sprintf("%s %.2f - %s", payment.Currency, payment.Amount, statusText), "1", 1, "C", true, 0, "")

	if payment.IsPartialPayment {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(190, 6, "Saldo restante de un pago parcial", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func label(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}
