package registrations

import (
	"bytes"
	"fmt"
	"net/http"

	"carecamps/middleware"
	"carecamps/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Receipt handles GET /registeredCamps/receipt/:id: a PDF receipt for a
// confirmed and paid registration, with a QR payload the front desk can
// scan against the registration record.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reg, err := h.Store.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		http.Error(w, "Failed to fetch registration", http.StatusInternalServerError)
		return
	}
	if reg == nil {
		http.Error(w, "Registration not found", http.StatusNotFound)
		return
	}
	if reg.ParticipantEmail != middleware.EmailFromContext(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if reg.ConfirmationStatus != models.StatusConfirmed || reg.PaymentStatus != models.StatusPaid {
		http.Error(w, "Receipt available only for confirmed, paid registrations", http.StatusConflict)
		return
	}

	qrPayload := fmt.Sprintf("%s|%s|%s", reg.FindingKey, reg.CampID, reg.PaymentStatus)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "CareCamps Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Camp: %s", reg.CampName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Participant: %s", reg.ParticipantName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Email: %s", reg.ParticipantEmail))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Fees: $%.2f", reg.Fees))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s / %s", reg.PaymentStatus, reg.ConfirmationStatus))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt.pdf")
	w.Write(buf.Bytes())
}
