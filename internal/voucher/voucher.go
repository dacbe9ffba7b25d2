// Package voucher renders the single-page PDF confirmation for a reservation.
package voucher

import (
	"bytes"
	"fmt"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	ContentType = "application/pdf"
	Title       = "Voucher de Reserva"
	timeLayout  = "2006-01-02 15:04"
)

func FileName(code string) string {
	return fmt.Sprintf("voucher_%s.pdf", code)
}

type Renderer struct {
	currency string
	compress bool
}

func NewRenderer(currency string) *Renderer {
	return &Renderer{currency: currency, compress: true}
}

func (r *Renderer) Render(d *domain.ReservationDetails) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(Title+" "+d.Reservation.Code, true)
	// Core fonts are cp1252; passenger names may carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range r.lines(d) {
		pdf.CellFormat(0, 10, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render voucher %s: %w", d.Reservation.Code, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) lines(d *domain.ReservationDetails) []string {
	return []string{
		"PNR: " + d.Reservation.Code,
		"Pasajero: " + d.Passenger.FullName(),
		"Vuelo: " + d.Flight.Number,
		"Origen: " + d.Flight.Origin,
		"Destino: " + d.Flight.Destination,
		"Fecha de salida: " + d.Flight.DepartureTime.Format(timeLayout),
		"Total: " + r.currency + d.Reservation.Total(),
	}
}
