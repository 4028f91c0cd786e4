package export

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/piwi3910/BagCut/internal/descriptor"
	qrcode "github.com/skip2/go-qrcode"
)

// Ticket holds the data encoded into a job's QR code.
type Ticket struct {
	JobID       string  `json:"id"`
	Label       string  `json:"label"`
	Descriptor  string  `json:"descriptor"` // Canonical notation
	Variant     string  `json:"variant"`
	BoardWidth  float64 `json:"board_width_mm"`
	BoardHeight float64 `json:"board_height_mm"`
	Machine     string  `json:"machine"`
	Fits        bool    `json:"fits"`
}

// NewTicket extracts the ticket of a diecut. Board sizes are rounded to
// tenths of a millimetre.
func NewTicket(d Diecut) Ticket {
	w, h := d.Result.BoardSizeMM()
	return Ticket{
		JobID:       d.Job.ID,
		Label:       d.Title(),
		Descriptor:  descriptor.Format(d.Result.Spec),
		Variant:     d.Result.Variant.String(),
		BoardWidth:  roundTenth(w),
		BoardHeight: roundTenth(h),
		Machine:     d.Result.Limit.Name,
		Fits:        !d.Result.Decision.Unfit(),
	}
}

// QRCode encodes the ticket as JSON into a square PNG of the given size in pixels.
func (t Ticket) QRCode(size int) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// ticketImageName is the fpdf image key of a ticket QR code.
func ticketImageName(t Ticket) string {
	return "ticket_" + t.JobID
}
