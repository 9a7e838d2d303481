package element

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/videoplan/internal/timeline"
)

// NewQR creates an image entity sized for a QR code of the given
// content. The module grid is generated once to measure the intrinsic
// box (moduleScale pixels per module); the actual pixels are produced
// by the external renderer from the same content string.
func NewQR(content string, moduleScale int) (*timeline.Entity, error) {
	if moduleScale <= 0 {
		return nil, &timeline.ConfigurationError{Subject: "qr", Reason: fmt.Sprintf("module scale must be positive, got %d", moduleScale)}
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, &timeline.ConfigurationError{Subject: "qr", Reason: err.Error()}
	}

	modules := len(q.Bitmap())
	side := float64(modules * moduleScale)
	return timeline.NewEntity(timeline.KindImage, "qr:"+content).SetSize(side, side), nil
}
