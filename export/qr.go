package export

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QR renders payload text as a QR symbol.
type QR struct {
	Level qrcode.RecoveryLevel
	// Size is the PNG edge length in pixels.
	Size int
}

func DefaultQR() QR {
	return QR{Level: qrcode.Medium, Size: 512}
}

func ParseRecoveryLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return qrcode.Low, nil
	case "", "medium", "m":
		return qrcode.Medium, nil
	case "high", "q":
		return qrcode.High, nil
	case "highest", "h":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, fmt.Errorf("unknown QR recovery level %q", s)
	}
}

func (q QR) symbol(text string) (*qrcode.QRCode, error) {
	code, err := qrcode.New(text, q.Level)
	if err != nil {
		return nil, fmt.Errorf("payload of %d bytes does not fit a QR code: %w", len(text), err)
	}
	return code, nil
}

func (q QR) PNG(text string) ([]byte, error) {
	code, err := q.symbol(text)
	if err != nil {
		return nil, err
	}
	size := q.Size
	if size <= 0 {
		size = DefaultQR().Size
	}
	return code.PNG(size)
}

// Terminal renders the symbol with half-block characters for display in a
// terminal.
func (q QR) Terminal(text string) (string, error) {
	code, err := q.symbol(text)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}
