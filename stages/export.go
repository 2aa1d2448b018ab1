package stages

import (
	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/record"
)

// Export keeps the payload in step with the store: it is recomputed on every
// change, so the preview always matches what the QR code carries.
type Export struct {
	store   *record.Store
	encoder export.Encoder
	payload export.Payload
	text    string
	stop    func()
}

func NewExport(store *record.Store, encoder export.Encoder) *Export {
	e := &Export{store: store, encoder: encoder}
	e.recompute(store.Record())
	e.stop = store.Subscribe(e.recompute)
	return e
}

func (e *Export) recompute(r record.MatchRecord) {
	e.payload = e.encoder.Encode(r)
	e.text = e.payload.String()
}

func (e *Export) Close() { e.stop() }

// Payload is the exact text handed to the QR code and any other transport.
func (e *Export) Payload() string { return e.text }

func (e *Export) Preview() string { return e.payload.Indented() }

func (e *Export) Strategy() export.Strategy { return e.encoder.Strategy }

// ExportAndClear starts the next match, keeping the scouter, robot slot and
// the advanced match number.
func (e *Export) ExportAndClear() {
	e.store.Replace(record.NextMatch(e.store.Record()))
}

func (e *Export) ClearAll() {
	e.store.Replace(record.Defaults())
}
