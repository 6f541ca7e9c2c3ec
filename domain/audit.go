package domain

import (
	"encoding/json"
	"time"
)

// ItemAudit is one recorded catalog mutation event, written by the audit
// worker as events arrive off the broker.
type ItemAudit struct {
	ID         string          `db:"id" json:"id"`
	Event      string          `db:"event" json:"event"`
	ItemID     string          `db:"item_id" json:"itemId"`
	TraceID    string          `db:"trace_id" json:"traceId"`
	Payload    json.RawMessage `db:"payload" json:"payload"`
	ReceivedAt time.Time       `db:"received_at" json:"receivedAt"`
}
