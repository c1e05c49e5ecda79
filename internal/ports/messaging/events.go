package messaging

import "time"

// AttendanceRecordedEvent is the JSON payload sent after a record is stored.
type AttendanceRecordedEvent struct {
	RecordID   string    `json:"recordId"`
	Employee   string    `json:"employee"`
	Type       string    `json:"type"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Office     string    `json:"office"`
	HasSelfie  bool      `json:"hasSelfie"`
	OccurredAt time.Time `json:"occurredAt"`
}
