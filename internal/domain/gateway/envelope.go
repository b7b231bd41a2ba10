package gateway

import (
	"time"

	"telemim/internal/domain/apperr"
)

// TimestampLayout renders ISO-8601 UTC timestamps with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	MsgCreated       = "record created successfully"
	MsgRead          = "data retrieved successfully"
	MsgUpdated       = "record updated successfully"
	MsgDeleted       = "record deleted successfully"
	MsgLoggedIn      = "login successful"
	MsgInvalidAction = "invalid action"
)

// Formatter builds envelopes stamped with the current time.
type Formatter struct {
	now func() time.Time
}

func NewFormatter(now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{now: now}
}

func (f *Formatter) Success(message string, data any) Envelope {
	return Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: f.timestamp(),
	}
}

func (f *Formatter) Failure(kind apperr.Kind, message string) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Kind:      string(kind),
		Timestamp: f.timestamp(),
	}
}

func (f *Formatter) timestamp() string {
	return f.now().UTC().Format(TimestampLayout)
}
