package calendar

import (
	"fmt"
	"time"
)

// ConversionError reports a date the conversion tables cannot resolve.
// It is the only failure the calendar layer produces; callers treat it as
// fatal for the current request.
type ConversionError struct {
	Date   time.Time
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("calendar: cannot convert %s: %s", e.Date.Format("2006-01-02"), e.Reason)
}
