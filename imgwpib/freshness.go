package imgwpib

import "time"

const (
	// dateTimeLayout is the timestamp format used by the hydrological
	// endpoints and both warning feeds.
	dateTimeLayout = "2006-01-02 15:04:05"

	// weatherDateLayout covers the synop endpoint, which splits the
	// measurement moment into a date field and a bare hour field.
	weatherDateLayout = "2006-01-02 15"

	// measurementValidity is how old a measurement may be and still count
	// as current. It also widens weather alert windows backward to tolerate
	// upstream publication lag.
	measurementValidity = 6 * time.Hour
)

// parseTimestamp parses an upstream timestamp as UTC. Returns nil for nil
// input or anything that does not match the layout.
func parseTimestamp(value *string, layout string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := time.ParseInLocation(layout, *value, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// currentMeasurement evaluates a raw measurement date against the validity
// window. The returned timestamp is nil whenever the measurement is not
// current, so callers drop the value and the date together. A timestamp
// exactly at the window boundary is already stale.
func currentMeasurement(value *string, now time.Time, window time.Duration) (*time.Time, bool) {
	measured := parseTimestamp(value, dateTimeLayout)
	if measured == nil {
		return nil, false
	}
	if now.Sub(*measured) >= window {
		return nil, false
	}
	return measured, true
}
