package domain

import (
	"strconv"
	"time"
)

type StampType string

const (
	StampStartWork  StampType = "START_WORK"
	StampStartBreak StampType = "START_BREAK"
	StampClockOut   StampType = "CLOCK_OUT"
)

// StampStatusOpen marks the stamp that currently drives the work status.
const StampStatusOpen = "OPEN"

func (t StampType) Valid() bool {
	switch t {
	case StampStartWork, StampStartBreak, StampClockOut:
		return true
	}
	return false
}

// Stamp is a single time-tracking event as returned by the API. The raw
// payload is kept as-is; accessors coerce the loosely typed fields once.
type Stamp struct {
	Raw map[string]any
}

// Timestamp parses the stamp's ISO-8601 timestamp. A missing or malformed
// value reports ok=false rather than failing the whole stamp.
func (s Stamp) Timestamp() (time.Time, bool) {
	value, _ := s.Raw["timestamp"].(string)
	if value == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (s Stamp) Type() StampType {
	value, _ := s.Raw["stampType"].(string)
	return StampType(value)
}

func (s Stamp) Status() string {
	value, _ := s.Raw["stampStatus"].(string)
	return value
}

func (s Stamp) ID() (int64, bool) {
	return coerceID(s.Raw["id"])
}

func (s Stamp) UserID() (int64, bool) {
	return coerceID(s.Raw["userId"])
}

func (s Stamp) CrewID() (int64, bool) {
	return coerceID(s.Raw["crewId"])
}

// ChainStartID resolves the identifier that follow-up stamps in the same
// work chain must reference. The first stamp of a chain may not carry a
// self-referential chainStartStampId, so its own id serves as the fallback.
func (s Stamp) ChainStartID() (int64, bool) {
	if id, ok := coerceID(s.Raw["chainStartStampId"]); ok {
		return id, true
	}
	return s.ID()
}

func (s Stamp) AllocationDate() string {
	value, _ := s.Raw["allocationDate"].(string)
	return value
}

func coerceID(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// StampRequest describes a stamp to be created. A zero Timestamp means
// "now"; an empty AllocationDate defaults to the timestamp's UTC date.
type StampRequest struct {
	Type              StampType
	Timestamp         time.Time
	Note              string
	Location          string
	ChainStartStampID *int64
	TimeAccountID     int64
	AllocationDate    string
	TimeCategoryIDs   map[int]int64
}
