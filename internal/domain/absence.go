package domain

import (
	"time"
)

// DayPart is the half-day granularity absences are booked at.
type DayPart string

const (
	DayPartMorning   DayPart = "MORNING"
	DayPartAfternoon DayPart = "AFTERNOON"
)

// Absence is a scheduled time-off record. Parsed once at the API boundary;
// consumed read-only.
type Absence struct {
	From          string
	To            string
	FromDayPart   DayPart
	ToDayPart     DayPart
	ZoneID        string
	State         string
	AbsenceTypeID int64
	HasType       bool
	Raw           map[string]any
}

// ParseAbsence validates the loosely typed absence payload in one place.
func ParseAbsence(raw map[string]any) Absence {
	absence := Absence{Raw: raw}
	if raw == nil {
		return absence
	}

	absence.From, _ = raw["from"].(string)
	absence.To, _ = raw["to"].(string)
	if part, ok := raw["fromDayPart"].(string); ok {
		absence.FromDayPart = DayPart(part)
	}
	if part, ok := raw["toDayPart"].(string); ok {
		absence.ToDayPart = DayPart(part)
	}
	absence.ZoneID, _ = raw["zoneId"].(string)
	absence.State, _ = raw["state"].(string)
	absence.AbsenceTypeID, absence.HasType = coerceID(raw["absenceType"])

	return absence
}

// Start returns the absence's starting instant. A morning start begins at
// midnight, an afternoon start at noon, in the absence's zone.
func (a Absence) Start() (time.Time, bool) {
	return absenceBoundary(a.From, a.FromDayPart, a.ZoneID, false)
}

// End returns the absence's ending instant: noon when the absence ends with
// the morning, end of day otherwise.
func (a Absence) End() (time.Time, bool) {
	return absenceBoundary(a.To, a.ToDayPart, a.ZoneID, true)
}

func absenceBoundary(date string, part DayPart, zoneID string, isEnd bool) (time.Time, bool) {
	if date == "" {
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}

	zone := time.Local
	if zoneID != "" {
		if loc, err := time.LoadLocation(zoneID); err == nil {
			zone = loc
		}
	}

	hour, minute, second := 0, 0, 0
	if isEnd {
		hour, minute, second = 23, 59, 59
		if part == DayPartMorning {
			hour, minute, second = 12, 0, 0
		}
	} else if part == DayPartAfternoon {
		hour = 12
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, zone), true
}

// AbsenceEvent is an absence rendered as a calendar event.
type AbsenceEvent struct {
	Summary     string
	Start       time.Time
	End         time.Time
	Description string
	State       string
}
