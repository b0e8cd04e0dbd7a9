package domain

type WorkStatus string

const (
	StatusClockedOut WorkStatus = "clocked_out"
	StatusClockedIn  WorkStatus = "clocked_in"
	StatusOnBreak    WorkStatus = "on_break"
)

// DeriveStatus maps the latest stamp to a work status. Only the single
// latest record is consulted; anything that is not an OPEN start-work or
// start-break stamp, including unknown types, means clocked out.
func DeriveStatus(latest *Stamp) WorkStatus {
	if latest == nil {
		return StatusClockedOut
	}

	if latest.Status() == StampStatusOpen {
		switch latest.Type() {
		case StampStartBreak:
			return StatusOnBreak
		case StampStartWork:
			return StatusClockedIn
		}
	}

	return StatusClockedOut
}
