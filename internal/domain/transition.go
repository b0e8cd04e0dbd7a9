package domain

import "fmt"

// StampPlan holds the chain parameters a new stamp must carry so that it
// continues the current work chain instead of starting a fresh one.
type StampPlan struct {
	ChainStartStampID *int64
	AllocationDate    string
}

// PlanStamp validates the requested stamp against the current work status
// and resolves the chain parameters for it. A brand-new chain (clocking in
// while clocked out) carries no chain id; every follow-up stamp must
// reference the chain's originating stamp. When a follow-up is requested
// but no chain id can be resolved from the latest stamp, the plan is
// rejected locally: sending a chain-less follow-up risks silently starting
// a new chain on the server.
func PlanStamp(status WorkStatus, stampType StampType, latest *Stamp) (StampPlan, error) {
	if !stampType.Valid() {
		return StampPlan{}, fmt.Errorf("%w: %q", ErrUnsupportedStampType, stampType)
	}

	needChain := false
	switch stampType {
	case StampStartWork:
		if status == StatusClockedIn {
			return StampPlan{}, fmt.Errorf("%w: already clocked in", ErrInvalidTransition)
		}
		// Resuming work from a break continues the existing chain.
		needChain = status == StatusOnBreak
	case StampStartBreak:
		if status != StatusClockedIn {
			return StampPlan{}, fmt.Errorf("%w: no active shift to pause", ErrInvalidTransition)
		}
		needChain = true
	case StampClockOut:
		if status != StatusClockedIn && status != StatusOnBreak {
			return StampPlan{}, fmt.Errorf("%w: no active shift to clock out from", ErrInvalidTransition)
		}
		needChain = true
	}

	if !needChain {
		return StampPlan{}, nil
	}

	if latest == nil {
		return StampPlan{}, fmt.Errorf("%w: no active shift stamp to continue", ErrInvalidTransition)
	}
	chainID, ok := latest.ChainStartID()
	if !ok {
		return StampPlan{}, fmt.Errorf("%w: no active shift stamp to continue", ErrInvalidTransition)
	}

	// Multi-day chains keep the allocation bucket of their first day.
	return StampPlan{
		ChainStartStampID: &chainID,
		AllocationDate:    latest.AllocationDate(),
	}, nil
}
