package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/crewtime-cli/internal/domain"
	"github.com/bnema/crewtime-cli/internal/ports"
)

// DefaultAbsenceLookahead bounds how far ahead upcoming absences are
// fetched when the caller gives no window.
const DefaultAbsenceLookahead = 120 * 24 * time.Hour

// DefaultAbsenceStates are the approval states shown unless configured
// otherwise.
var DefaultAbsenceStates = []string{"APPROVED", "PRE_APPROVED"}

// StampDefaults are the configured quick-action defaults merged into
// stamp requests that do not override them.
type StampDefaults struct {
	Note          string
	TimeAccountID int64
}

type ServiceConfig struct {
	Clock         ports.Clock
	Defaults      StampDefaults
	AbsenceStates []string
}

// Service exposes the tracker operations the CLI consumes: refresh the
// derived work status, punch the clock, and list upcoming absences.
type Service struct {
	client        ports.TimeClock
	clock         ports.Clock
	defaults      StampDefaults
	absenceStates []string
}

func NewService(client ports.TimeClock, cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	states := cfg.AbsenceStates
	if len(states) == 0 {
		states = DefaultAbsenceStates
	}

	return &Service{
		client:        client,
		clock:         clock,
		defaults:      cfg.Defaults,
		absenceStates: states,
	}
}

// Snapshot is one refresh cycle's result: the latest stamp and the status
// derived from it.
type Snapshot struct {
	Identity    domain.Identity
	LatestStamp *domain.Stamp
	Status      domain.WorkStatus
	UpdatedAt   time.Time
}

// Refresh fetches the latest stamp for the authenticated user and derives
// the current work status from it.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	identity, err := s.client.Identity(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolve identity: %w", err)
	}

	stamp, err := s.client.LatestStamp(ctx, identity.UserID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch latest stamp: %w", err)
	}

	return Snapshot{
		Identity:    identity,
		LatestStamp: stamp,
		Status:      domain.DeriveStatus(stamp),
		UpdatedAt:   s.clock.Now(),
	}, nil
}

// PunchOverrides carry per-invocation stamp parameters; empty fields fall
// back to the configured defaults.
type PunchOverrides struct {
	Timestamp     time.Time
	Note          string
	Location      string
	TimeAccountID int64
}

// Punch validates the requested transition against the freshly fetched
// status, resolves the chain parameters, and creates the stamp. Rejected
// transitions fail before any write is attempted.
func (s *Service) Punch(ctx context.Context, stampType domain.StampType, overrides PunchOverrides) (*domain.Stamp, error) {
	snapshot, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := domain.PlanStamp(snapshot.Status, stampType, snapshot.LatestStamp)
	if err != nil {
		return nil, err
	}

	req := s.applyDefaults(domain.StampRequest{
		Type:              stampType,
		Timestamp:         overrides.Timestamp,
		Note:              overrides.Note,
		Location:          overrides.Location,
		TimeAccountID:     overrides.TimeAccountID,
		ChainStartStampID: plan.ChainStartStampID,
		AllocationDate:    plan.AllocationDate,
	})

	stamp, err := s.client.CreateStamp(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create stamp: %w", err)
	}
	return stamp, nil
}

// CreateStamp issues a raw stamp request without transition validation,
// mirroring the host automation service call. Defaults still apply.
func (s *Service) CreateStamp(ctx context.Context, req domain.StampRequest) (*domain.Stamp, error) {
	stamp, err := s.client.CreateStamp(ctx, s.applyDefaults(req))
	if err != nil {
		return nil, fmt.Errorf("create stamp: %w", err)
	}
	return stamp, nil
}

func (s *Service) applyDefaults(req domain.StampRequest) domain.StampRequest {
	if req.Note == "" {
		req.Note = s.defaults.Note
	}
	if req.TimeAccountID == 0 {
		req.TimeAccountID = s.defaults.TimeAccountID
	}
	return req
}

// UpcomingAbsences lists the user's absences inside the lookahead window
// as calendar events sorted by start.
func (s *Service) UpcomingAbsences(ctx context.Context, lookahead time.Duration) ([]domain.AbsenceEvent, error) {
	if lookahead <= 0 {
		lookahead = DefaultAbsenceLookahead
	}

	identity, err := s.client.Identity(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	start := s.clock.Now()
	absences, err := s.client.Absences(ctx, identity.UserID, start, start.Add(lookahead), s.absenceStates)
	if err != nil {
		return nil, fmt.Errorf("fetch absences: %w", err)
	}

	events := make([]domain.AbsenceEvent, 0, len(absences))
	for _, absence := range absences {
		event, ok := s.absenceEvent(ctx, absence)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

func (s *Service) absenceEvent(ctx context.Context, absence domain.Absence) (domain.AbsenceEvent, bool) {
	start, ok := absence.Start()
	if !ok {
		return domain.AbsenceEvent{}, false
	}
	end, ok := absence.End()
	if !ok {
		return domain.AbsenceEvent{}, false
	}

	summary := "Absence"
	if absence.HasType {
		if name := s.client.AbsenceTypeName(ctx, absence.AbsenceTypeID); name != "" {
			summary = name
		} else {
			summary = fmt.Sprintf("Absence %d", absence.AbsenceTypeID)
		}
	}

	state := absence.State
	if state == "" {
		state = "UNKNOWN"
	}

	return domain.AbsenceEvent{
		Summary:     summary,
		Start:       start,
		End:         end,
		Description: "State: " + state,
		State:       state,
	}, true
}
