package ports

import (
	"context"
	"time"

	"github.com/bnema/crewtime-cli/internal/domain"
)

// TimeClock is the session-scoped Crewmeister API surface the application
// layer consumes. Implementations own token state and the identity cache.
type TimeClock interface {
	Login(ctx context.Context) error
	Identity(ctx context.Context) (domain.Identity, error)
	LatestStamp(ctx context.Context, userID int64) (*domain.Stamp, error)
	CreateStamp(ctx context.Context, req domain.StampRequest) (*domain.Stamp, error)
	Absences(ctx context.Context, userID int64, start, end time.Time, states []string) ([]domain.Absence, error)
	AbsenceTypeName(ctx context.Context, typeID int64) string
}
