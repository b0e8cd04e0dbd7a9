package crewmeister

import (
	"context"

	"github.com/bnema/crewtime-cli/internal/domain"
)

// Identity returns the authenticated user's identity, resolving it on
// first use: constructor input wins, then JWT claims, then the
// userId/crewId of the latest stamp. The result is cached for the
// session's lifetime.
func (c *Client) Identity(ctx context.Context) (domain.Identity, error) {
	c.mu.Lock()
	if c.identity != nil {
		cached := *c.identity
		c.mu.Unlock()
		return cached, nil
	}
	if err := c.ensureLoggedInLocked(ctx); err != nil {
		c.mu.Unlock()
		return domain.Identity{}, err
	}
	identity := domain.IdentityFromClaims(c.claims)
	c.mu.Unlock()

	if !identity.Complete() {
		stamp, err := c.LatestStamp(ctx, 0)
		if err != nil {
			return domain.Identity{}, err
		}
		if stamp != nil {
			if identity.UserID == 0 {
				if id, ok := stamp.UserID(); ok {
					identity.UserID = id
				}
			}
			if identity.CrewID == 0 {
				if id, ok := stamp.CrewID(); ok {
					identity.CrewID = id
				}
			}
		}
	}

	if !identity.Complete() {
		return domain.Identity{}, domain.ErrMissingIdentity
	}

	c.mu.Lock()
	if c.identity == nil {
		c.identity = &identity
	}
	cached := *c.identity
	c.mu.Unlock()
	return cached, nil
}
