package domain

import (
	"strconv"
	"strings"
)

// Identity is the authenticated user, resolved once per session and
// immutable afterwards.
type Identity struct {
	UserID   int64
	CrewID   int64
	Email    string
	FullName string
}

func (i Identity) Complete() bool {
	return i.UserID != 0 && i.CrewID != 0
}

var (
	userIDClaims   = []string{"userId", "user_id", "uid", "sub"}
	crewIDClaims   = []string{"crewId", "crew_id", "cid", "crew"}
	emailClaims    = []string{"email", "username", "upn"}
	fullNameClaims = []string{"name", "fullName", "displayName"}
)

// IdentityFromClaims pulls whatever identity fields the JWT payload offers,
// recognizing the claim-name variants observed across token revisions. The
// result may be incomplete; callers fill gaps from other sources.
func IdentityFromClaims(claims map[string]any) Identity {
	var identity Identity
	if len(claims) == 0 {
		return identity
	}

	for _, key := range userIDClaims {
		value, ok := claims[key]
		if !ok || value == nil {
			continue
		}
		if id, ok := coerceUserClaim(value); ok {
			identity.UserID = id
		}
		break
	}

	for _, key := range crewIDClaims {
		value, ok := claims[key]
		if !ok || value == nil {
			continue
		}
		if id, ok := coerceID(value); ok {
			identity.CrewID = id
		}
		break
	}

	for _, key := range emailClaims {
		if value, ok := claims[key].(string); ok && value != "" {
			identity.Email = value
			break
		}
	}

	for _, key := range fullNameClaims {
		if value, ok := claims[key].(string); ok && value != "" {
			identity.FullName = value
			break
		}
	}

	return identity
}

// coerceUserClaim additionally understands the "user:<id>" composite form
// some token revisions use for the sub claim.
func coerceUserClaim(value any) (int64, bool) {
	if text, ok := value.(string); ok {
		if rest, found := strings.CutPrefix(text, "user:"); found {
			id, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return 0, false
			}
			return id, true
		}
	}
	return coerceID(value)
}
