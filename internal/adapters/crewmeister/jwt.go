package crewmeister

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// decodeJWTPayload decodes a JWT's claims without verifying its signature;
// the API is the trusted issuer here and the claims only seed identity and
// expiry bookkeeping. Any malformed token yields an empty claims map.
func decodeJWTPayload(token string) map[string]any {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return map[string]any{}
	}
	return map[string]any(claims)
}

// claimExpiration converts the exp claim to an absolute UTC instant. A
// missing or unusable claim yields the zero time, which callers treat as
// "always refresh".
func claimExpiration(claims map[string]any) time.Time {
	exp, ok := claims["exp"]
	if !ok {
		return time.Time{}
	}

	switch v := exp.(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	case json.Number:
		seconds, err := v.Int64()
		if err != nil {
			return time.Time{}
		}
		return time.Unix(seconds, 0).UTC()
	}
	return time.Time{}
}
