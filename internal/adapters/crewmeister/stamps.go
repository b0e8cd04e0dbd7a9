package crewmeister

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/crewtime-cli/internal/domain"
)

// stampWireFormat is the second-precision UTC timestamp the stamps
// endpoint expects.
const stampWireFormat = "2006-01-02T15:04:05Z"

// LatestStamp returns the most recent stamp, optionally filtered to one
// user. A userID of 0 means "whoever the token belongs to".
func (c *Client) LatestStamp(ctx context.Context, userID int64) (*domain.Stamp, error) {
	query := url.Values{}
	query.Set("pageSize", "1")
	query.Set("sort", "-timestamp")
	if userID > 0 {
		query.Set("filter", fmt.Sprintf("userId==%d", userID))
	}

	data, err := c.requestJSON(ctx, http.MethodGet, stampsPath, query, nil)
	if err != nil {
		return nil, err
	}

	content := contentList(data)
	if len(content) == 0 {
		return nil, nil
	}
	raw, ok := content[0].(map[string]any)
	if !ok {
		return nil, nil
	}
	return &domain.Stamp{Raw: raw}, nil
}

// CreateStamp creates a stamp for the authenticated user. The timestamp is
// normalized to UTC and truncated to whole seconds; the allocation date
// defaults to the timestamp's date when no override is given.
func (c *Client) CreateStamp(ctx context.Context, req domain.StampRequest) (*domain.Stamp, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedStampType, req.Type)
	}

	identity, err := c.Identity(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = c.clock.Now()
	}
	timestamp = timestamp.UTC().Truncate(time.Second)

	allocationDate := req.AllocationDate
	if allocationDate == "" {
		allocationDate = timestamp.Format("2006-01-02")
	}

	payload := map[string]any{
		"@type":          "com.crewmeister/Stamp",
		"crewId":         identity.CrewID,
		"userId":         identity.UserID,
		"stampType":      string(req.Type),
		"timestamp":      timestamp.Format(stampWireFormat),
		"allocationDate": allocationDate,
	}
	if req.Note != "" {
		payload["note"] = req.Note
	}
	if req.Location != "" {
		payload["location"] = req.Location
	}
	if req.ChainStartStampID != nil {
		payload["chainStartStampId"] = *req.ChainStartStampID
	}
	if req.TimeAccountID > 0 {
		payload["timeAccountId"] = req.TimeAccountID
	}
	for slot, categoryID := range req.TimeCategoryIDs {
		payload["timeCategory"+strconv.Itoa(slot)+"Id"] = categoryID
	}

	data, err := c.requestJSON(ctx, http.MethodPost, stampsPath, nil, payload)
	if err != nil {
		return nil, err
	}

	// Writes come back wrapped in a SyncWriteResponse envelope; fall back
	// to the raw body when the envelope is missing.
	if wrapped, ok := data.(map[string]any); ok {
		if resource, ok := wrapped["resourceAfterWrite"].(map[string]any); ok {
			return &domain.Stamp{Raw: resource}, nil
		}
		return &domain.Stamp{Raw: wrapped}, nil
	}
	return &domain.Stamp{Raw: map[string]any{}}, nil
}

func contentList(data any) []any {
	wrapper, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	content, _ := wrapper["content"].([]any)
	return content
}
