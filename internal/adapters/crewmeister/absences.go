package crewmeister

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/bnema/crewtime-cli/internal/domain"
)

// Absences fetches the user's absences overlapping [start, end]. The state
// set is rendered sorted so the filter expression stays deterministic.
func (c *Client) Absences(ctx context.Context, userID int64, start, end time.Time, states []string) ([]domain.Absence, error) {
	filters := []string{
		fmt.Sprintf("userId==%d", userID),
		fmt.Sprintf("from<='%s'", end.Format("2006-01-02")),
		fmt.Sprintf("to>='%s'", start.Format("2006-01-02")),
	}
	if len(states) > 0 {
		sorted := append([]string(nil), states...)
		sort.Strings(sorted)
		quoted := make([]string, 0, len(sorted))
		for _, state := range sorted {
			quoted = append(quoted, "'"+state+"'")
		}
		filters = append(filters, "state=in=("+strings.Join(quoted, ",")+")")
	}

	query := url.Values{}
	query.Set("pageSize", "200")
	query.Set("sort", "+from")
	query.Set("filter", strings.Join(filters, ";"))

	data, err := c.requestJSON(ctx, http.MethodGet, absencesPath, query, nil)
	if err != nil {
		return nil, err
	}

	content := contentList(data)
	absences := make([]domain.Absence, 0, len(content))
	for _, item := range content {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		absences = append(absences, domain.ParseAbsence(raw))
	}
	return absences, nil
}

// AbsenceType returns the metadata for one absence type, memoized for the
// client's lifetime. Absence types have bounded cardinality, so the memo
// is never evicted. A fetch failure yields nil so a caller iterating many
// absences is not aborted by one cosmetic lookup.
func (c *Client) AbsenceType(ctx context.Context, typeID int64) map[string]any {
	c.typesMu.Lock()
	cached, ok := c.absenceTypes[typeID]
	c.typesMu.Unlock()
	if ok {
		return cached
	}

	data, err := c.requestJSON(ctx, http.MethodGet, fmt.Sprintf(absenceTypePath, typeID), nil, nil)
	if err != nil {
		c.logger.Debug("could not fetch absence type", "type_id", typeID, "error", err)
		return nil
	}
	info, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	c.typesMu.Lock()
	c.absenceTypes[typeID] = info
	c.typesMu.Unlock()
	return info
}

// AbsenceTypeName resolves the display name of an absence type, preferring
// a translation matching the configured language before the generic name
// fields. Unresolvable names come back empty.
func (c *Client) AbsenceTypeName(ctx context.Context, typeID int64) string {
	info := c.AbsenceType(ctx, typeID)
	if info == nil {
		return ""
	}

	if name := translatedName(info, c.language); name != "" {
		return name
	}
	if name, ok := info["localizedName"].(string); ok && name != "" {
		return name
	}
	for _, key := range []string{"name", "displayName", "absenceTypeName"} {
		if name, ok := info[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}

// translatedName looks the language tag up in the type's translations
// mapping: exact tag first, then the primary subtag. Keys are matched
// case- and separator-insensitively since the API mixes "de_DE" and
// "de-de" style tags.
func translatedName(info map[string]any, language string) string {
	if language == "" {
		return ""
	}
	translations, ok := info["translations"].(map[string]any)
	if !ok || len(translations) == 0 {
		return ""
	}

	normalized := make(map[string]string, len(translations))
	for key, value := range translations {
		text := ""
		switch v := value.(type) {
		case string:
			text = v
		case map[string]any:
			text, _ = v["name"].(string)
		}
		if text != "" {
			normalized[normalizeLanguageTag(key)] = text
		}
	}

	tag := normalizeLanguageTag(language)
	if name, ok := normalized[tag]; ok {
		return name
	}

	primary, _, _ := strings.Cut(tag, "-")
	if name, ok := normalized[primary]; ok {
		return name
	}
	keys := make([]string, 0, len(normalized))
	for key := range normalized {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		keyPrimary, _, _ := strings.Cut(key, "-")
		if keyPrimary == primary {
			return normalized[key]
		}
	}
	return ""
}

func normalizeLanguageTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}
