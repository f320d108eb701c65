package store

import (
	"strconv"

	"maslow/internal/publishing"
	"maslow/pkg/types"
)

// bookkeepingFields are maintained by the Publishing API for its own
// routing and locking; they are dropped on the way in and must never be
// echoed back out.
var bookkeepingFields = []string{
	"publishing_app",
	"rendering_app",
	"document_type",
	"content_store",
	"need_ids",
	"lock_version",
	"warnings",
}

const (
	schemaName    = "need"
	publishingApp = "maslow"
	renderingApp  = "info-frontend"
	locale        = "en"
)

// flattenPayload merges the details sub-document into the top level
// (top-level keys win on conflict) and drops server-only bookkeeping
// fields.
func flattenPayload(payload publishing.Payload) publishing.Payload {
	flat := publishing.Payload{}

	if details, ok := payload["details"].(map[string]any); ok {
		for k, v := range details {
			flat[k] = v
		}
	}
	for k, v := range payload {
		if k == "details" {
			continue
		}
		flat[k] = v
	}

	for _, k := range bookkeepingFields {
		delete(flat, k)
	}

	return flat
}

// needFromPayload hydrates a Need from an API document. Link-derived
// fields (organisation ids) are not part of the content payload and are
// filled in separately.
func needFromPayload(payload publishing.Payload) *types.Need {
	flat := flattenPayload(payload)

	need := types.NewNeed()
	need.Persisted = true

	if id := stringField(flat, "content_id"); id != "" {
		need.ContentID = id
	}
	need.NeedID = intField(flat, "need_id")

	need.Role = stringField(flat, "role")
	need.Goal = stringField(flat, "goal")
	need.Benefit = stringField(flat, "benefit")
	need.Impact = stringField(flat, "impact")
	need.Justifications = stringSliceField(flat, "justifications")
	need.MetWhen = stringSliceField(flat, "met_when")
	need.Legislation = stringField(flat, "legislation")
	need.OtherEvidence = stringField(flat, "other_evidence")

	need.YearlyUserContacts = intField(flat, "yearly_user_contacts")
	need.YearlySiteViews = intField(flat, "yearly_site_views")
	need.YearlyNeedViews = intField(flat, "yearly_need_views")
	need.YearlySearches = intField(flat, "yearly_searches")

	need.BasePath = stringField(flat, "base_path")
	need.PublicationState = stringField(flat, "publication_state")
	need.FirstPublishedAt = stringField(flat, "first_published_at")
	need.UpdatedAt = stringField(flat, "updated_at")

	if unpublishing, ok := flat["unpublishing"].(map[string]any); ok {
		need.UnpublishingExplanation = stringField(unpublishing, "explanation")
	}

	return need
}

// payloadForNeed builds the outbound document: descriptive fields nested
// under details with blank values omitted, plus the fixed publishing
// envelope. Multi-line free-text fields are normalized before they leave
// the process.
func payloadForNeed(need *types.Need) publishing.Payload {
	details := publishing.Payload{}

	putString(details, "role", need.Role)
	putString(details, "goal", need.Goal)
	putString(details, "benefit", need.Benefit)
	putString(details, "impact", need.Impact)
	putStrings(details, "justifications", need.Justifications)
	putStrings(details, "met_when", need.MetWhen)
	putString(details, "legislation", types.StripLeadingNewline(need.Legislation))
	putString(details, "other_evidence", types.StripLeadingNewline(need.OtherEvidence))

	putInt(details, "need_id", need.NeedID)
	putInt(details, "yearly_user_contacts", need.YearlyUserContacts)
	putInt(details, "yearly_site_views", need.YearlySiteViews)
	putInt(details, "yearly_need_views", need.YearlyNeedViews)
	putInt(details, "yearly_searches", need.YearlySearches)

	basePath := types.BasePathForGoal(need.Goal)

	return publishing.Payload{
		"schema_name":    schemaName,
		"publishing_app": publishingApp,
		"rendering_app":  renderingApp,
		"document_type":  "need",
		"locale":         locale,
		"base_path":      basePath,
		"title":          need.Title(),
		"routes": []publishing.Payload{
			{"path": basePath, "type": "exact"},
		},
		"details": details,
	}
}

func putString(p publishing.Payload, key, value string) {
	if value != "" {
		p[key] = value
	}
}

func putStrings(p publishing.Payload, key string, values []string) {
	if len(values) > 0 {
		p[key] = values
	}
}

func putInt(p publishing.Payload, key string, value *int) {
	if value != nil {
		p[key] = *value
	}
}

func stringField(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}

// intField reads a numeric field that may arrive as a JSON number or a
// numeric string, both of which the legacy API emitted.
func intField(p map[string]any, key string) *int {
	switch v := p[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func stringSliceField(p map[string]any, key string) []string {
	out := []string{}
	raw, ok := p[key].([]any)
	if !ok {
		if typed, ok := p[key].([]string); ok {
			return append(out, typed...)
		}
		return out
	}
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
