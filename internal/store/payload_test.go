package store

import (
	"testing"

	"maslow/internal/publishing"
	"maslow/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPayload(t *testing.T) {
	payload := publishing.Payload{
		"content_id":        "abc-123",
		"publication_state": "published",
		"goal":              "top level wins",
		"publishing_app":    "maslow",
		"lock_version":      float64(4),
		"details": map[string]any{
			"role":          "user",
			"goal":          "shadowed by top level",
			"rendering_app": "info-frontend",
		},
	}

	flat := flattenPayload(payload)

	assert.Equal(t, "abc-123", flat["content_id"])
	assert.Equal(t, "user", flat["role"])
	assert.Equal(t, "top level wins", flat["goal"])

	for _, bookkeeping := range []string{"publishing_app", "rendering_app", "lock_version", "details"} {
		_, present := flat[bookkeeping]
		assert.False(t, present, "%s should be dropped", bookkeeping)
	}
}

func TestNeedFromPayload(t *testing.T) {
	payload := publishing.Payload{
		"content_id":         "abc-123",
		"publication_state":  "published",
		"base_path":          "/needs/find-my-local-register-office",
		"first_published_at": "2014-05-01T12:00:00Z",
		"details": map[string]any{
			"role":                 "user",
			"goal":                 "find my local register office",
			"benefit":              "I can register a birth",
			"impact":               "Noticed by the average member of the public",
			"justifications":       []any{"It's something only government does"},
			"met_when":             []any{"finds the address"},
			"need_id":              float64(100001),
			"yearly_user_contacts": float64(5000),
		},
	}

	need := needFromPayload(payload)

	assert.True(t, need.Persisted)
	assert.Equal(t, "abc-123", need.ContentID)
	assert.Equal(t, "user", need.Role)
	assert.Equal(t, "find my local register office", need.Goal)
	assert.Equal(t, []string{"It's something only government does"}, need.Justifications)
	assert.Equal(t, []string{"finds the address"}, need.MetWhen)
	assert.Equal(t, "published", need.PublicationState)
	assert.Equal(t, types.NeedStatusPublished, need.Status())

	require.NotNil(t, need.NeedID)
	assert.Equal(t, 100001, *need.NeedID)
	require.NotNil(t, need.YearlyUserContacts)
	assert.Equal(t, 5000, *need.YearlyUserContacts)
	assert.Nil(t, need.YearlySiteViews)
}

func TestNeedFromPayloadUnpublishing(t *testing.T) {
	payload := publishing.Payload{
		"content_id":        "abc-123",
		"publication_state": "unpublished",
		"unpublishing": map[string]any{
			"type":        "withdrawal",
			"explanation": "duplicate of another need",
		},
	}

	need := needFromPayload(payload)
	assert.Equal(t, "duplicate of another need", need.UnpublishingExplanation)
}

func TestPayloadForNeed(t *testing.T) {
	contacts := 5000
	need := types.NewNeed()
	need.Role = "user"
	need.Goal = "find my local register office"
	need.Benefit = "I can register a birth"
	need.Justifications = []string{"It's something only government does"}
	need.MetWhen = []string{"finds the address"}
	need.Legislation = "\nRegistration Service Act 1953"
	need.YearlyUserContacts = &contacts

	payload := payloadForNeed(need)

	assert.Equal(t, "need", payload["schema_name"])
	assert.Equal(t, "maslow", payload["publishing_app"])
	assert.Equal(t, "info-frontend", payload["rendering_app"])
	assert.Equal(t, "need", payload["document_type"])
	assert.Equal(t, "en", payload["locale"])
	assert.Equal(t, "/needs/find-my-local-register-office", payload["base_path"])
	assert.Equal(t, "As a user, I need to find my local register office, so that I can register a birth", payload["title"])

	routes, ok := payload["routes"].([]publishing.Payload)
	require.True(t, ok)
	require.Len(t, routes, 1)
	assert.Equal(t, "/needs/find-my-local-register-office", routes[0]["path"])
	assert.Equal(t, "exact", routes[0]["type"])

	details, ok := payload["details"].(publishing.Payload)
	require.True(t, ok)
	assert.Equal(t, "user", details["role"])
	assert.Equal(t, 5000, details["yearly_user_contacts"])

	// leading newline stripped before anything leaves the process
	assert.Equal(t, "Registration Service Act 1953", details["legislation"])

	// blank values are omitted, not sent as empty
	for _, absent := range []string{"impact", "other_evidence", "yearly_site_views", "need_id"} {
		_, present := details[absent]
		assert.False(t, present, "%s should be omitted when blank", absent)
	}
}

// Hydrating from a details-nested document and serializing back out must
// reproduce the original detail fields, and bookkeeping fields must not
// reappear.
func TestPayloadRoundTrip(t *testing.T) {
	original := publishing.Payload{
		"content_id": "abc-123",
		"details": map[string]any{
			"role":           "user",
			"goal":           "find my local register office",
			"benefit":        "I can register a birth",
			"impact":         "Noticed by the average member of the public",
			"justifications": []any{"It's something only government does"},
			"met_when":       []any{"finds the address"},
			"legislation":    "Registration Service Act 1953",
		},
		"publishing_app": "some-other-app",
		"lock_version":   float64(9),
	}

	need := needFromPayload(original)
	out := payloadForNeed(need)

	details, ok := out["details"].(publishing.Payload)
	require.True(t, ok)
	assert.Equal(t, "user", details["role"])
	assert.Equal(t, "find my local register office", details["goal"])
	assert.Equal(t, "I can register a birth", details["benefit"])
	assert.Equal(t, "Noticed by the average member of the public", details["impact"])
	assert.Equal(t, []string{"It's something only government does"}, details["justifications"])
	assert.Equal(t, []string{"finds the address"}, details["met_when"])
	assert.Equal(t, "Registration Service Act 1953", details["legislation"])

	assert.Equal(t, "maslow", out["publishing_app"])
	_, present := out["lock_version"]
	assert.False(t, present)
}
