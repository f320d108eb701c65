package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type NeedStatus string

const (
	NeedStatusDraft       NeedStatus = "draft"
	NeedStatusPublished   NeedStatus = "published"
	NeedStatusUnpublished NeedStatus = "unpublished"
)

// Impacts is the fixed severity ranking for the consequence of not
// meeting a need. Order matters; it is the display order in forms.
var Impacts = []string{
	"No impact",
	"Noticed only by an expert audience",
	"Noticed by the average member of the public",
	"Has consequences for the majority of your users",
	"Has serious consequences for your users and/or their customers",
	"Endangers people",
}

// Justifications is the fixed list of policy reasons a need is
// considered government's responsibility.
var Justifications = []string{
	"It's something only government does",
	"The government is legally obliged to provide it",
	"It's inherent to a person's or an organisation's rights and obligations",
	"It's something that people can do or it's something people need to know before they can do something that's regulated by/related to government",
	"There is clear demand for it from users",
	"It's something the government provides/does/pays for",
	"Striking examples of misinformation about the need that requires government response",
}

type Need struct {
	ContentID string
	NeedID    *int // legacy numeric identifier, pre-Publishing-API

	Role           string
	Goal           string
	Benefit        string
	Impact         string
	Justifications []string
	MetWhen        []string
	Legislation    string
	OtherEvidence  string

	OrganisationIDs []string

	YearlyUserContacts *int
	YearlySiteViews    *int
	YearlyNeedViews    *int
	YearlySearches     *int

	// Publishing metadata, passed through from the remote API.
	BasePath                string
	PublicationState        string
	UnpublishingExplanation string
	FirstPublishedAt        string
	UpdatedAt               string

	Persisted bool
}

// NewNeed returns an unpersisted need with a freshly generated content id
// and non-nil slice fields.
func NewNeed() *Need {
	return &Need{
		ContentID:       uuid.NewString(),
		Justifications:  []string{},
		MetWhen:         []string{},
		OrganisationIDs: []string{},
	}
}

// Title synthesizes the display title from the role/goal/benefit triple.
// Needs migrated from the legacy API keep their numeric id as a suffix so
// editors can cross-reference old bookmarks.
func (n *Need) Title() string {
	title := fmt.Sprintf("As a %s, I need to %s, so that %s", n.Role, n.Goal, n.Benefit)
	if n.NeedID != nil {
		title += fmt.Sprintf(" (%d)", *n.NeedID)
	}
	return title
}

// Status maps the remote publication_state onto a NeedStatus. Any value
// outside the three known states is a contract violation by the remote
// API and panics.
func (n *Need) Status() NeedStatus {
	switch n.PublicationState {
	case "draft":
		return NeedStatusDraft
	case "published":
		return NeedStatusPublished
	case "unpublished":
		return NeedStatusUnpublished
	default:
		panic(fmt.Sprintf("unknown publication state %q for content id %s", n.PublicationState, n.ContentID))
	}
}

func (n *Need) IsPublished() bool   { return n.PublicationState == string(NeedStatusPublished) }
func (n *Need) IsUnpublished() bool { return n.PublicationState == string(NeedStatusUnpublished) }

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// BasePathForGoal derives the canonical URL path for a need from its goal
// text: lower-cased, non-alphanumeric runs collapsed to single hyphens.
func BasePathForGoal(goal string) string {
	slug := strings.ToLower(goal)
	slug = slugStrip.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return "/needs/" + slug
}

// StripLeadingNewline normalizes textarea input: browsers submit an
// initial newline for multi-line fields whose opening tag is followed by
// a line break.
func StripLeadingNewline(s string) string {
	s = strings.TrimPrefix(s, "\r\n")
	return strings.TrimPrefix(s, "\n")
}

// PaginatedNeeds wraps one page of needs with the pagination metadata
// reported by the remote API. It is never mutated after construction.
type PaginatedNeeds struct {
	Needs       []*Need
	Total       int
	Pages       int
	PerPage     int
	CurrentPage int
}

func ValidImpact(impact string) bool {
	for _, v := range Impacts {
		if v == impact {
			return true
		}
	}
	return false
}

func ValidJustification(j string) bool {
	for _, v := range Justifications {
		if v == j {
			return true
		}
	}
	return false
}
