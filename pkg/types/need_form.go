package types

import (
	"strconv"
	"strings"
)

// NeedForm is the bulk-update surface for a need. The struct definition is
// the complete list of editable fields; anything a form submits outside
// these tags is simply not representable. Numeric usage estimates stay as
// strings until Validate has confirmed they parse.
type NeedForm struct {
	Role           string   `form:"role"`
	Goal           string   `form:"goal"`
	Benefit        string   `form:"benefit"`
	Impact         string   `form:"impact"`
	Justifications []string `form:"justifications"`

	OrganisationIDs []string `form:"organisation_ids"`

	MetWhen       string `form:"met_when"` // multi-line textarea, one criterion per line
	Legislation   string `form:"legislation"`
	OtherEvidence string `form:"other_evidence"`

	YearlyUserContacts string `form:"yearly_user_contacts"`
	YearlySiteViews    string `form:"yearly_site_views"`
	YearlyNeedViews    string `form:"yearly_need_views"`
	YearlySearches     string `form:"yearly_searches"`
}

type FieldError struct {
	Field   string
	Message string
}

type ValidationErrors []FieldError

func (ve ValidationErrors) Valid() bool { return len(ve) == 0 }

// On returns the first error message recorded against the given field,
// or "" when the field is clean.
func (ve ValidationErrors) On(field string) string {
	for _, e := range ve {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validate evaluates every rule independently; it never short-circuits,
// so a form with three problems reports all three.
func (f *NeedForm) Validate() ValidationErrors {
	var errs ValidationErrors

	for _, check := range []struct {
		field, value string
	}{
		{"role", f.Role},
		{"goal", f.Goal},
		{"benefit", f.Benefit},
	} {
		if strings.TrimSpace(check.value) == "" {
			errs = append(errs, FieldError{check.field, "enter the " + check.field + " of the need"})
		}
	}

	if f.Impact != "" && !ValidImpact(f.Impact) {
		errs = append(errs, FieldError{"impact", "select an impact from the list"})
	}

	for _, j := range f.Justifications {
		if !ValidJustification(j) {
			errs = append(errs, FieldError{"justifications", "choose only valid justifications"})
			break
		}
	}

	for _, check := range []struct {
		field, value string
	}{
		{"yearly_user_contacts", f.YearlyUserContacts},
		{"yearly_site_views", f.YearlySiteViews},
		{"yearly_need_views", f.YearlyNeedViews},
		{"yearly_searches", f.YearlySearches},
	} {
		if _, ok := parseYearlyValue(check.value); !ok {
			errs = append(errs, FieldError{check.field, "enter a whole number of 0 or more"})
		}
	}

	return errs
}

// Apply copies the form's values onto a need, coercing numeric and
// multi-line fields. Callers must have run Validate first; Apply drops
// numeric values that do not parse rather than guessing.
func (f *NeedForm) Apply(n *Need) {
	n.Role = strings.TrimSpace(f.Role)
	n.Goal = strings.TrimSpace(f.Goal)
	n.Benefit = strings.TrimSpace(f.Benefit)
	n.Impact = f.Impact
	n.Justifications = copyOrEmpty(f.Justifications)
	n.OrganisationIDs = copyOrEmpty(f.OrganisationIDs)
	n.MetWhen = SplitCriteria(f.MetWhen)
	n.Legislation = StripLeadingNewline(f.Legislation)
	n.OtherEvidence = StripLeadingNewline(f.OtherEvidence)

	n.YearlyUserContacts = yearlyValueOrNil(f.YearlyUserContacts)
	n.YearlySiteViews = yearlyValueOrNil(f.YearlySiteViews)
	n.YearlyNeedViews = yearlyValueOrNil(f.YearlyNeedViews)
	n.YearlySearches = yearlyValueOrNil(f.YearlySearches)
}

// FormForNeed builds the editable representation of an existing need, for
// pre-populating the edit page.
func FormForNeed(n *Need) *NeedForm {
	return &NeedForm{
		Role:            n.Role,
		Goal:            n.Goal,
		Benefit:         n.Benefit,
		Impact:          n.Impact,
		Justifications:  copyOrEmpty(n.Justifications),
		OrganisationIDs: copyOrEmpty(n.OrganisationIDs),
		MetWhen:         strings.Join(n.MetWhen, "\n"),
		Legislation:     n.Legislation,
		OtherEvidence:   n.OtherEvidence,

		YearlyUserContacts: yearlyValueString(n.YearlyUserContacts),
		YearlySiteViews:    yearlyValueString(n.YearlySiteViews),
		YearlyNeedViews:    yearlyValueString(n.YearlyNeedViews),
		YearlySearches:     yearlyValueString(n.YearlySearches),
	}
}

// SplitCriteria turns a met_when textarea into an ordered list of
// acceptance criteria, one per non-blank line.
func SplitCriteria(raw string) []string {
	criteria := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			criteria = append(criteria, line)
		}
	}
	return criteria
}

func parseYearlyValue(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func yearlyValueOrNil(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, ok := parseYearlyValue(raw)
	if !ok {
		return nil
	}
	return &v
}

func yearlyValueString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func copyOrEmpty(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
