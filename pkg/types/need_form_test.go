package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *NeedForm {
	return &NeedForm{
		Role:    "user",
		Goal:    "find my local register office",
		Benefit: "I can register a birth",
	}
}

func TestNeedFormValidateRequiredFields(t *testing.T) {
	errs := validForm().Validate()
	assert.True(t, errs.Valid())

	for _, field := range []string{"role", "goal", "benefit"} {
		f := validForm()
		switch field {
		case "role":
			f.Role = "   "
		case "goal":
			f.Goal = ""
		case "benefit":
			f.Benefit = ""
		}
		errs := f.Validate()
		assert.False(t, errs.Valid())
		assert.NotEmpty(t, errs.On(field), "expected an error on %s", field)
	}
}

func TestNeedFormValidateReportsAllErrors(t *testing.T) {
	f := &NeedForm{Impact: "Catastrophic", YearlySearches: "-4"}
	errs := f.Validate()

	assert.NotEmpty(t, errs.On("role"))
	assert.NotEmpty(t, errs.On("goal"))
	assert.NotEmpty(t, errs.On("benefit"))
	assert.NotEmpty(t, errs.On("impact"))
	assert.NotEmpty(t, errs.On("yearly_searches"))
}

func TestNeedFormValidateImpact(t *testing.T) {
	for _, impact := range Impacts {
		f := validForm()
		f.Impact = impact
		assert.True(t, f.Validate().Valid(), "impact %q should be valid", impact)
	}

	f := validForm()
	f.Impact = "Catastrophic"
	errs := f.Validate()
	assert.NotEmpty(t, errs.On("impact"))

	// blank impact is allowed
	f = validForm()
	f.Impact = ""
	assert.True(t, f.Validate().Valid())
}

func TestNeedFormValidateJustifications(t *testing.T) {
	f := validForm()
	f.Justifications = []string{Justifications[0], Justifications[4]}
	assert.True(t, f.Validate().Valid())

	f = validForm()
	f.Justifications = []string{Justifications[0], "Because we felt like it", "Another bad one"}
	errs := f.Validate()
	require.False(t, errs.Valid())

	// one combined error regardless of how many elements fail
	count := 0
	for _, e := range errs {
		if e.Field == "justifications" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestNeedFormValidateYearlyValues(t *testing.T) {
	valid := []string{"", "0", "1000", " 42 "}
	invalid := []string{"-1", "3.5", "lots", "1e3"}

	for _, v := range valid {
		f := validForm()
		f.YearlyUserContacts = v
		assert.True(t, f.Validate().Valid(), "value %q should be valid", v)
	}
	for _, v := range invalid {
		f := validForm()
		f.YearlyUserContacts = v
		errs := f.Validate()
		assert.NotEmpty(t, errs.On("yearly_user_contacts"), "value %q should be invalid", v)
	}
}

func TestNeedFormApply(t *testing.T) {
	f := validForm()
	f.Impact = Impacts[1]
	f.Justifications = []string{Justifications[0]}
	f.OrganisationIDs = []string{"org-1", "org-2"}
	f.MetWhen = "finds the address\n\nknows the opening hours\n"
	f.Legislation = "\nRegistration Service Act 1953"
	f.OtherEvidence = "\nSearch logs"
	f.YearlyUserContacts = "1000"
	f.YearlySiteViews = ""

	need := NewNeed()
	f.Apply(need)

	assert.Equal(t, "user", need.Role)
	assert.Equal(t, Impacts[1], need.Impact)
	assert.Equal(t, []string{"org-1", "org-2"}, need.OrganisationIDs)
	assert.Equal(t, []string{"finds the address", "knows the opening hours"}, need.MetWhen)
	assert.Equal(t, "Registration Service Act 1953", need.Legislation)
	assert.Equal(t, "Search logs", need.OtherEvidence)

	require.NotNil(t, need.YearlyUserContacts)
	assert.Equal(t, 1000, *need.YearlyUserContacts)
	assert.Nil(t, need.YearlySiteViews)
}

func TestFormForNeedRoundTrip(t *testing.T) {
	contacts := 500
	need := &Need{
		Role:               "user",
		Goal:               "renew my passport",
		Benefit:            "I can travel",
		Impact:             Impacts[2],
		Justifications:     []string{Justifications[1]},
		MetWhen:            []string{"submits an application", "pays the fee"},
		OrganisationIDs:    []string{"org-9"},
		YearlyUserContacts: &contacts,
	}

	f := FormForNeed(need)
	assert.Equal(t, "submits an application\npays the fee", f.MetWhen)
	assert.Equal(t, "500", f.YearlyUserContacts)
	assert.Equal(t, "", f.YearlySiteViews)

	applied := NewNeed()
	f.Apply(applied)
	assert.Equal(t, need.Role, applied.Role)
	assert.Equal(t, need.MetWhen, applied.MetWhen)
	assert.Equal(t, need.Justifications, applied.Justifications)
	require.NotNil(t, applied.YearlyUserContacts)
	assert.Equal(t, contacts, *applied.YearlyUserContacts)
}

func TestSplitCriteria(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCriteria("a\r\nb"))
	assert.Equal(t, []string{}, SplitCriteria(""))
	assert.Equal(t, []string{"only"}, SplitCriteria("\n  only  \n\n"))
}
