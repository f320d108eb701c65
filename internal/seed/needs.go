// Package seed creates example needs in a development Publishing API so
// the list and detail pages have something to show.
package seed

import (
	"context"
	"fmt"

	"maslow/internal/store"
	"maslow/pkg/types"
)

var sampleNeeds = []struct {
	role, goal, benefit string
	impact              string
	justifications      []string
	metWhen             []string
}{
	{
		role:    "user",
		goal:    "find my local register office",
		benefit: "I can visit it to register a birth",
		impact:  "Noticed by the average member of the public",
		justifications: []string{
			"It's something only government does",
		},
		metWhen: []string{
			"finds the address of their local register office",
			"knows the opening hours",
		},
	},
	{
		role:    "small business owner",
		goal:    "work out which VAT scheme applies to my business",
		benefit: "I charge and reclaim the right amount of tax",
		impact:  "Has consequences for the majority of your users",
		justifications: []string{
			"The government is legally obliged to provide it",
			"There is clear demand for it from users",
		},
		metWhen: []string{
			"identifies the applicable VAT scheme",
		},
	},
	{
		role:    "parent",
		goal:    "apply for free school meals",
		benefit: "my children are fed during the school day",
		impact:  "Has serious consequences for your users and/or their customers",
		justifications: []string{
			"It's something the government provides/does/pays for",
		},
		metWhen: []string{
			"checks their eligibility",
			"submits an application to their local authority",
		},
	},
}

// SeedNeeds writes the sample needs as drafts. Existing content is never
// touched; every run creates fresh needs with fresh content ids.
func SeedNeeds(ctx context.Context, needsStore *store.NeedStore) error {
	created := 0
	for _, sample := range sampleNeeds {
		need := types.NewNeed()
		need.Role = sample.role
		need.Goal = sample.goal
		need.Benefit = sample.benefit
		need.Impact = sample.impact
		need.Justifications = sample.justifications
		need.MetWhen = sample.metWhen

		if err := needsStore.Save(ctx, need); err != nil {
			return fmt.Errorf("failed to seed need %q: %w", sample.goal, err)
		}
		created++
	}

	fmt.Printf("Seeded %d needs\n", created)
	return nil
}
