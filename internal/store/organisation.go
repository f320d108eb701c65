package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"maslow/internal/publishing"
	"maslow/pkg/types"
)

const organisationCacheTTL = 15 * time.Minute

// OrganisationStore resolves organisation content ids to display names.
// The full organisation list changes rarely and is needed on every form
// render, so it is cached in-process.
type OrganisationStore struct {
	api publishing.API

	mu        sync.Mutex
	cached    []*types.Organisation
	fetchedAt time.Time
}

func NewOrganisationStore(api publishing.API) *OrganisationStore {
	return &OrganisationStore{api: api}
}

func (s *OrganisationStore) All(ctx context.Context) ([]*types.Organisation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < organisationCacheTTL {
		return s.cached, nil
	}

	resp, err := s.api.GetContentItems(ctx, publishing.ContentItemsOptions{
		DocumentType: "organisation",
		Fields:       []string{"content_id", "title", "details"},
		Order:        "title",
		PerPage:      1000,
	})
	if err != nil {
		// A stale list beats an unusable form.
		if s.cached != nil {
			return s.cached, nil
		}
		return nil, fmt.Errorf("failed to fetch organisations: %w", err)
	}

	orgs := make([]*types.Organisation, 0, len(resp.Results))
	for _, payload := range resp.Results {
		org := &types.Organisation{
			ContentID: stringField(payload, "content_id"),
			Title:     stringField(payload, "title"),
		}
		if details, ok := payload["details"].(map[string]any); ok {
			org.Abbreviation = stringField(details, "abbreviation")
		}
		orgs = append(orgs, org)
	}

	s.cached = orgs
	s.fetchedAt = time.Now()
	return orgs, nil
}

// NamesFor resolves ids to display names, preserving the input order.
// Unknown ids fall back to the raw id so a broken link is visible rather
// than silent.
func (s *OrganisationStore) NamesFor(ctx context.Context, ids []string) ([]string, error) {
	orgs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*types.Organisation, len(orgs))
	for _, org := range orgs {
		byID[org.ContentID] = org
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if org, ok := byID[id]; ok {
			names = append(names, org.DisplayName())
		} else {
			names = append(names, id)
		}
	}
	return names, nil
}
