package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"maslow/internal/publishing"
	"maslow/pkg/types"

	"github.com/sirupsen/logrus"
)

const organisationsLinkType = "organisations"

// conflictContentID matches the content id the Publishing API embeds in
// its base-path-conflict error message.
var conflictContentID = regexp.MustCompile(`content_id=([a-zA-Z0-9-]+)`)

// NeedStore persists needs through the Publishing API. It holds no state
// of its own; every operation is one or more remote calls.
type NeedStore struct {
	api     publishing.API
	logger  *logrus.Logger
	perPage int
}

func NewNeedStore(api publishing.API, logger *logrus.Logger, perPage int) *NeedStore {
	if perPage <= 0 {
		perPage = 50
	}
	return &NeedStore{api: api, logger: logger, perPage: perPage}
}

// List fetches one page of needs, newest first. The q filter is passed
// through to the remote search untouched.
func (s *NeedStore) List(ctx context.Context, page int, q string) (*types.PaginatedNeeds, error) {
	if page < 1 {
		page = 1
	}

	resp, err := s.api.GetContentItems(ctx, publishing.ContentItemsOptions{
		DocumentType: "need",
		Fields:       []string{"content_id", "details", "publication_state", "updated_at", "base_path"},
		Order:        "-updated_at",
		Locale:       locale,
		Q:            q,
		PerPage:      s.perPage,
		Page:         page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch needs: %w", err)
	}

	needs := make([]*types.Need, 0, len(resp.Results))
	for _, payload := range resp.Results {
		needs = append(needs, needFromPayload(payload))
	}

	return &types.PaginatedNeeds{
		Needs:       needs,
		Total:       resp.Total,
		Pages:       resp.Pages,
		PerPage:     s.perPage,
		CurrentPage: resp.CurrentPage,
	}, nil
}

// Need fetches a single need and its organisation links.
func (s *NeedStore) Need(ctx context.Context, contentID string) (*types.Need, error) {
	payload, err := s.api.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, types.ErrNeedNotFound) {
			return nil, types.ErrNeedNotFound
		}
		return nil, fmt.Errorf("failed to fetch need %s: %w", contentID, err)
	}

	need := needFromPayload(payload)

	links, err := s.api.GetLinks(ctx, contentID)
	if err != nil && !errors.Is(err, types.ErrNeedNotFound) {
		return nil, fmt.Errorf("failed to fetch links for need %s: %w", contentID, err)
	}
	if links != nil {
		need.OrganisationIDs = linkedIDs(links, organisationsLinkType)
	}

	return need, nil
}

// Save writes the need as a draft and patches its organisation links. A
// conflict on the derived base path is returned as a
// BasePathAlreadyInUseError carrying the id of the need that owns the
// path.
func (s *NeedStore) Save(ctx context.Context, need *types.Need) error {
	payload := payloadForNeed(need)

	if err := s.api.PutContent(ctx, need.ContentID, payload); err != nil {
		if conflict := basePathConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to save need %s: %w", need.ContentID, err)
	}

	links := publishing.Payload{
		"links": map[string]any{
			organisationsLinkType: need.OrganisationIDs,
		},
	}
	if err := s.api.PatchLinks(ctx, need.ContentID, links); err != nil {
		return fmt.Errorf("failed to update organisations for need %s: %w", need.ContentID, err)
	}

	need.Persisted = true
	need.BasePath = payload["base_path"].(string)
	if need.PublicationState == "" {
		need.PublicationState = string(types.NeedStatusDraft)
	}

	return nil
}

// Publish requests a major-version publish. An unpublished need has no
// current draft, so one is saved first.
func (s *NeedStore) Publish(ctx context.Context, need *types.Need) error {
	if need.IsUnpublished() {
		if err := s.Save(ctx, need); err != nil {
			return err
		}
	}

	if err := s.api.Publish(ctx, need.ContentID, "major"); err != nil {
		return fmt.Errorf("failed to publish need %s: %w", need.ContentID, err)
	}

	need.PublicationState = string(types.NeedStatusPublished)
	return nil
}

// Unpublish withdraws a published need. The explanation is shown to the
// public in place of the need and is required.
func (s *NeedStore) Unpublish(ctx context.Context, need *types.Need, explanation string) error {
	if explanation == "" {
		return errors.New("an explanation is required to unpublish a need")
	}

	payload := publishing.Payload{
		"type":        "withdrawal",
		"explanation": explanation,
	}
	if err := s.api.Unpublish(ctx, need.ContentID, payload); err != nil {
		return fmt.Errorf("failed to unpublish need %s: %w", need.ContentID, err)
	}

	need.PublicationState = string(types.NeedStatusUnpublished)
	need.UnpublishingExplanation = explanation
	return nil
}

// Discard throws away the need's current draft.
func (s *NeedStore) Discard(ctx context.Context, need *types.Need) error {
	if err := s.api.DiscardDraft(ctx, need.ContentID); err != nil {
		return fmt.Errorf("failed to discard draft of need %s: %w", need.ContentID, err)
	}
	return nil
}

// ContentItemsMeetingNeed lists the published pages that cite this need.
func (s *NeedStore) ContentItemsMeetingNeed(ctx context.Context, contentID string) ([]publishing.Payload, error) {
	items, err := s.api.GetLinkedItems(ctx, contentID, "meets_user_needs", []string{"title", "base_path", "document_type"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content meeting need %s: %w", contentID, err)
	}
	return items, nil
}

func basePathConflict(err error) *types.BasePathAlreadyInUseError {
	var httpErr *publishing.HTTPError
	if !errors.As(err, &httpErr) {
		return nil
	}

	match := conflictContentID.FindStringSubmatch(httpErr.Message)
	if match == nil {
		for _, messages := range httpErr.Fields {
			for _, msg := range messages {
				if m := conflictContentID.FindStringSubmatch(msg); m != nil {
					match = m
				}
			}
		}
	}
	if match == nil {
		return nil
	}

	return &types.BasePathAlreadyInUseError{ContentID: match[1]}
}

func linkedIDs(links publishing.Payload, linkType string) []string {
	linkSet, ok := links["links"].(map[string]any)
	if !ok {
		return []string{}
	}
	return stringSliceField(linkSet, linkType)
}
