package store

import (
	"context"
	"fmt"
	"reflect"

	"maslow/pkg/types"
)

// Revisions reconstructs the full history of a need, newest first. The
// latest document reports its user_facing_version N; versions N-1 down
// to 1 are fetched one call at a time. Each revision's Changes maps a
// field name to a [previous, current] pair against the next-older
// revision; the oldest revision is compared against an empty document.
// Any failed fetch aborts the whole reconstruction.
func (s *NeedStore) Revisions(ctx context.Context, contentID string) ([]*types.Revision, error) {
	latest, err := s.api.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest revision of %s: %w", contentID, err)
	}

	current := flattenPayload(latest)
	version := 1
	if v := intField(current, "user_facing_version"); v != nil {
		version = *v
	}

	revisions := []*types.Revision{{Version: version, Payload: current}}
	for v := version - 1; v >= 1; v-- {
		payload, err := s.api.GetContentVersion(ctx, contentID, v)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch revision %d of %s: %w", v, contentID, err)
		}
		revisions = append(revisions, &types.Revision{Version: v, Payload: flattenPayload(payload)})
	}

	for i, rev := range revisions {
		var previous map[string]any
		if i+1 < len(revisions) {
			previous = revisions[i+1].Payload
		}
		rev.Changes = diffRevisions(previous, rev.Payload)
	}

	return revisions, nil
}

// diffRevisions walks the union of both documents' field names and keeps
// every field whose value differs, recording the older value first. The
// version counter itself always differs and is excluded.
func diffRevisions(previous, current map[string]any) map[string][]any {
	changes := map[string][]any{}

	keys := map[string]struct{}{}
	for k := range previous {
		keys[k] = struct{}{}
	}
	for k := range current {
		keys[k] = struct{}{}
	}
	delete(keys, "user_facing_version")

	for k := range keys {
		before, after := previous[k], current[k]
		if !reflect.DeepEqual(before, after) {
			changes[k] = []any{before, after}
		}
	}

	return changes
}
