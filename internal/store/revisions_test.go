package store

import (
	"context"
	"errors"
	"testing"

	"maslow/internal/publishing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisions(t *testing.T) {
	var fetchedVersions []int

	api := &fakeAPI{
		getContent: func(_ context.Context, _ string) (publishing.Payload, error) {
			return publishing.Payload{
				"user_facing_version": float64(3),
				"details": map[string]any{
					"role": "User",
					"goal": "X",
				},
			}, nil
		},
		getContentVersion: func(_ context.Context, _ string, version int) (publishing.Payload, error) {
			fetchedVersions = append(fetchedVersions, version)
			switch version {
			case 2:
				return publishing.Payload{
					"user_facing_version": float64(2),
					"details": map[string]any{
						"role": "User",
						"goal": "Y",
					},
				}, nil
			case 1:
				return publishing.Payload{
					"user_facing_version": float64(1),
					"details": map[string]any{
						"role": "User",
					},
				}, nil
			}
			return nil, errors.New("unexpected version")
		},
	}

	s := NewNeedStore(api, testLogger(), 50)
	revisions, err := s.Revisions(context.Background(), "abc-123")
	require.NoError(t, err)

	// prior versions fetched strictly newest to oldest, one call each
	assert.Equal(t, []int{2, 1}, fetchedVersions)

	require.Len(t, revisions, 3)
	assert.Equal(t, 3, revisions[0].Version)
	assert.Equal(t, 2, revisions[1].Version)
	assert.Equal(t, 1, revisions[2].Version)

	// version 3 vs 2: only goal changed, oldest value first
	assert.Equal(t, map[string][]any{"goal": {"Y", "X"}}, revisions[0].Changes)

	// version 2 vs 1: goal appeared
	assert.Equal(t, map[string][]any{"goal": {nil, "Y"}}, revisions[1].Changes)

	// version 1 is compared against an empty predecessor
	assert.Equal(t, map[string][]any{"role": {nil, "User"}}, revisions[2].Changes)
}

func TestRevisionsSingleVersion(t *testing.T) {
	api := &fakeAPI{
		getContent: func(_ context.Context, _ string) (publishing.Payload, error) {
			return publishing.Payload{
				"user_facing_version": float64(1),
				"details":             map[string]any{},
			}, nil
		},
		getContentVersion: func(_ context.Context, _ string, _ int) (publishing.Payload, error) {
			t.Fatal("no prior versions should be fetched when N=1")
			return nil, nil
		},
	}

	s := NewNeedStore(api, testLogger(), 50)
	revisions, err := s.Revisions(context.Background(), "abc-123")
	require.NoError(t, err)

	require.Len(t, revisions, 1)
	assert.Empty(t, revisions[0].Changes)
}

func TestRevisionsFetchFailureAborts(t *testing.T) {
	api := &fakeAPI{
		getContent: func(_ context.Context, _ string) (publishing.Payload, error) {
			return publishing.Payload{"user_facing_version": float64(2)}, nil
		},
		getContentVersion: func(_ context.Context, _ string, _ int) (publishing.Payload, error) {
			return nil, errors.New("boom")
		},
	}

	s := NewNeedStore(api, testLogger(), 50)
	revisions, err := s.Revisions(context.Background(), "abc-123")
	assert.Error(t, err)
	assert.Nil(t, revisions, "no partial results on failure")
}

func TestDiffRevisionsExcludesVersionCounter(t *testing.T) {
	changes := diffRevisions(
		map[string]any{"user_facing_version": float64(1), "goal": "same"},
		map[string]any{"user_facing_version": float64(2), "goal": "same"},
	)
	assert.Empty(t, changes)
}
