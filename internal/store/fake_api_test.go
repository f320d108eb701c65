package store

import (
	"context"

	"maslow/internal/publishing"
)

// fakeAPI implements publishing.API with overridable call hooks. Unset
// hooks return empty documents so tests only wire up what they assert.
type fakeAPI struct {
	getContentItems   func(ctx context.Context, opts publishing.ContentItemsOptions) (*publishing.ContentItemsPage, error)
	getContent        func(ctx context.Context, contentID string) (publishing.Payload, error)
	getContentVersion func(ctx context.Context, contentID string, version int) (publishing.Payload, error)
	getLinks          func(ctx context.Context, contentID string) (publishing.Payload, error)
	getLinkedItems    func(ctx context.Context, contentID, linkType string, fields []string) ([]publishing.Payload, error)
	putContent        func(ctx context.Context, contentID string, payload publishing.Payload) error
	patchLinks        func(ctx context.Context, contentID string, links publishing.Payload) error
	publish           func(ctx context.Context, contentID, updateType string) error
	discardDraft      func(ctx context.Context, contentID string) error
	unpublish         func(ctx context.Context, contentID string, payload publishing.Payload) error
}

func (f *fakeAPI) GetContentItems(ctx context.Context, opts publishing.ContentItemsOptions) (*publishing.ContentItemsPage, error) {
	if f.getContentItems != nil {
		return f.getContentItems(ctx, opts)
	}
	return &publishing.ContentItemsPage{Results: []publishing.Payload{}}, nil
}

func (f *fakeAPI) GetContent(ctx context.Context, contentID string) (publishing.Payload, error) {
	if f.getContent != nil {
		return f.getContent(ctx, contentID)
	}
	return publishing.Payload{}, nil
}

func (f *fakeAPI) GetContentVersion(ctx context.Context, contentID string, version int) (publishing.Payload, error) {
	if f.getContentVersion != nil {
		return f.getContentVersion(ctx, contentID, version)
	}
	return publishing.Payload{}, nil
}

func (f *fakeAPI) GetLinks(ctx context.Context, contentID string) (publishing.Payload, error) {
	if f.getLinks != nil {
		return f.getLinks(ctx, contentID)
	}
	return publishing.Payload{"links": map[string]any{}}, nil
}

func (f *fakeAPI) GetLinkedItems(ctx context.Context, contentID, linkType string, fields []string) ([]publishing.Payload, error) {
	if f.getLinkedItems != nil {
		return f.getLinkedItems(ctx, contentID, linkType, fields)
	}
	return []publishing.Payload{}, nil
}

func (f *fakeAPI) PutContent(ctx context.Context, contentID string, payload publishing.Payload) error {
	if f.putContent != nil {
		return f.putContent(ctx, contentID, payload)
	}
	return nil
}

func (f *fakeAPI) PatchLinks(ctx context.Context, contentID string, links publishing.Payload) error {
	if f.patchLinks != nil {
		return f.patchLinks(ctx, contentID, links)
	}
	return nil
}

func (f *fakeAPI) Publish(ctx context.Context, contentID, updateType string) error {
	if f.publish != nil {
		return f.publish(ctx, contentID, updateType)
	}
	return nil
}

func (f *fakeAPI) DiscardDraft(ctx context.Context, contentID string) error {
	if f.discardDraft != nil {
		return f.discardDraft(ctx, contentID)
	}
	return nil
}

func (f *fakeAPI) Unpublish(ctx context.Context, contentID string, payload publishing.Payload) error {
	if f.unpublish != nil {
		return f.unpublish(ctx, contentID, payload)
	}
	return nil
}
