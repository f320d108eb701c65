package types

// Revision is one historical snapshot of a need, annotated with the
// field-level differences from the revision immediately before it.
// Changes maps a field name to a [previous, current] value pair.
type Revision struct {
	Version int
	Payload map[string]any
	Changes map[string][]any
}

func (r *Revision) UpdatedAt() string {
	s, _ := r.Payload["updated_at"].(string)
	return s
}
