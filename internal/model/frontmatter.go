package model

// FrontmatterUpdate describes a frontmatter write. Tags are merged into
// any tags already on the file; every entry in Fields overwrites the
// existing key. Nil field values are skipped.
type FrontmatterUpdate struct {
	Tags   []string
	Fields map[string]any
}

// FrontmatterFor builds the update written when a suggestion is accepted.
func FrontmatterFor(s OrganizationSuggestion) FrontmatterUpdate {
	fields := make(map[string]any)
	if s.Area != "" {
		fields["area"] = s.Area
	}
	if s.Reason != "" {
		fields["reason"] = s.Reason
	}
	return FrontmatterUpdate{Tags: s.Tags, Fields: fields}
}
