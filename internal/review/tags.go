package review

import "strings"

// AddTag appends raw to tags as a "#"-prefixed tag. Blank input and
// duplicates leave the list unchanged. The input slice is not modified.
func AddTag(tags []string, raw string) []string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	out := make([]string, 0, len(tags)+1)
	out = append(out, tags...)
	return append(out, tag)
}

// RemoveTag returns tags without the element at index. Out-of-range
// indexes return an unchanged copy.
func RemoveTag(tags []string, index int) []string {
	out := make([]string, 0, len(tags))
	for i, t := range tags {
		if i != index {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeTag trims raw and ensures a leading "#". Blank input yields "".
func NormalizeTag(raw string) string {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return ""
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}

// TagEditor edits one row's tag list. It owns only the pending input
// text; the tags themselves are written back through OnChange.
type TagEditor struct {
	tags     []string
	input    string
	OnChange func(tags []string)
}

// NewTagEditor creates an editor over tags.
func NewTagEditor(tags []string, onChange func([]string)) *TagEditor {
	return &TagEditor{
		tags:     append([]string{}, tags...),
		OnChange: onChange,
	}
}

// Tags returns the current tag list.
func (e *TagEditor) Tags() []string {
	return e.tags
}

// Input returns the pending text.
func (e *TagEditor) Input() string {
	return e.input
}

// SetInput replaces the pending text.
func (e *TagEditor) SetInput(s string) {
	e.input = s
}

// Submit adds the pending text as a tag and clears the input. Blank
// input is ignored and left in place.
func (e *TagEditor) Submit() {
	if strings.TrimSpace(e.input) == "" {
		return
	}
	next := AddTag(e.tags, e.input)
	e.input = ""
	if len(next) == len(e.tags) {
		return
	}
	e.set(next)
}

// Remove drops the tag at index.
func (e *TagEditor) Remove(index int) {
	if index < 0 || index >= len(e.tags) {
		return
	}
	e.set(RemoveTag(e.tags, index))
}

func (e *TagEditor) set(tags []string) {
	e.tags = tags
	if e.OnChange != nil {
		e.OnChange(append([]string{}, tags...))
	}
}

// HighlightedTags returns the subset of tags that appear in newTags,
// preserving tag order.
func HighlightedTags(tags, newTags []string) []string {
	if len(newTags) == 0 {
		return nil
	}
	fresh := make(map[string]bool, len(newTags))
	for _, t := range newTags {
		fresh[t] = true
	}
	var out []string
	for _, t := range tags {
		if fresh[t] {
			out = append(out, t)
		}
	}
	return out
}
