package review

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestAddTag(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		raw  string
		want []string
	}{
		{"prefixes hash", []string{}, "work", []string{"#work"}},
		{"keeps existing hash", []string{}, "#work", []string{"#work"}},
		{"trims input", []string{"#a"}, "  idea  ", []string{"#a", "#idea"}},
		{"drops duplicate", []string{"#work"}, "#work", []string{"#work"}},
		{"drops duplicate after prefix", []string{"#work"}, "work", []string{"#work"}},
		{"blank input", []string{"#a"}, "   ", []string{"#a"}},
		{"appends at end", []string{"#a", "#b"}, "c", []string{"#a", "#b", "#c"}},
		{"case sensitive", []string{"#Work"}, "work", []string{"#Work", "#work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, AddTag(tt.tags, tt.raw), tt.want)
		})
	}
}

func TestAddTag_DoesNotMutateInput(t *testing.T) {
	tags := make([]string, 1, 4)
	tags[0] = "#a"

	got := AddTag(tags, "b")

	assert.DeepEqual(t, got, []string{"#a", "#b"})
	assert.Equal(t, len(tags), 1)
}

func TestRemoveTag(t *testing.T) {
	tags := []string{"#a", "#b", "#c"}

	assert.DeepEqual(t, RemoveTag(tags, 1), []string{"#a", "#c"})
	assert.DeepEqual(t, RemoveTag(tags, -1), []string{"#a", "#b", "#c"})
	assert.DeepEqual(t, RemoveTag(tags, 3), []string{"#a", "#b", "#c"})
	assert.DeepEqual(t, tags, []string{"#a", "#b", "#c"})
}

func TestTagEditor_SubmitAndRemove(t *testing.T) {
	var changes [][]string
	e := NewTagEditor([]string{"#work"}, func(tags []string) {
		changes = append(changes, tags)
	})

	e.SetInput("#work")
	e.Submit()
	assert.Equal(t, e.Input(), "")
	assert.Equal(t, len(changes), 0, "duplicate must not report a change")

	e.SetInput("idea")
	e.Submit()
	assert.DeepEqual(t, e.Tags(), []string{"#work", "#idea"})
	assert.Equal(t, len(changes), 1)

	e.Remove(0)
	assert.DeepEqual(t, e.Tags(), []string{"#idea"})
	assert.DeepEqual(t, changes[1], []string{"#idea"})

	e.Remove(5)
	assert.Equal(t, len(changes), 2)
}

func TestTagEditor_BlankSubmitKeepsInput(t *testing.T) {
	e := NewTagEditor(nil, nil)
	e.SetInput("   ")
	e.Submit()

	assert.Equal(t, e.Input(), "   ")
	assert.Equal(t, len(e.Tags()), 0)
}

func TestHighlightedTags(t *testing.T) {
	assert.DeepEqual(t, HighlightedTags([]string{"#a", "#b", "#c"}, []string{"#c", "#a", "#z"}), []string{"#a", "#c"})
	assert.Assert(t, HighlightedTags([]string{"#a"}, nil) == nil)
}
