package vault

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/nikbrunner/inbox/internal/model"
	"gopkg.in/yaml.v3"
)

const fence = "---"

// SplitFrontmatter separates a leading "---" YAML block from the body.
// ok is false when the document has no frontmatter.
func SplitFrontmatter(content string) (front, body string, ok bool) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, fence+"\n") {
		return "", content, false
	}
	rest := normalized[len(fence)+1:]
	if strings.HasPrefix(rest, fence+"\n") || rest == fence {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, fence), "\n"), true
	}
	end := strings.Index(rest, "\n"+fence)
	if end == -1 {
		return "", content, false
	}
	front = rest[:end+1]
	body = rest[end+1+len(fence):]
	// drop the rest of the closing fence line
	if nl := strings.IndexByte(body, '\n'); nl != -1 && strings.TrimSpace(body[:nl]) == "" {
		body = body[nl+1:]
	} else if strings.TrimSpace(body) == "" {
		body = ""
	}
	return front, body, true
}

// FrontmatterTags returns the tags listed in a document's frontmatter.
// Both list and single-string forms are accepted.
func FrontmatterTags(content string) []string {
	front, _, ok := SplitFrontmatter(content)
	if !ok {
		return nil
	}
	var fm struct {
		Tags any `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte(front), &fm); err != nil {
		return nil
	}
	switch v := fm.Tags.(type) {
	case string:
		return strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// MergeFrontmatter applies upd to content and returns the new document.
// Existing keys keep their order; new keys are appended sorted.
func MergeFrontmatter(content string, upd model.FrontmatterUpdate) (string, error) {
	front, body, ok := SplitFrontmatter(content)
	if !ok {
		body = content
	}

	var doc yaml.Node
	if strings.TrimSpace(front) != "" {
		if err := yaml.Unmarshal([]byte(front), &doc); err != nil {
			return "", fmt.Errorf("parse frontmatter: %w", err)
		}
	}
	var mapping *yaml.Node
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		mapping = doc.Content[0]
	} else if strings.TrimSpace(front) != "" {
		return "", fmt.Errorf("parse frontmatter: not a mapping")
	} else {
		mapping = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}

	if len(upd.Tags) > 0 {
		existing := lookup(mapping, "tags")
		merged := mergeTags(existing, upd.Tags)
		setKey(mapping, "tags", stringSeq(merged))
	}

	keys := make([]string, 0, len(upd.Fields))
	for k := range upd.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := upd.Fields[k]
		if v == nil || k == "tags" {
			continue
		}
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return "", fmt.Errorf("encode %s: %w", k, err)
		}
		setKey(mapping, k, &node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var out strings.Builder
	out.WriteString(fence + "\n")
	out.WriteString(buf.String())
	out.WriteString(fence + "\n")
	out.WriteString(body)
	return out.String(), nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// mergeTags keeps existing tags in order and appends new ones not
// already present.
func mergeTags(existing *yaml.Node, add []string) []string {
	var merged []string
	if existing != nil {
		switch existing.Kind {
		case yaml.SequenceNode:
			for _, n := range existing.Content {
				if n.Kind == yaml.ScalarNode && n.Value != "" {
					merged = append(merged, n.Value)
				}
			}
		case yaml.ScalarNode:
			if existing.Value != "" && existing.Tag != "!!null" {
				merged = append(merged, existing.Value)
			}
		}
	}

	seen := make(map[string]bool, len(merged))
	for _, t := range merged {
		seen[t] = true
	}
	for _, t := range add {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	return merged
}

func stringSeq(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
	}
	return seq
}
