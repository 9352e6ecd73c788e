package ai

import (
	"fmt"
	"strings"
)

// Language selects the language of the model's reasons.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// SystemPrompt returns the instructions sent with every analysis.
func SystemPrompt(lang Language) string {
	langInstruction := "4. **Language**: write every reason in English."
	if lang == Chinese {
		langInstruction = "4. **Language**: write every reason in Simplified Chinese (分析和原因说明使用中文)."
	}

	return `# PARA organization and tag assistant

## Task

Using the vault information provided by the user (existing tags and folder
tree) and the content of one document, return a classification proposal as JSON.

## Method

1. **Read the document** and identify its core topic.
2. **Match a folder**:
    - Prefer an existing folder from the folder tree.
    - Propose a new path only when nothing existing fits (a new project or area).
    - Mark whether each proposed folder already exists.
3. **Match tags**:
    - Prefer tags from the existing tag list.
    - Create new tags only when needed, in kebab-case.
    - List every newly created tag separately.

## Rules

1. **JSON only**: output valid JSON and nothing else. Do not wrap it in a Markdown code block.
2. **Counts**: exactly 3 folder suggestions ranked best first, and 2-5 tags.
3. **Naming**: new folder names are short noun or verb-object phrases.
` + langInstruction + `

## Output structure

{
  "folderSuggestions": [
    { "folder": "full path, e.g. Projects/MyProject", "isNew": false, "reason": "short reason" }
  ],
  "tags": ["#tag1", "#tag2"],
  "newTags": ["#tag2"],
  "area": "optional area or project the note belongs to",
  "reason": "one-sentence summary of the classification"
}
`
}

// BuildUserPrompt describes the vault and the document to analyze.
func BuildUserPrompt(content string, allTags []string, folderTree string) string {
	tags := "(no tags yet)"
	if len(allTags) > 0 {
		tags = strings.Join(allTags, ", ")
	}
	tree := folderTree
	if strings.TrimSpace(tree) == "" {
		tree = "(no folders yet)\n"
	}

	return fmt.Sprintf(`## Vault

**Existing tags**:
%s

**Folder tree**:
%s
## Document

`+"```markdown\n%s\n```"+`

Return the PARA classification as JSON.`, tags, tree, content)
}
