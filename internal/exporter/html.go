package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/inbox/internal/model"
)

// Entry is one inbox note in a review report.
type Entry struct {
	Path       string
	Suggestion *model.OrganizationSuggestion // nil when not scanned yet
	Target     string                        // effective destination, "" if none
	Tags       []string
	Manual     bool // Target came from a hand-picked folder
}

// Report is the content of an exported review.
type Report struct {
	Vault       string
	GeneratedAt time.Time
	Entries     []Entry
}

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/inbox-review-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("inbox-review-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the report as a standalone HTML page.
func ExportHTML(r Report) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>Inbox review</title>\n")
	b.WriteString("<style>body{font-family:sans-serif}td,th{padding:4px 8px;text-align:left;vertical-align:top}.new{color:#2a7}.muted{color:#888}</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Inbox review</h1>\n<p class=\"muted\">%s &middot; %s &middot; %d notes</p>\n",
		html.EscapeString(r.Vault),
		r.GeneratedAt.Format("2006-01-02 15:04"),
		len(r.Entries),
	)

	b.WriteString("<table>\n")
	b.WriteString("    <tr><th>Note</th><th>Destination</th><th>Candidates</th><th>Tags</th><th>Reason</th></tr>\n")
	for _, e := range r.Entries {
		writeEntry(&b, e)
	}
	b.WriteString("</table>\n")

	// Footer
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func writeEntry(b *strings.Builder, e Entry) {
	prefix := "    "

	target := "<span class=\"muted\">not scanned</span>"
	switch {
	case e.Target != "" && e.Manual:
		target = html.EscapeString(e.Target) + " <span class=\"muted\">(manual)</span>"
	case e.Target != "":
		target = html.EscapeString(e.Target)
	case e.Suggestion != nil:
		target = "<span class=\"muted\">no folder</span>"
	}

	var candidates, reason string
	if e.Suggestion != nil {
		var items []string
		for i, c := range e.Suggestion.FolderSuggestions {
			item := html.EscapeString(c.Folder)
			if c.IsNew {
				item += " <span class=\"new\">(new)</span>"
			}
			if i == e.Suggestion.SelectedFolderIndex {
				item = "<b>" + item + "</b>"
			}
			items = append(items, item)
		}
		candidates = strings.Join(items, "<br>")
		reason = html.EscapeString(e.Suggestion.Reason)
	}

	var tags []string
	for _, t := range e.Tags {
		tag := html.EscapeString(t)
		if e.Suggestion != nil && e.Suggestion.IsNewTag(t) {
			tag = "<span class=\"new\">" + tag + "</span>"
		}
		tags = append(tags, tag)
	}

	fmt.Fprintf(b, "%s<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
		prefix,
		html.EscapeString(e.Path),
		target,
		candidates,
		strings.Join(tags, " "),
		reason,
	)
}
