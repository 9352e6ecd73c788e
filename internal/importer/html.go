// Package importer turns saved web pages in the inbox into plain text the
// analyzer can read.
package importer

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Clipping is the readable content of an HTML page.
type Clipping struct {
	Title     string
	SourceURL string
	Text      string
}

// Markdown renders the clipping as a small Markdown document.
func (c Clipping) Markdown() string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString("# ")
		b.WriteString(c.Title)
		b.WriteString("\n\n")
	}
	if c.SourceURL != "" {
		b.WriteString("Source: ")
		b.WriteString(c.SourceURL)
		b.WriteString("\n\n")
	}
	b.WriteString(c.Text)
	return strings.TrimSpace(b.String()) + "\n"
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// skipped elements never contribute text
var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"template": true, "svg": true, "iframe": true,
}

var blocks = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"header": true, "footer": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "ul": true, "ol": true, "main": true,
}

// ExtractText parses an HTML page and returns its title, canonical URL
// and body text. Headings become "#" lines and list items "- " lines.
func ExtractText(r io.Reader) (Clipping, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Clipping{}, err
	}

	var clip Clipping
	var text strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			switch {
			case skipped[tag]:
				return
			case tag == "title":
				if clip.Title == "" {
					clip.Title = getTextContent(n)
				}
				return
			case tag == "link":
				if strings.EqualFold(getAttr(n, "rel"), "canonical") && clip.SourceURL == "" {
					clip.SourceURL = getAttr(n, "href")
				}
				return
			case tag == "meta":
				if getAttr(n, "property") == "og:url" && clip.SourceURL == "" {
					clip.SourceURL = getAttr(n, "content")
				}
				return
			case tag == "br":
				text.WriteString("\n")
				return
			case len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6':
				text.WriteString("\n\n")
				text.WriteString(strings.Repeat("#", int(tag[1]-'0')))
				text.WriteString(" ")
				text.WriteString(getTextContent(n))
				text.WriteString("\n\n")
				return
			case tag == "li":
				text.WriteString("\n- ")
				text.WriteString(getTextContent(n))
				return
			case blocks[tag]:
				text.WriteString("\n\n")
				defer text.WriteString("\n\n")
			}
		}

		if n.Type == html.TextNode {
			text.WriteString(collapseSpace(n.Data))
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	clip.Text = tidy(text.String())
	return clip, nil
}

func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	lead := ""
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' {
		lead = " "
	}
	trail := ""
	if last := s[len(s)-1]; last == ' ' || last == '\n' || last == '\t' {
		trail = " "
	}
	return lead + strings.Join(strings.Fields(s), " ") + trail
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	out := strings.Join(lines, "\n")
	out = blankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// getTextContent returns the whitespace-collapsed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[strings.ToLower(n.Data)] {
			return
		}
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
			text.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
