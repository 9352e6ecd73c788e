// Package vault reads and reorganizes a Markdown vault on the local
// filesystem. Paths handed in and out are vault-relative and use forward
// slashes.
package vault

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/nikbrunner/inbox/internal/importer"
	"github.com/nikbrunner/inbox/internal/model"
)

// Vault is a directory of notes.
type Vault struct {
	root string
}

// New returns a Vault rooted at root.
func New(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", abs)
	}
	return &Vault{root: abs}, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Abs converts a vault-relative path to an absolute filesystem path.
func (v *Vault) Abs(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(path.Clean("/" + rel)))
}

func (v *Vault) rel(abs string) string {
	r, err := filepath.Rel(v.root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(r)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func isNote(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".html" || ext == ".htm"
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

// LoadInboxFiles returns every note under inboxPath, recursively, sorted
// by path. HTML pages are converted to Markdown-like text. A missing
// inbox yields no files.
func (v *Vault) LoadInboxFiles(inboxPath string) ([]model.File, error) {
	dir := v.Abs(inboxPath)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return []model.File{}, nil
	}

	files := []model.File{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isNote(d.Name()) {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		content := string(data)
		if !isMarkdown(d.Name()) {
			clip, err := importer.ExtractText(bytes.NewReader(data))
			if err != nil {
				slog.Debug("html extraction failed", "path", v.rel(p), "err", err)
			} else {
				content = clip.Markdown()
			}
		}

		files = append(files, model.File{
			Path:    v.rel(p),
			Name:    d.Name(),
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// MoveFile renames src to dst, creating missing parent folders. An
// existing dst fails with *model.DuplicateTargetError.
func (v *Vault) MoveFile(src, dst string) error {
	from, to := v.Abs(src), v.Abs(dst)

	if _, err := os.Stat(from); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	if _, err := os.Lstat(to); err == nil {
		return &model.DuplicateTargetError{Path: path.Clean(dst)}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("move %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	slog.Debug("moved file", "from", src, "to", dst)
	return nil
}

// UpdateFrontmatter merges upd into the frontmatter of a Markdown note.
// Other file types are left untouched.
func (v *Vault) UpdateFrontmatter(rel string, upd model.FrontmatterUpdate) error {
	if !isMarkdown(rel) {
		slog.Debug("skipping frontmatter for non-markdown file", "path", rel)
		return nil
	}

	p := v.Abs(rel)
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("update frontmatter: %w", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("update frontmatter: %w", err)
	}

	merged, err := MergeFrontmatter(string(data), upd)
	if err != nil {
		return fmt.Errorf("update frontmatter %s: %w", rel, err)
	}
	if err := os.WriteFile(p, []byte(merged), info.Mode().Perm()); err != nil {
		return fmt.Errorf("update frontmatter: %w", err)
	}
	return nil
}

// inlineTag matches "#tag" words outside headings.
var inlineTag = regexp.MustCompile(`(?:^|\s)(#[\p{L}\p{N}_/-]*[\p{L}_/-][\p{L}\p{N}_/-]*)`)

// AllTags returns every tag used in the vault's Markdown notes, from
// frontmatter and from inline "#tag" words, sorted and "#"-prefixed.
func (v *Vault) AllTags() ([]string, error) {
	set := make(map[string]bool)

	err := v.walkNotes(func(p string) error {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		content := string(data)

		for _, t := range FrontmatterTags(content) {
			if tag := normalizeTag(t); tag != "" {
				set[tag] = true
			}
		}

		_, body, ok := SplitFrontmatter(content)
		if !ok {
			body = content
		}
		for _, t := range inlineTags(body) {
			set[t] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect tags: %w", err)
	}

	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

func inlineTags(body string) []string {
	var out []string
	inCode := false
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		for _, m := range inlineTag.FindAllStringSubmatch(line, -1) {
			out = append(out, m[1])
		}
	}
	return out
}

func normalizeTag(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return ""
	}
	if !strings.HasPrefix(t, "#") {
		t = "#" + t
	}
	return t
}

func (v *Vault) walkNotes(fn func(p string) error) error {
	return filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != v.root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}
		return fn(p)
	})
}

// AllFolders returns every folder path in the vault, sorted. Hidden
// folders are skipped.
func (v *Vault) AllFolders() ([]string, error) {
	folders := []string{}
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == v.root {
			return nil
		}
		if isHidden(d.Name()) {
			return filepath.SkipDir
		}
		folders = append(folders, v.rel(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	sort.Strings(folders)
	return folders, nil
}

// FolderTree renders the folder hierarchy as an indented Markdown list,
// folders only, alphabetical within each level:
//
//	- Projects/
//	  - Alpha/
func (v *Vault) FolderTree() (string, error) {
	var b strings.Builder
	if err := v.writeTree(&b, v.root, 0); err != nil {
		return "", fmt.Errorf("folder tree: %w", err)
	}
	return b.String(), nil
}

func (v *Vault) writeTree(b *strings.Builder, dir string, depth int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !isHidden(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, c := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a == c {
			return names[i] < names[j]
		}
		return a < c
	})

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		fmt.Fprintf(b, "%s- %s/\n", indent, name)
		if err := v.writeTree(b, filepath.Join(dir, name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// OpenFile opens a note with the system's default application.
func (v *Vault) OpenFile(rel string) error {
	p := v.Abs(rel)
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", p)
	case "linux":
		cmd = exec.Command("xdg-open", p)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", p)
	}
	if cmd == nil {
		return fmt.Errorf("open %s: unsupported platform %s", rel, runtime.GOOS)
	}
	return cmd.Start()
}
