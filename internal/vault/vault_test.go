package vault_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/inbox/internal/model"
	"github.com/nikbrunner/inbox/internal/vault"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/golden"
)

// writeFile creates a vault-relative file with content.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// testVault builds a small PARA vault.
func testVault(t *testing.T) *vault.Vault {
	t.Helper()
	root := t.TempDir()

	for _, dir := range []string{
		"1. Projects/Project-Alpha",
		"1. Projects/Project-Beta",
		"2. Areas/Health",
		"2. Areas/Work",
		"3. Resources",
		"4. Archive/2025",
		".obsidian/plugins",
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}

	writeFile(t, root, "Inbox/Note1.md", "Meeting notes about project Alpha #meeting\n")
	writeFile(t, root, "Inbox/Idea.md", "---\ntags: [personal, \"#todo\"]\n---\nBuy milk and eggs\n")
	writeFile(t, root, "Inbox/clip.html", "<html><head><title>Clipped</title></head><body><p>Saved page</p></body></html>")
	writeFile(t, root, "Inbox/image.png", "not a note")
	writeFile(t, root, "Inbox/.hidden.md", "hidden")
	writeFile(t, root, "2. Areas/Work/standup.md", "# Standup\n\nDaily #work notes\n```\n#not-a-tag\n```\n")
	writeFile(t, root, ".obsidian/workspace.md", "#ignored")

	v, err := vault.New(root)
	assert.NilError(t, err)
	return v
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := vault.New(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "open vault")
}

func TestVault_LoadInboxFiles(t *testing.T) {
	v := testVault(t)

	files, err := v.LoadInboxFiles("Inbox")
	assert.NilError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.DeepEqual(t, paths, []string{"Inbox/Idea.md", "Inbox/Note1.md", "Inbox/clip.html"})

	assert.Equal(t, files[1].Name, "Note1.md")
	assert.Equal(t, files[1].Content, "Meeting notes about project Alpha #meeting\n")
	assert.Equal(t, files[2].Content, "# Clipped\n\nSaved page\n")
}

func TestVault_LoadInboxFiles_MissingInbox(t *testing.T) {
	v := testVault(t)

	files, err := v.LoadInboxFiles("Nope")
	assert.NilError(t, err)
	assert.Equal(t, len(files), 0)
}

func TestVault_MoveFile(t *testing.T) {
	v := testVault(t)

	err := v.MoveFile("Inbox/Note1.md", "1. Projects/Project-Gamma/Note1.md")
	assert.NilError(t, err)

	_, err = os.Stat(v.Abs("Inbox/Note1.md"))
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
	data, err := os.ReadFile(v.Abs("1. Projects/Project-Gamma/Note1.md"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "project Alpha"))
}

func TestVault_MoveFile_Duplicate(t *testing.T) {
	v := testVault(t)
	writeFile(t, v.Root(), "4. Archive/2025/Note1.md", "older copy")

	err := v.MoveFile("Inbox/Note1.md", "4. Archive/2025/Note1.md")

	var dup *model.DuplicateTargetError
	assert.Assert(t, errors.As(err, &dup))
	assert.Equal(t, dup.Path, "4. Archive/2025/Note1.md")
	assert.Assert(t, errors.Is(err, model.ErrDuplicateTarget))

	// neither file changed
	_, err = os.Stat(v.Abs("Inbox/Note1.md"))
	assert.NilError(t, err)
	data, _ := os.ReadFile(v.Abs("4. Archive/2025/Note1.md"))
	assert.Equal(t, string(data), "older copy")
}

func TestVault_MoveFile_MissingSource(t *testing.T) {
	v := testVault(t)

	err := v.MoveFile("Inbox/Gone.md", "3. Resources/Gone.md")
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}

func TestVault_UpdateFrontmatter(t *testing.T) {
	v := testVault(t)

	err := v.UpdateFrontmatter("Inbox/Idea.md", model.FrontmatterUpdate{
		Tags:   []string{"#todo", "#shopping"},
		Fields: map[string]any{"reason": "Groceries"},
	})
	assert.NilError(t, err)

	data, err := os.ReadFile(v.Abs("Inbox/Idea.md"))
	assert.NilError(t, err)
	content := string(data)

	assert.DeepEqual(t, vault.FrontmatterTags(content), []string{"personal", "#todo", "#shopping"})
	assert.Assert(t, strings.Contains(content, "reason: Groceries"))
	assert.Assert(t, strings.HasSuffix(content, "---\nBuy milk and eggs\n"))
}

func TestVault_UpdateFrontmatter_SkipsHTML(t *testing.T) {
	v := testVault(t)
	before, _ := os.ReadFile(v.Abs("Inbox/clip.html"))

	err := v.UpdateFrontmatter("Inbox/clip.html", model.FrontmatterUpdate{Tags: []string{"#web"}})
	assert.NilError(t, err)

	after, _ := os.ReadFile(v.Abs("Inbox/clip.html"))
	assert.Equal(t, string(after), string(before))
}

func TestVault_AllTags(t *testing.T) {
	v := testVault(t)

	tags, err := v.AllTags()
	assert.NilError(t, err)
	assert.DeepEqual(t, tags, []string{"#meeting", "#personal", "#todo", "#work"})
}

func TestVault_AllFolders(t *testing.T) {
	v := testVault(t)

	folders, err := v.AllFolders()
	assert.NilError(t, err)
	assert.DeepEqual(t, folders, []string{
		"1. Projects",
		"1. Projects/Project-Alpha",
		"1. Projects/Project-Beta",
		"2. Areas",
		"2. Areas/Health",
		"2. Areas/Work",
		"3. Resources",
		"4. Archive",
		"4. Archive/2025",
		"Inbox",
	})
}

func TestVault_FolderTree(t *testing.T) {
	v := testVault(t)

	tree, err := v.FolderTree()
	assert.NilError(t, err)
	golden.Assert(t, tree, "folder_tree.golden")
}

func TestVault_AbsStaysInsideRoot(t *testing.T) {
	v := testVault(t)

	assert.Equal(t, v.Abs("../../etc/passwd"), filepath.Join(v.Root(), "etc", "passwd"))
}

func TestVault_OnInboxChange(t *testing.T) {
	v := testVault(t)

	fired := make(chan struct{}, 4)
	stop, err := v.OnInboxChange("Inbox", func() { fired <- struct{}{} })
	assert.NilError(t, err)
	defer stop()

	writeFile(t, v.Root(), "Inbox/New.md", "fresh")

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change callback")
	}

	stop()
	stop()
}

func TestVault_OnInboxChange_IgnoresOtherFolders(t *testing.T) {
	v := testVault(t)

	fired := make(chan struct{}, 4)
	stop, err := v.OnInboxChange("Inbox", func() { fired <- struct{}{} })
	assert.NilError(t, err)
	defer stop()

	writeFile(t, v.Root(), "3. Resources/Other.md", "elsewhere")

	select {
	case <-fired:
		t.Fatal("unexpected callback for change outside the inbox")
	case <-time.After(3 * vault.DebounceDelay):
	}
}
