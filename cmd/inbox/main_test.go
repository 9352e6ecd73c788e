package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/inbox/internal/demo"
	"github.com/nikbrunner/inbox/internal/model"
)

// execute runs the root command with args against a scratch home
// directory and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("INBOX_VAULT", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		vaultFlag = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func newTestVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for p, content := range map[string]string{
		"Inbox/Alpha.md":            "Meeting notes about project Alpha",
		"Inbox/Milk.md":             "Buy milk",
		"1. Projects/Alpha/Plan.md": "# Plan",
	} {
		full := filepath.Join(root, filepath.FromSlash(p))
		assert.NilError(t, os.MkdirAll(filepath.Dir(full), 0755))
		assert.NilError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "1.2.3"
	defer func() { version = original }()

	out, err := execute(t, "version")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "inbox version 1.2.3"))
}

func TestListCmd(t *testing.T) {
	root := newTestVault(t)

	out, err := execute(t, "--vault", root, "list")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Inbox/Alpha.md"))
	assert.Check(t, is.Contains(out, "Inbox/Milk.md"))
	assert.Check(t, is.Contains(out, "2 notes, 2 not scanned"))
}

func TestTreeCmd(t *testing.T) {
	root := newTestVault(t)

	out, err := execute(t, "--vault", root, "tree")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "- 1. Projects/\n"))
	assert.Check(t, is.Contains(out, "- Inbox/\n"))
}

func TestScanCmd_NoAnalyzer(t *testing.T) {
	root := newTestVault(t)

	_, err := execute(t, "--vault", root, "scan")
	assert.ErrorContains(t, err, "no analyzer configured")
}

func TestExportCmd(t *testing.T) {
	root := newTestVault(t)
	out := filepath.Join(t.TempDir(), "report.html")

	stdout, err := execute(t, "--vault", root, "export", out)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(stdout, "Exported 2 notes"))

	data, err := os.ReadFile(out)
	assert.NilError(t, err)
	assert.Check(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Check(t, is.Contains(string(data), "Inbox/Alpha.md"))
}

func TestOpenEnv_NoVault(t *testing.T) {
	_, err := execute(t, "list")
	assert.ErrorContains(t, err, "no vault configured")
}

func TestOrNone(t *testing.T) {
	assert.Equal(t, orNone(""), "(no folder)")
	assert.Equal(t, orNone("2. Areas"), "2. Areas")
}

func TestPrintDemoSummary(t *testing.T) {
	v := demo.NewVault()
	assert.NilError(t, v.UpdateFrontmatter("Inbox/Idea.md", model.FrontmatterUpdate{Tags: []string{"#personal"}}))
	assert.NilError(t, v.MoveFile("Inbox/Idea.md", "2. Areas/Personal/Idea.md"))
	assert.NilError(t, v.OpenFile("Inbox/Note1.md"))

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	printDemoSummary(cmd, v)

	assert.Check(t, is.Contains(buf.String(), "Inbox/Idea.md -> 2. Areas/Personal/Idea.md  #personal"))
	assert.Check(t, is.Contains(buf.String(), "Opened 1 notes"))
}

func TestPrintDemoSummary_NoMoves(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	printDemoSummary(cmd, demo.NewVault())

	assert.Equal(t, buf.String(), "No notes moved\n")
}
