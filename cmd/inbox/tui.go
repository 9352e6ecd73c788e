package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/inbox/internal/demo"
	"github.com/nikbrunner/inbox/internal/inbox"
	"github.com/nikbrunner/inbox/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the review table",
	Long: `Open the interactive review table for the vault inbox.

Controls:
  j/k      - Move between notes
  s / S    - Scan note / scan all
  h/l      - Previous / next folder candidate
  m        - Pick a folder by hand
  t        - Edit tags
  a/Enter  - Accept and move
  x        - Ignore suggestion
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// demoDelay makes the mock analyzer feel like a network call.
const demoDelay = 600 * time.Millisecond

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the review table on an in-memory demo vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, closeLog, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closeLog()

		v := demo.NewVault()
		table := inbox.NewTable(inbox.TableParams{
			Provider:  v,
			Analyzer:  &demo.Analyzer{Delay: demoDelay},
			InboxPath: demo.InboxPath,
			Logger:    log,
		})
		if err := table.Refresh(); err != nil {
			return err
		}
		defer table.Close()
		if err := runProgram(cmd.Context(), table, log); err != nil {
			return err
		}
		printDemoSummary(cmd, v)
		return nil
	},
}

// printDemoSummary lists what the demo session would have changed in a
// real vault.
func printDemoSummary(cmd *cobra.Command, v *demo.Vault) {
	moves := v.Moves()
	if len(moves) == 0 {
		cmd.Println("No notes moved")
	}
	for _, m := range moves {
		tags := ""
		if upd, ok := v.Frontmatter(m.From); ok {
			tags = strings.Join(upd.Tags, " ")
		}
		cmd.Printf("%s -> %s  %s\n", m.From, m.To, tags)
	}
	if opened := v.Opened(); len(opened) > 0 {
		cmd.Printf("Opened %d notes\n", len(opened))
	}
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(demoCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	log, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	e, err := openEnv(cmd.Context(), log)
	if err != nil {
		return err
	}
	defer e.Close()
	return runProgram(cmd.Context(), e.table, log)
}

func runProgram(ctx context.Context, table *inbox.Table, log *slog.Logger) error {
	if err := table.Watch(); err != nil {
		log.Warn("inbox watcher unavailable", "err", err)
	}

	app := tui.NewApp(tui.AppParams{Table: table, Context: ctx, Logger: log})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
