package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/inbox/internal/exporter"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan every inbox note that has no suggestion yet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, closeLog, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closeLog()

		e, err := openEnv(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.table.ScanAll(cmd.Context(), func(completed, total int) {
			cmd.PrintErrf("\rscanned %d/%d", completed, total)
		})
		if n > 0 {
			cmd.PrintErrln()
		}
		if err != nil {
			return err
		}

		for _, row := range e.table.Rows() {
			if row.Suggestion == nil {
				continue
			}
			cmd.Printf("%s -> %s  %s\n", row.File.Path, orNone(row.Target), strings.Join(row.Row.Tags, " "))
		}
		cmd.Printf("Scanned %d notes\n", n)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inbox notes and their suggestion status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, closeLog, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closeLog()

		e, err := openEnv(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer e.Close()

		rows := e.table.Rows()
		if len(rows) == 0 {
			cmd.Println("Inbox is empty")
			return nil
		}
		for _, row := range rows {
			status := "not scanned"
			if row.Suggestion != nil {
				status = "-> " + orNone(row.Target)
			}
			cmd.Printf("%-40s %s\n", row.File.Path, status)
		}
		cmd.Printf("%d notes, %d not scanned\n", len(rows), e.table.PendingCount())
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the vault folder tree sent to the analyzer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, closeLog, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closeLog()

		e, err := openEnv(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer e.Close()

		tree, err := e.vault.FolderTree()
		if err != nil {
			return err
		}
		cmd.Print(tree)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write an HTML report of the inbox and its suggestions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := ""
		if len(args) == 1 {
			outputPath = args[0]
		}
		if outputPath == "" {
			var err error
			outputPath, err = exporter.DefaultExportPath()
			if err != nil {
				return fmt.Errorf("default export path: %w", err)
			}
		}

		log, closeLog, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closeLog()

		e, err := openEnv(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer e.Close()

		rows := e.table.Rows()
		report := exporter.Report{
			Vault:       e.vault.Root(),
			GeneratedAt: time.Now(),
			Entries:     make([]exporter.Entry, 0, len(rows)),
		}
		for _, row := range rows {
			report.Entries = append(report.Entries, exporter.Entry{
				Path:       row.File.Path,
				Suggestion: row.Suggestion,
				Target:     row.Target,
				Tags:       row.Row.Tags,
				Manual:     row.Row.HasManualFolder(),
			})
		}

		if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(report)), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		cmd.Printf("Exported %d notes to %s\n", len(report.Entries), outputPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("inbox version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func orNone(s string) string {
	if s == "" {
		return "(no folder)"
	}
	return s
}
