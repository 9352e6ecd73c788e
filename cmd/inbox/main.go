package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/inbox/internal/ai"
	"github.com/nikbrunner/inbox/internal/inbox"
	"github.com/nikbrunner/inbox/internal/storage"
	"github.com/nikbrunner/inbox/internal/vault"
)

var version = "dev"

var (
	debugFlag  bool
	configFlag string
	vaultFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Sort inbox notes into a PARA vault with AI suggestions",
	Long: `inbox scans the inbox folder of a notes vault, asks a language model
where each note belongs, and lets you review, edit and accept the
suggestions before the files are moved.

Running inbox without a subcommand opens the review table.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/inbox/config.json)")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "vault directory (overrides config and INBOX_VAULT)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger. When toFile is set the log goes to
// the TUI log file, since the terminal belongs to the UI.
func newLogger(toFile bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debugFlag {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if toFile {
		logPath, err := storage.DefaultLogPath()
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log, closer, nil
}

func loadConfig() (*storage.Config, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = storage.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if vaultFlag != "" {
		cfg.VaultPath = vaultFlag
	}
	return cfg, nil
}

// env is everything a command needs to work on a real vault.
type env struct {
	cfg   *storage.Config
	vault *vault.Vault
	cache storage.SuggestionStore
	table *inbox.Table
	log   *slog.Logger
}

func (e *env) Close() {
	e.table.Close()
	if err := e.cache.Close(); err != nil {
		e.log.Warn("close cache", "err", err)
	}
}

// openEnv loads the config, opens the vault and cache, and builds the
// review table. Without an API key the table runs without an analyzer.
func openEnv(ctx context.Context, log *slog.Logger) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.VaultPath == "" {
		return nil, fmt.Errorf("no vault configured: set vaultPath, INBOX_VAULT or --vault")
	}

	v, err := vault.New(cfg.VaultPath)
	if err != nil {
		return nil, err
	}

	cache, err := storage.OpenCache()
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	var analyzer inbox.Analyzer
	a, err := ai.NewAnalyzer(ctx, ai.AnalyzerParams{
		Provider: ai.Provider(cfg.Provider),
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.ModelName,
		Language: ai.Language(cfg.Language),
	})
	if err != nil {
		log.Warn("scanning disabled", "provider", cfg.Provider, "err", err)
	} else {
		analyzer = a
	}

	table := inbox.NewTable(inbox.TableParams{
		Provider:  v,
		Analyzer:  analyzer,
		Cache:     cache,
		VaultKey:  v.Root(),
		InboxPath: cfg.InboxPath,
		BatchSize: cfg.BatchSize,
		Logger:    log,
	})
	if err := table.Refresh(); err != nil {
		_ = cache.Close()
		return nil, fmt.Errorf("load inbox: %w", err)
	}

	return &env{cfg: cfg, vault: v, cache: cache, table: table, log: log}, nil
}
