package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pdfchat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	serverURL   string
	storagePath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdfchat",
	Short: "Chat with your PDF library from the terminal",
	Long: `A terminal client for a PDF-grounded question answering service.

Questions are answered by a backend that retrieves from your uploaded
PDFs; conversations are stored locally, one record per session.

Features:
  • Interactive chat with per-session history
  • List, switch, delete and export stored conversations
  • Upload PDFs with validation and progress
  • Inline page-image references resolved from answers

Quick Start:
  pdfchat chat                   # Start an interactive conversation
  pdfchat ask "..."              # One-shot question in the active session
  pdfchat sessions               # List stored conversations
  pdfchat upload notes.pdf       # Add a PDF to the library`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom location for the local chat database")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves the config file plus flag overrides.
func loadConfig() (internal.Config, error) {
	path, err := internal.DefaultConfigPath()
	if err != nil {
		return internal.DefaultConfig(), fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if storagePath != "" {
		cfg.StoragePath = storagePath
	}
	if cfg.StoragePath == "" {
		defaultPath, err := internal.DefaultStoragePath()
		if err != nil {
			return cfg, fmt.Errorf("failed to resolve storage path: %w", err)
		}
		cfg.StoragePath = defaultPath
	}

	return cfg, nil
}

// openManager opens the local store and restores the active session. The
// returned func closes the store.
func openManager(cfg internal.Config) (*internal.Manager, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	store, err := internal.OpenStore(cfg.StoragePath, cfg.QuotaBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open chat storage: %w", err)
	}

	mgr, err := internal.NewManager(store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return mgr, func() { _ = store.Close() }, nil
}
