package cmd

import (
	"fmt"
	"os"

	"pdfchat/internal"
	"pdfchat/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export a conversation",
	Long: `Export a stored conversation in one of several formats (jsonl,
md, yaml, json). Without an argument the active session is exported.
Output goes to stdout unless --output is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeStore, err := openManager(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		sessionID := ""
		if len(args) == 1 {
			sessionID = args[0]
		} else {
			sessionID, err = mgr.ActiveSession()
			if err != nil {
				return err
			}
		}

		rec, err := mgr.Record(sessionID)
		if err != nil {
			return fmt.Errorf("failed to load conversation: %w", err)
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(rec, out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			internal.PrintSuccess(fmt.Sprintf("Exported %s to %s", sessionID, exportOutput))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}
