package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pdfchat/internal"
	"github.com/spf13/cobra"
)

const uploadTimeout = 10 * time.Minute

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF for indexing",
	Long: `Upload a PDF document to the backend library. The file must
have a .pdf extension and be at most 50 MB; anything else is rejected
before a request is made. On success the refreshed corpus stats are
shown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		if err := internal.ValidateUpload(filepath.Base(path), info.Size()); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := internal.NewClient(cfg.ServerURL)

		ctx, cancel := context.WithTimeout(cmd.Context(), uploadTimeout)
		defer cancel()

		resp, err := client.UploadPDF(ctx, path, internal.RenderUploadBar)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Indexed %s: %d page(s), %d chunk(s)",
			resp.Stats.Filename, resp.Stats.PageCount, resp.Stats.TotalChunks))

		// Refresh corpus stats now that the new document is indexed.
		initData, err := client.Init(ctx)
		if err != nil {
			internal.LogWarn("Failed to refresh corpus stats: %v", err)
			return nil
		}
		displayCorpus(initData)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
