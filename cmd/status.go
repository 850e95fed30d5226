package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"pdfchat/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

const statusTimeout = 15 * time.Second

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend health and library stats",
	Long: `Check that the backend is reachable and display the indexed PDF
library: document count, pages, chunks, and the per-document listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := internal.NewClient(cfg.ServerURL)

		ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
		defer cancel()

		fmt.Println(sectionStyle.Render("🏥 Backend Health"))
		health, err := client.Health(ctx)
		if err != nil {
			fmt.Printf("%s backend unreachable at %s: %v\n", errorStyle.Render("✗"), cfg.ServerURL, err)
			return err
		}
		fmt.Printf("%s status: %s (database: %s)\n", successStyle.Render("✓"), health.Status, health.Database)
		fmt.Println()

		initData, err := client.Init(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch library stats: %w", err)
		}
		displayCorpus(initData)
		return nil
	},
}

func displayCorpus(initData *internal.InitResponse) {
	fmt.Println(sectionStyle.Render("📚 PDF Library"))
	fmt.Printf("%s %d document(s), %d page(s), %d chunk(s)\n",
		infoStyle.Render("•"),
		initData.Stats.PDFCount, initData.Stats.TotalPages, initData.Stats.TotalChunks)

	if len(initData.PDFList) == 0 {
		fmt.Println(infoStyle.Render("  (no documents indexed yet)"))
		return
	}
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Filename")+"\t"+titleStyle.Render("Pages")+"\t"+titleStyle.Render("Chunks")+"\t"+titleStyle.Render("Added")+"\t")
	for _, pdf := range initData.PDFList {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			pdf.Filename,
			countStyle.Render(strconv.Itoa(pdf.PageCount)),
			countStyle.Render(strconv.Itoa(pdf.TotalChunks)),
			dateStyle.Render(pdf.AddedDate))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
