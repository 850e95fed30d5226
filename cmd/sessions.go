package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"pdfchat/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	activeMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"list"},
	Short:   "List stored conversations",
	Long: `List every locally stored conversation, most recently updated
first. Conversations without any messages are not shown. The active
session is marked with ●.`,
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

		active, err := mgr.ActiveSession()
		if err != nil {
			return err
		}

		summaries, err := mgr.ListHistories()
		if err != nil {
			return fmt.Errorf("failed to list chat histories: %w", err)
		}

		displaySummaries(summaries, active)
		return nil
	},
}

func displaySummaries(summaries []internal.HistorySummary, active string) {
	if len(summaries) == 0 {
		fmt.Println(headerStyle.Render("📋 No conversations yet"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 %d conversation(s)", len(summaries)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, " \t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	now := time.Now()
	for _, summary := range summaries {
		marker := " "
		if summary.SessionID == active {
			marker = activeMarkStyle.Render("●")
		}

		title := summary.Title
		titleCell := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(title)

		count := countStyle.Render(strconv.Itoa(summary.MessageCount))
		updated := dateStyle.Render(internal.FormatRelativeDate(summary.LastUpdated, now))
		id := idStyle.Render(summary.SessionID)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", marker, id, titleCell, count, updated)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: switch with `pdfchat use <id>`, view with `pdfchat show <id>`"))
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
