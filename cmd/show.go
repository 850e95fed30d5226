package cmd

import (
	"fmt"
	"os"
	"strings"

	"pdfchat/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	showLimit int
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a stored conversation",
	Long: `Display the transcript of a stored conversation. Without an
argument the active session is shown.`,
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

		displayRecordHeader(rec)

		messages := rec.Messages
		total := len(messages)
		if showLimit > 0 && showLimit < total {
			messages = messages[:showLimit]
		}

		internal.RenderTranscript(os.Stdout, messages, nil)

		if showLimit > 0 && showLimit < total {
			remaining := total - showLimit
			fmt.Println()
			fmt.Println(lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", remaining)))
		}

		return nil
	},
}

func displayRecordHeader(rec *internal.HistoryRecord) {
	header := sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", rec.Title()))
	fmt.Println(header)

	var metaParts []string
	metaParts = append(metaParts, fmt.Sprintf("Session: %s", rec.SessionID))
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(rec.Messages)))
	if rec.LastUpdated != "" {
		metaParts = append(metaParts, fmt.Sprintf("Updated: %s", rec.LastUpdated))
	}

	fmt.Println(sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Limit number of messages to show")
}
