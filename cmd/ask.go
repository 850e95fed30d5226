package cmd

import (
	"strings"

	"pdfchat/internal"
	"github.com/spf13/cobra"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question in the active session",
	Long: `Ask one question and print the answer without entering the
interactive loop. The exchange is appended to the active session's
history like any other message.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return &internal.ValidationError{Field: "question", Reason: "question is empty"}
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeStore, err := openManager(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		client := internal.NewClient(cfg.ServerURL)
		resolver := internal.NewImageResolver(client)

		sendMessage(cmd.Context(), client, resolver, mgr, question)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
