package cmd

import (
	"fmt"

	"pdfchat/internal"
	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new conversation",
	Long: `Clear the backend's conversation state for the active session
and start a fresh local one. The old conversation stays in local storage
and remains reachable via 'pdfchat sessions'.`,
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

		client := internal.NewClient(cfg.ServerURL)
		if err := resetConversation(cmd.Context(), client, mgr); err != nil {
			return err
		}

		session, err := mgr.ActiveSession()
		if err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Started new session %s", session))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
