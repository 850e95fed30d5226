package cmd

import (
	"errors"
	"fmt"

	"pdfchat/internal"
	"github.com/spf13/cobra"
)

// useCmd represents the use command
var useCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Switch the active conversation",
	Long: `Make a stored conversation the active session. Subsequent chat
and ask commands continue that conversation. Switching to the session
that is already active does nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeStore, err := openManager(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := mgr.Switch(sessionID); err != nil {
			if errors.Is(err, internal.ErrSessionNotFound) {
				return fmt.Errorf("no stored conversation with id %s", sessionID)
			}
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Switched to %s (%d message(s))", sessionID, len(mgr.Messages())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
