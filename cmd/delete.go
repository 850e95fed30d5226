package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"pdfchat/internal"
	"github.com/spf13/cobra"
)

var (
	deleteYes bool
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored conversation",
	Long: `Remove a conversation from local storage after confirmation.
Deleting the active session starts a brand-new empty one.`,
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

		if !deleteYes {
			fmt.Printf("Delete conversation %s? [y/N] ", sessionID)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if answer != "y" && answer != "yes" {
				internal.PrintInfo("Aborted")
				return nil
			}
		}

		active, err := mgr.ActiveSession()
		if err != nil {
			return err
		}
		wasActive := sessionID == active

		if err := mgr.Delete(sessionID); err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Deleted %s", sessionID))
		if wasActive {
			newActive, err := mgr.ActiveSession()
			if err == nil {
				internal.PrintInfo(fmt.Sprintf("Started new session %s", newActive))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
