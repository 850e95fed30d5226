package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"pdfchat/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const queryTimeout = 2 * time.Minute

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation in the active session.

The stored transcript is replayed first. Each question and answer is
persisted locally as it happens, so a later 'pdfchat chat' resumes where
you left off. Use /reset inside the loop to start over and /quit to exit.`,
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
		resolver := internal.NewImageResolver(client)

		session, err := mgr.ActiveSession()
		if err != nil {
			return err
		}

		if messages := mgr.Messages(); len(messages) > 0 {
			internal.RenderTranscript(os.Stdout, messages, nil)
		} else {
			fmt.Println(welcomeStyle.Render("💬 Ask anything about your uploaded PDFs"))
		}
		fmt.Println(hintStyle.Render(fmt.Sprintf("session %s — /reset starts over, /quit exits", session)))
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for {
			fmt.Print(promptStyle.Render("you> "))
			if !scanner.Scan() {
				break
			}

			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/reset":
				if err := resetConversation(cmd.Context(), client, mgr); err != nil {
					internal.PrintError(fmt.Sprintf("Reset failed: %v", err))
					continue
				}
				internal.PrintSuccess("Started a new conversation")
				continue
			}

			sendMessage(cmd.Context(), client, resolver, mgr, line)
		}
		return scanner.Err()
	},
}

// sendMessage appends the user's message, queries the backend, and renders
// the exchange. The loop is sequential, so a second send cannot start
// while a request is in flight.
func sendMessage(ctx context.Context, client *internal.Client, resolver *internal.ImageResolver, mgr *internal.Manager, question string) {
	mgr.Append(internal.Message{Text: question, IsUser: true})

	session, err := mgr.ActiveSession()
	if err != nil {
		internal.PrintError(fmt.Sprintf("Failed to resolve session: %v", err))
		return
	}

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var resp *internal.QueryResponse
	err = internal.ShowSpinner(queryCtx, "Thinking...", func() error {
		var queryErr error
		resp, queryErr = client.Query(queryCtx, question, session)
		return queryErr
	})
	if err != nil {
		internal.PrintError(fmt.Sprintf("Query failed: %v", err))
		fallback := internal.Message{Text: "Sorry, something went wrong answering that. Please try again."}
		mgr.Append(fallback)
		internal.RenderMessage(os.Stdout, fallback)
		return
	}

	answer := internal.Message{Text: resp.Answer, Sources: resp.Sources}
	mgr.Append(answer)
	internal.RenderMessage(os.Stdout, answer)

	index := len(mgr.Messages()) - 1
	if refs := internal.ExtractImageRefs(resp.Answer, index); len(refs) > 0 {
		images := resolver.Resolve(queryCtx, refs, len(mgr.Messages()))
		if resolved := images[index]; len(resolved) > 0 {
			internal.RenderImages(os.Stdout, resolved)
		}
	}

	if resp.NoData {
		internal.PrintWarning("No PDFs indexed yet — add one with `pdfchat upload`")
	}
}

// resetConversation clears the backend's session state and starts a fresh
// local session. A failed backend reset is logged but does not keep the
// old session around.
func resetConversation(ctx context.Context, client *internal.Client, mgr *internal.Manager) error {
	session, err := mgr.ActiveSession()
	if err != nil {
		return err
	}

	resetCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.Reset(resetCtx, session); err != nil {
		internal.LogWarn("Backend reset failed: %v", err)
	}

	return mgr.StartNew()
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
