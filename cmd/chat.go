package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/mindit-cli/internal/adapters/tui"
	"github.com/xvierd/mindit-cli/internal/chatmode"
	"github.com/xvierd/mindit-cli/internal/domain"
)

var chatModeFlag string

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Ask Mind It Bot a question",
	Long: `Send one message to the Mind It Bot assistant and print the reply.
The conversation is shared with the full-screen app.

Without a message you are prompted for one, and for the mode when --mode
is not given.`,
	RunE: runChat,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		msgs := app.chat.Messages()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(msgs)
		}
		for _, m := range msgs {
			printMessage(out, m)
		}
		return nil
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.chat.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear chat history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared.")
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatModeFlag, "mode", "m", "", "Chat mode: standard, fast or thinking (default from config)")
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	mode := app.chat.DefaultMode()
	if chatModeFlag != "" {
		m, err := domain.ValidateChatMode(chatModeFlag)
		if err != nil {
			return err
		}
		mode = m
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		if chatModeFlag == "" {
			picked, ok := pickChatMode(mode)
			if !ok {
				return nil
			}
			mode = picked
		}
		prompt := tui.RunTextPrompt(app.config.Theme.IconChat+" Message:", "How are you feeling?", &app.config.Theme)
		if prompt.Aborted || prompt.Value == "" {
			return nil
		}
		text = prompt.Value
	}

	reply, err := app.chat.Send(cmd.Context(), text, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{
			"mode":  string(mode),
			"reply": reply.Text,
		})
	}
	fmt.Fprintln(out, renderReply(reply.Text))
	return nil
}

// pickChatMode asks for a mode, starting on current.
func pickChatMode(current domain.ChatMode) (domain.ChatMode, bool) {
	items := make([]tui.PickerItem, 0, len(domain.ValidChatModes))
	initial := 0
	for i, m := range domain.ValidChatModes {
		mode := chatmode.ForMode(m, app.config)
		items = append(items, tui.PickerItem{Label: mode.Label(), Desc: mode.Model()})
		if m == current {
			initial = i
		}
	}
	result := tui.RunPicker("Chat mode:", items, initial, "", &app.config.Theme)
	if result.Aborted {
		return "", false
	}
	return domain.ValidChatModes[result.Index], true
}

// renderReply renders Markdown for a terminal and leaves text untouched
// when stdout is piped.
func renderReply(text string) string {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return text
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(min(width, 100)-2),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func printMessage(w io.Writer, m domain.ChatMessage) {
	who := "Mind It Bot"
	if m.Role == domain.RoleUser {
		who = "You"
	}
	fmt.Fprintf(w, "%s: %s\n", who, m.Text)
}
