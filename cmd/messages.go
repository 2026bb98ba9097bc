package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/grovetools/agentstatus/internal/display"
	"github.com/grovetools/agentstatus/internal/session"
	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"
)

var ulogMessages = grovelogging.NewUnifiedLogger("grove-agent-status.cmd.messages")

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List message records from every agent's active session logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			agent, _ := cmd.Flags().GetString("agent")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}

			messages := filterMessages(svc.Messages(cmd.Context()), agent, limit)

			if jsonOutput {
				data, err := json.MarshalIndent(messages, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal messages: %w", err)
				}
				ulogMessages.Info("Messages").
					Field("message_count", len(messages)).
					Field("agent_filter", agent).
					Pretty(string(data) + "\n").
					PrettyOnly().
					Emit()
				return nil
			}

			var buf bytes.Buffer
			if len(messages) == 0 {
				buf.WriteString("No messages found\n")
			} else {
				display.PrintMessagesTable(messages, &buf)
			}
			ulogMessages.Info("Messages").
				Field("message_count", len(messages)).
				Field("agent_filter", agent).
				Pretty(buf.String()).
				PrettyOnly().
				Emit()
			return nil
		},
	}

	addConfigFlags(cmd)
	cmd.Flags().String("agent", "", "Only show messages from this agent")
	cmd.Flags().Int("limit", 0, "Show at most this many of the most recent messages (0 for all)")

	return cmd
}

// filterMessages keeps messages from agent (all when empty) and then the
// last limit of them (all when zero).
func filterMessages(messages []session.AgentMessage, agent string, limit int) []session.AgentMessage {
	filtered := make([]session.AgentMessage, 0, len(messages))
	for _, m := range messages {
		if agent == "" || m.Agent == agent {
			filtered = append(filtered, m)
		}
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}
