package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/grovetools/agentstatus/internal/display"
	"github.com/grovetools/agentstatus/internal/usage"
	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"
)

var ulogUsage = grovelogging.NewUnifiedLogger("grove-agent-status.cmd.usage")

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Summarize token usage and estimated cost per agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")

			svc, cfg, err := newService(cmd)
			if err != nil {
				return err
			}

			rows := usage.Summarize(svc.Messages(cmd.Context()), cfg.PricingTable())
			total := usage.Total(rows)

			if jsonOutput {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal usage: %w", err)
				}
				ulogUsage.Info("Usage report").
					Field("agent_count", len(rows)).
					Field("requests", total.Requests).
					Field("cost_usd", total.CostUSD).
					Pretty(string(data) + "\n").
					PrettyOnly().
					Emit()
				return nil
			}

			var buf bytes.Buffer
			if len(rows) == 0 {
				buf.WriteString("No assistant usage recorded\n")
			} else {
				display.PrintUsageTable(rows, &buf)
			}
			ulogUsage.Info("Usage report").
				Field("agent_count", len(rows)).
				Field("requests", total.Requests).
				Field("cost_usd", total.CostUSD).
				Pretty(buf.String()).
				PrettyOnly().
				Emit()
			return nil
		},
	}

	addConfigFlags(cmd)

	return cmd
}
