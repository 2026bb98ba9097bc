package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/grovetools/agentstatus/internal/display"
	"github.com/grovetools/agentstatus/internal/status"
	watchpkg "github.com/grovetools/agentstatus/internal/watch"
	"github.com/grovetools/agentstatus/pkg/agentstatus"
	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"
)

var ulogStatus = grovelogging.NewUnifiedLogger("grove-agent-status.cmd.status")

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the activity status of every configured agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			watch, _ := cmd.Flags().GetDuration("watch")

			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}

			fetch := func(ctx context.Context) []status.AgentStatus {
				if noCache {
					return svc.Compute(ctx)
				}
				return svc.Agents(ctx)
			}

			if watch <= 0 {
				return renderStatuses(fetch(cmd.Context()), jsonOutput, false)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var ids []string
			for _, agent := range svc.Roster() {
				ids = append(ids, agent.ID)
			}
			// Log changes wake the loop early; the cache still bounds how often logs are read.
			changes, err := watchpkg.Sessions(ctx, svc.Locator(), ids, watchpkg.DefaultDebounce)
			if err != nil {
				grovelogging.NewLogger("agstatus.cmd.status").WithError(err).Warn("Session watcher unavailable, polling only")
			}

			ticker := time.NewTicker(watch)
			defer ticker.Stop()
			for {
				if err := renderStatuses(fetch(ctx), jsonOutput, true); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				case _, ok := <-changes:
					if !ok {
						changes = nil
					}
				}
			}
		},
	}

	addConfigFlags(cmd)
	cmd.Flags().Bool("no-cache", false, "Re-read session logs instead of serving cached results")
	cmd.Flags().Duration("watch", 0, "Refresh the output on this interval (e.g. 5s)")

	return cmd
}

func renderStatuses(statuses []agentstatus.AgentStatus, jsonOutput, clear bool) error {
	counts := map[status.State]int{}
	for _, s := range statuses {
		counts[s.Status]++
	}

	if jsonOutput {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statuses: %w", err)
		}
		ulogStatus.Info("Agent statuses").
			Field("agent_count", len(statuses)).
			Field("active", counts[status.StateActive]).
			Field("idle", counts[status.StateIdle]).
			Field("offline", counts[status.StateOffline]).
			Field("error", counts[status.StateError]).
			Pretty(string(data) + "\n").
			PrettyOnly().
			Emit()
		return nil
	}

	var buf bytes.Buffer
	if clear {
		buf.WriteString("\033[H\033[2J")
	}
	if len(statuses) == 0 {
		buf.WriteString("No agents configured\n")
	} else {
		display.PrintStatusTable(statuses, time.Now(), &buf)
	}

	ulogStatus.Info("Agent statuses").
		Field("agent_count", len(statuses)).
		Field("active", counts[status.StateActive]).
		Field("error", counts[status.StateError]).
		Pretty(buf.String()).
		PrettyOnly().
		Emit()
	return nil
}
