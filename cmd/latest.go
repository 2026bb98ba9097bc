package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grovetools/agentstatus/internal/session"
	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"
)

var ulogLatest = grovelogging.NewUnifiedLogger("grove-agent-status.cmd.latest")

func newLatestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest <agent-id|path>",
		Short: "Show the session log an agent's status is read from",
		Long:  "Show the most recently modified session log of an agent, including soft-deleted logs. With --all, list every candidate newest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			all, _ := cmd.Flags().GetBool("all")

			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}

			var refs []session.SessionFileRef
			if all {
				refs, err = svc.Locator().List(args[0])
				if err != nil {
					return fmt.Errorf("failed to list sessions: %w", err)
				}
				if len(refs) == 0 {
					return fmt.Errorf("no session file found for agent %s", args[0])
				}
			} else {
				ref, err := session.ResolveSessionFile(svc.Locator(), args[0])
				if err != nil {
					return err
				}
				refs = []session.SessionFileRef{*ref}
			}

			var pretty string
			if jsonOutput {
				var v any = refs
				if !all {
					v = refs[0]
				}
				data, err := json.MarshalIndent(v, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal session info to JSON: %w", err)
				}
				pretty = string(data) + "\n"
			} else {
				var b strings.Builder
				for _, ref := range refs {
					deleted := ""
					if ref.Deleted {
						deleted = " (deleted)"
					}
					fmt.Fprintf(&b, "%s\t%s%s\n", ref.ModifiedAt.Format("2006-01-02 15:04:05"), ref.Path, deleted)
				}
				pretty = b.String()
			}

			ulogLatest.Info("Session file resolved").
				Field("spec", args[0]).
				Field("path", refs[0].Path).
				Field("deleted", refs[0].Deleted).
				Field("candidates", len(refs)).
				Pretty(pretty).
				PrettyOnly().
				Emit()
			return nil
		},
	}

	addConfigFlags(cmd)
	cmd.Flags().Bool("all", false, "List every candidate session log")

	return cmd
}
