package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/grovetools/agentstatus/cmd.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var ulogVersion = grovelogging.NewUnifiedLogger("grove-agent-status.cmd.version")

// VersionInfo holds version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func currentVersion() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	return info
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			info := currentVersion()

			pretty := fmt.Sprintf("agstatus %s (commit %s, built %s)\n  Go: %s\n  OS/Arch: %s\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			if jsonOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version: %w", err)
				}
				pretty = string(data) + "\n"
			}

			ulogVersion.Info("Version").
				Field("version", info.Version).
				Field("commit", info.Commit).
				Pretty(pretty).
				PrettyOnly().
				Emit()
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}
