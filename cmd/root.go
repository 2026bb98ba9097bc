package cmd

import (
	"github.com/grovetools/agentstatus/config"
	"github.com/grovetools/agentstatus/pkg/agentstatus"
	"github.com/grovetools/core/cli"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for agstatus.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"agstatus",
		"Agent activity status from session logs",
	)
	rootCmd.PersistentFlags().String("root", "", "Root directory holding the roster and agents/ (default $OPENCLAW_DIR or ~/.openclaw)")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newMessagesCmd())
	rootCmd.AddCommand(newUsageCmd())
	rootCmd.AddCommand(newLatestCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// addConfigFlags registers the flags every data command reads.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to a standalone agstatus yaml config")
	cmd.Flags().Bool("json", false, "Output in JSON format")
}

// loadConfig resolves configuration for a command, applying --root last.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.RootDir = root
	}
	return cfg, nil
}

func newService(cmd *cobra.Command) (*agentstatus.Service, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return agentstatus.NewFromConfig(cfg), cfg, nil
}
