// Package cmd is the rimmich command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/types"
)

// NewCLI builds the root command with every subcommand attached.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	var flags types.Config
	rootCmd := &cobra.Command{
		Use:           "rimmich",
		Short:         "Upload photos and videos to an Immich server",
		Version:       tool.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(flags)
		},
	}
	bindFlags(rootCmd, &flags)

	rootCmd.AddCommand(
		newUploadCmd(),
		newUserCmd(),
		newConfigCmd(),
		newPingCmd(),
		newServeCmd(),
	)
	return rootCmd
}

// setup loads the settings and prepares logging and the HTTP clients.
func setup(flags types.Config) error {
	cfg, err := tool.LoadConfig(flags.UseConfigPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if flags.Log != "" {
		level = flags.Log
	}
	logDir := flags.UseLogDir
	if logDir == "" {
		logDir = tool.ConfigDir()
	}
	if flags.NoLogFile {
		logDir = ""
	}
	if err := tool.InitLogger(level, logDir); err != nil {
		return err
	}
	tool.InitHTTPClients(cfg.SkipTLSVerify)
	return nil
}
