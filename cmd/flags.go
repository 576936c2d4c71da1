package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xufanglin/rimmich/types"
)

// bindFlags registers the global overrides on root.
func bindFlags(root *cobra.Command, cfg *types.Config) {
	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Log, "log", "", "log level override: debug|info|warn|error")
	flags.StringVar(&cfg.UseConfigPath, "config", "", "override config file path (default ~/.immich/config.yaml)")
	flags.StringVar(&cfg.UseLogDir, "log-dir", "", "override log directory (default ~/.immich)")
	flags.BoolVar(&cfg.NoLogFile, "no-log-file", false, "only log to stderr")
}
