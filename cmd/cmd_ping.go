package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/transfer"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := tool.GetCurrentConfig()
			text := currentText()
			if err := transfer.PingServer(cmd.Context(), cfg.ServerURL); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), text.ServerUnreachable(cfg.ServerURL, err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text.ServerReachable(cfg.ServerURL))
			return nil
		},
	}
}
