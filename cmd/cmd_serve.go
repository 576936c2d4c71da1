package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xufanglin/rimmich/api"
	"github.com/xufanglin/rimmich/tool"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the local control API",
		Args:    cobra.NoArgs,
		RunE:    RunServer,
	}
	serveCmd.Flags().String("addr", api.DefaultAddr, "listen address, keep it on loopback")
	return serveCmd
}

// RunServer serves the control API until interrupted.
func RunServer(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	server := api.NewServer(addr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	tool.DefaultLogger.Info("Shutting down control API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
