package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xufanglin/rimmich/batch"
	"github.com/xufanglin/rimmich/i18n"
	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/transfer"
	"github.com/xufanglin/rimmich/types"
)

// ErrBatchAborted is returned when a batch stopped at a failed file.
var ErrBatchAborted = errors.New("upload aborted")

func newUploadCmd() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload files to the server, stopping at the first failure",
		Args:  cobra.MinimumNArgs(1),
		RunE:  UploadHandler,
	}
	uploadCmd.Flags().StringP("user", "u", "", "account to upload as (default: current user)")
	uploadCmd.Flags().IntP("concurrency", "c", 0, "number of simultaneous uploads, 1-16 (default: from config)")
	return uploadCmd
}

// UploadHandler runs one batch in the foreground and prints its status lines.
func UploadHandler(cmd *cobra.Command, args []string) error {
	cfg := tool.GetCurrentConfig()
	text := i18n.New(cfg.Language)
	out := cmd.OutOrStdout()

	user, _ := cmd.Flags().GetString("user")
	name, apiKey, ok := tool.LookupAPIKey(user)
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), text.UserAPIKeyNotFound())
		return batch.MissingCredentials(name)
	}

	concurrency := cfg.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	files := make([]types.FileEntry, 0, len(args))
	for _, p := range args {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		files = append(files, types.FileEntry{Path: p, DisplayName: filepath.Base(p)})
	}
	fmt.Fprintln(out, text.FilesSelected(len(files)))

	reporter := i18n.StatusReporter{Text: text, Emit: func(_, line string) {
		fmt.Fprintln(out, line)
	}}
	job := types.BatchJob{Files: files, Concurrency: concurrency, ServerURL: cfg.ServerURL, APIKey: apiKey}
	coordinator, err := batch.New(job, transfer.NewUploader(cfg.SpeedLimit), reporter)
	if err != nil {
		if errors.Is(err, batch.ErrInvalidConcurrency) {
			fmt.Fprintln(cmd.ErrOrStderr(), text.InvalidConcurrency())
		}
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := coordinator.Run(ctx)
	if err != nil {
		return err
	}
	if result.FirstFailure != nil {
		return fmt.Errorf("%w: %s", ErrBatchAborted, result.State())
	}
	return nil
}
