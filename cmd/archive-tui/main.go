package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/archive-downloader/internal/cli"
	"github.com/handiism/archive-downloader/internal/tui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		cli.Fail(cmd, err)
	}
	os.Exit(cli.ExitCode(err))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "archive-tui",
		Short:         "Interactive downloader for the videos linked from a web page",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}

	opts := cli.BindFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		settings, err := opts.Prepare()
		if err != nil {
			return err
		}
		_, err = tui.Run(cmd.Context(), settings, opts.Verbose)
		return err
	}

	return cmd
}
