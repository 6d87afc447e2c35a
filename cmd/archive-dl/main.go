package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/archive-downloader/internal/cli"
	"github.com/handiism/archive-downloader/internal/console"
	"github.com/handiism/archive-downloader/internal/download"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

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
		Use:   "archive-dl",
		Short: "Download the videos linked from a web page",
		Long: `archive-dl fetches one page, collects every link ending in the
chosen extension and downloads the files into a folder. Files that already
exist are skipped.

For an interactive view, use: archive-tui`,
		Example:       "  archive-dl -u https://archive.org/download/some-item -f ./videos -t 4",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}

	opts := cli.BindFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd, opts)
	}

	return cmd
}

func run(cmd *cobra.Command, opts *cli.Options) error {
	settings, err := opts.Prepare()
	if err != nil {
		return err
	}

	out := console.New(cmd.OutOrStdout(), opts.Verbose)
	out.Println("Archive Downloader")
	out.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	manager := download.NewManager(settings, out.Handle)
	summary, err := manager.Run(cmd.Context())
	if err == nil {
		out.Println("")
		out.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		out.Println(footer(summary))
	}
	out.Close()

	return err
}

func footer(s download.Summary) string {
	return fmt.Sprintf("Found %d | Saved %d | Skipped %d | Forbidden %d | Failed %d",
		s.Found, s.Saved, s.Skipped, s.Forbidden, s.Failed)
}
