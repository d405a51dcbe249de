package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/application/usage"
	"github.com/doeshing/termnamer/internal/domain"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(container *app.Container) *cobra.Command {
	var (
		input  string
		status bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Name sessions from a stream of session events",
		Long: `Read session events, one per line, from stdin or --input:

  open [id]              a session started; without an id one is generated
                         and reported as "opened <id>"
  close <id>             a session ended
  cmd <id> <command...>  a command was run in the session
  rename <id>            name the session now from its history
  rename *               name every session that has history
  reload                 re-read the configuration

Renames are written to stdout as "rename <id> <name>".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, container, input, status)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Read events from this file instead of stdin")
	cmd.Flags().BoolVar(&status, "status", false, "Print today's usage to stderr after every recorded call")
	return cmd
}

func runWatch(cmd *cobra.Command, container *app.Container, input string, status bool) error {
	var r io.Reader = cmd.InOrStdin()
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open events: %w", err)
		}
		defer f.Close()
		r = f
	}

	if status && container.Meter != nil {
		errOut := cmd.ErrOrStderr()
		container.Meter.SetObserver(func(today domain.UsageStats) {
			fmt.Fprintln(errOut, usage.StatusLine(today))
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := container.WatchService.Run(ctx, r)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
