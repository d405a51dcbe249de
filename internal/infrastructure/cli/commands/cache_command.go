package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/infrastructure/cli/helpers"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the generated-name cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}

	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List live cache entries, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listCacheEntries(cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached name",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Cache == nil {
					return ErrCacheUnavailable
				}
				if err := container.Cache.Clear(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", container.Cache.Dir())
				return nil
			},
		},
	)
	return cacheCmd
}

func listCacheEntries(out io.Writer, container *app.Container) error {
	if container.Cache == nil {
		return ErrCacheUnavailable
	}
	entries, err := container.Cache.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedNames)
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Name,
			e.Provider + "/" + string(e.Language),
			e.CreatedAt.Local().Format(TimestampFormat),
			strings.Join(e.Commands, ", "),
		})
	}
	fmt.Fprint(out, helpers.RenderTable(helpers.Table{
		Headers: []string{"Name", "Provider", "Created", "Commands"},
		Rows:    rows,
	}))
	fmt.Fprintln(out, helpers.Dim(fmt.Sprintf("%d entries, ttl %s", len(entries), container.Cache.TTL())))
	return nil
}
