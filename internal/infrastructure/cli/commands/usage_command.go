package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/application/usage"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/infrastructure/cli/helpers"
)

// NewUsageCommand creates the usage command with all subcommands
func NewUsageCommand(container *app.Container) *cobra.Command {
	var markdown bool

	usageCmd := &cobra.Command{
		Use:   "usage",
		Short: "Show token usage and estimated cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showUsage(cmd.OutOrStdout(), container, markdown)
		},
	}
	usageCmd.Flags().BoolVar(&markdown, "markdown", false, "Render as markdown")

	usageCmd.AddCommand(
		newUsageShowCommand(container),
		newUsageResetCommand(container),
		newUsageExportCommand(container),
	)
	return usageCmd
}

func newUsageShowCommand(container *app.Container) *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showUsage(cmd.OutOrStdout(), container, markdown)
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render as markdown")
	return cmd
}

func newUsageResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the usage log and lifetime totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Meter == nil {
				return ErrMeterUnavailable
			}
			if err := container.Meter.ResetStats(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgUsageReset)
			return nil
		},
	}
}

func newUsageExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the usage log as JSON to path or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Meter == nil {
				return ErrMeterUnavailable
			}
			log := domain.UsageLog{
				Records:  container.Meter.Records(),
				Lifetime: container.Meter.LifetimeStats(),
			}
			if log.Records == nil {
				log.Records = []domain.UsageRecord{}
			}
			data, err := json.MarshalIndent(log, "", "  ")
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(args[0], append(data, '\n'), domain.SecureFilePermissions); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d records to %s\n", len(log.Records), args[0])
			return nil
		},
	}
}

func showUsage(out io.Writer, container *app.Container, markdown bool) error {
	meter := container.Meter
	if meter == nil {
		return ErrMeterUnavailable
	}

	today, window, lifetime := meter.TodayStats(), meter.Stats(), meter.LifetimeStats()
	if markdown {
		fmt.Fprint(out, usage.FormatMarkdown(today, window))
		return nil
	}
	if lifetime.RequestCount == 0 && window.RequestCount == 0 {
		fmt.Fprintln(out, MsgNoUsage)
		return nil
	}

	row := func(label string, s domain.UsageStats) []string {
		return []string{
			label,
			helpers.Tokens(s.RequestCount),
			helpers.Tokens(s.TotalPromptTokens),
			helpers.Tokens(s.TotalCompletionTokens),
			helpers.Tokens(s.TotalTokens),
			usage.FormatCost(s.TotalCost),
		}
	}

	fmt.Fprintln(out, helpers.Heading("Usage"))
	fmt.Fprint(out, helpers.RenderTable(helpers.Table{
		Headers: []string{"Period", "Requests", "Input", "Output", "Total", "Cost"},
		Rows: [][]string{
			row("Today", today),
			row(fmt.Sprintf("Last %d", len(meter.Records())), window),
			row("Lifetime", lifetime),
		},
	}))
	fmt.Fprintln(out, helpers.Dim(usage.StatusLine(today)))
	return nil
}
