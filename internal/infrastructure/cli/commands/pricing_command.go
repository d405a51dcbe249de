package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/infrastructure/cli/helpers"
	"github.com/doeshing/termnamer/internal/infrastructure/pricing"
)

// NewPricingCommand lists the effective price table.
func NewPricingCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pricing",
		Short: "List per-model prices used for cost estimates (USD per 1M tokens)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Meter == nil {
				return ErrMeterUnavailable
			}
			out := cmd.OutOrStdout()
			table := container.Meter.Prices()

			rows := make([][]string, 0, len(table.Models)+1)
			for _, e := range pricing.Sorted(table) {
				rows = append(rows, []string{e.Model, helpers.PerMillion(e.Pricing.InputPerToken), helpers.PerMillion(e.Pricing.OutputPerToken)})
			}
			rows = append(rows, []string{"(other models)", helpers.PerMillion(table.Default.InputPerToken), helpers.PerMillion(table.Default.OutputPerToken)})

			fmt.Fprintln(out, helpers.Heading("Pricing"))
			fmt.Fprint(out, helpers.RenderTable(helpers.Table{
				Headers: []string{"Model", "Input", "Output"},
				Rows:    rows,
			}))
			if path := container.Config.Pricing.OverridesFile; path != "" {
				fmt.Fprintln(out, helpers.Dim("overrides: "+path))
			}
			return nil
		},
	}
}
