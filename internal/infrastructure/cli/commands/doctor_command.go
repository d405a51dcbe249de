package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command. It exits non-zero when any
// check fails; warnings are only printed.
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, credentials and storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return ErrDoctorServiceUnavailable
			}
			report, err := container.DoctorService.Run(cmd.Context())
			helpers.RenderHealthReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if failed := report.Failed(); len(failed) > 0 {
				return fmt.Errorf("failed checks: %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}
