package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/application/rename"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/infrastructure/cli/helpers"
)

// NewNameCommand creates the one-shot name command
func NewNameCommand(container *app.Container) *cobra.Command {
	var (
		lang     string
		provider string
		copyName bool
	)

	cmd := &cobra.Command{
		Use:   "name <command>...",
		Short: "Generate a session name for the given commands",
		Example: `  termnamer name "git status" "git add ." "git commit -m wip"
  termnamer name --lang en --provider ollama "npm run dev"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateName(cmd, container, args, rename.Overrides{Language: lang, Provider: provider}, copyName)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language (zh|en), default from config")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Backend (openrouter|openai|claude|ollama), default from config")
	cmd.Flags().BoolVarP(&copyName, "copy", "c", false, "Copy the name to the clipboard")
	return cmd
}

func generateName(cmd *cobra.Command, container *app.Container, commands []string, o rename.Overrides, copyName bool) error {
	ctx := cmd.Context()
	errOut := cmd.ErrOrStderr()

	spinner := helpers.NewSpinner(errOut, "naming...")
	spinner.Start()
	result, err := container.RenameService.GenerateWith(ctx, commands, o)
	spinner.Stop()
	if err != nil {
		return err
	}

	container.RenameService.Record(ctx, result)
	fmt.Fprintln(cmd.OutOrStdout(), result.Name)
	describeResult(errOut, result)

	if copyName {
		copyToClipboard(errOut, container, result.Name)
	}
	return nil
}

func describeResult(out io.Writer, result domain.GenerationResult) {
	if result.Usage == nil {
		fmt.Fprintln(out, helpers.Dim(result.Model))
		return
	}
	fmt.Fprintln(out, helpers.Dim(fmt.Sprintf("%s · %s tokens",
		result.Model, helpers.Tokens(result.Usage.TotalTokens))))
}

func copyToClipboard(out io.Writer, container *app.Container, text string) {
	if container.Clipboard == nil || !container.Clipboard.Enabled() {
		fmt.Fprintln(out, "clipboard unavailable")
		return
	}
	if err := container.Clipboard.Copy(text); err != nil {
		container.Logger.Warn("clipboard copy failed", zap.Error(err))
		fmt.Fprintf(out, "clipboard copy failed: %v\n", err)
		return
	}
	fmt.Fprintln(out, helpers.Dim("copied to clipboard"))
}
