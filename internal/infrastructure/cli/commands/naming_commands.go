package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/naming"
)

// NewCleanCommand runs the name sanitizer on raw backend output.
func NewCleanCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:         "clean [text]",
		Short:       "Sanitize raw model output into a session name",
		Annotations: standalone(),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := domain.ParseLanguage(lang)
			if err != nil {
				return err
			}
			raw := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raw = string(data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), naming.CleanName(raw, language))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "zh", "Name language (zh|en)")
	return cmd
}

// NewPromptCommand prints the instruction and input a backend would get.
func NewPromptCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:         "prompt <command>...",
		Short:       "Show the prompt built for the given commands",
		Args:        cobra.MinimumNArgs(1),
		Annotations: standalone(),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := domain.ParseLanguage(lang)
			if err != nil {
				return err
			}
			prompt := naming.BuildPrompt(args, language)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, prompt.Instruction)
			fmt.Fprintln(out, "---")
			fmt.Fprintln(out, prompt.Input)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "zh", "Name language (zh|en)")
	return cmd
}
