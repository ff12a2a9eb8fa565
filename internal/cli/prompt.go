package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// PromptCmd returns the prompt command
func PromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Work with call scripts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate <description...>",
		Short: "Generate a call script from a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := newClient().GeneratePrompt(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), script)
			return nil
		},
	})

	return cmd
}
