package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ethanbaker/calldash/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "callctl",
		Short: "callctl - place and inspect demo calls",
		Long: `callctl talks to a running calldash API. It places calls, lists the call
history, resolves statuses and prints transcripts.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.CallsCmd())
	rootCmd.AddCommand(cli.PromptCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
