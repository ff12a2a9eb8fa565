package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ethanbaker/calldash/pkg/sdk"
)

// CallsCmd returns the calls command
func CallsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Place and inspect calls",
	}

	cmd.AddCommand(callsListCmd())
	cmd.AddCommand(callsNewCmd())
	cmd.AddCommand(callsStatusCmd())
	cmd.AddCommand(callsTranscriptCmd())
	cmd.AddCommand(callsRefreshCmd())

	return cmd
}

func callsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the call history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().ListCalls(cmd.Context())
			if err != nil {
				return err
			}

			printCalls(cmd.OutOrStdout(), resp.Calls)
			return nil
		},
	}
}

func callsNewCmd() *cobra.Command {
	var (
		name      string
		phone     string
		script    string
		generated bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Place a new call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			origin := "manual"
			if generated {
				origin = "generated"
			}

			resp, err := newClient().InitiateCall(cmd.Context(), &sdk.InitiateCallRequest{
				UserName:     name,
				PhoneNumber:  phone,
				Prompt:       script,
				PromptOrigin: origin,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Placed %s (%s)\n", resp.CallID, statusBadge(resp.Status))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the person to call")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "Phone number to call")
	cmd.Flags().StringVarP(&script, "prompt", "m", "", "Script for the call")
	cmd.Flags().BoolVar(&generated, "generated", false, "Mark the script as generated")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("prompt")

	return cmd
}

func callsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <call-id>",
		Short: "Resolve the current status of a call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().GetCallStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", resp.CallID, statusBadge(resp.Status))
			return nil
		},
	}
}

func callsTranscriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcript <call-id>",
		Short: "Print the transcript of a call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().GetTranscript(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTranscript(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func callsRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Resolve the status of every pending call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().RefreshCalls(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d pending calls, %d updated\n", resp.Checked, resp.Updated)

			ids := make([]string, 0, len(resp.Failed))
			for id := range resp.Failed {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "  %s %s: %s\n", statusBadge("failed"), id, resp.Failed[id])
			}
			return nil
		},
	}
}
