package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethanbaker/calldash/pkg/sdk"
	"github.com/fatih/color"
)

// statusBadge renders a call status with its colour
func statusBadge(status string) string {
	label := strings.ReplaceAll(status, "_", " ")

	switch status {
	case "completed":
		return color.New(color.FgHiGreen).Sprint(label)
	case "failed":
		return color.New(color.FgRed).Sprint(label)
	case "in_progress":
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgWhite).Sprint(label)
	}
}

// speakerLabel renders a transcript speaker prefix
func speakerLabel(speaker string) string {
	switch speaker {
	case "Agent":
		return color.New(color.FgCyan).Sprint("Agent:")
	case "Customer":
		return color.New(color.FgHiMagenta).Sprint("Customer:")
	default:
		return ""
	}
}

// printCalls writes the call history as one line per call
func printCalls(w io.Writer, list []sdk.Call) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No calls yet.")
		return
	}

	for _, call := range list {
		fmt.Fprintf(w, "%s  %s  %-20s %-16s %s\n",
			call.Timestamp.Local().Format("2006-01-02 15:04"),
			color.New(color.FgHiBlack).Sprint(call.ID),
			call.UserName,
			call.PhoneNumber,
			statusBadge(call.Status),
		)
	}
}

// printTranscript writes a transcript with coloured speaker labels
func printTranscript(w io.Writer, t *sdk.TranscriptResponse) {
	if !t.Available {
		fmt.Fprintln(w, "No transcript available for this call yet.")
		return
	}

	for _, line := range t.Lines {
		if label := speakerLabel(line.Speaker); label != "" {
			fmt.Fprintf(w, "%s %s\n", label, line.Text)
			continue
		}
		fmt.Fprintln(w, line.Text)
	}
}
