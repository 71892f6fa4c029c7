package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/postcardcloud/postcard-go"
)

func jsonOutput(cmd *cli.Command) bool {
	return cmd.String("format") == "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type codeMessageJSON struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func codeMessagesJSON(msgs []postcard.CodeMessage) []codeMessageJSON {
	out := make([]codeMessageJSON, len(msgs))
	for i, m := range msgs {
		out[i] = codeMessageJSON{Code: int(m.Code), Description: m.Description}
	}
	return out
}

func printResponse(cmd *cli.Command, resp *postcard.DefaultResponse) error {
	w := out(cmd)
	if jsonOutput(cmd) {
		return writeJSON(w, map[string]any{
			"cardKey":        resp.CardKey,
			"successMessage": resp.SuccessMessage,
			"warnings":       codeMessagesJSON(resp.Warnings),
		})
	}
	fmt.Fprintf(w, "Card key: %s\n", resp.CardKey)
	if resp.SuccessMessage != "" {
		fmt.Fprintf(w, "Message:  %s\n", resp.SuccessMessage)
	}
	printWarnings(w, resp.Warnings)
	return nil
}

func printWarnings(w io.Writer, warnings []postcard.CodeMessage) {
	for _, m := range warnings {
		fmt.Fprintf(w, "Warning:  %s\n", m)
	}
}

// printProblems writes validation results and reports whether there were any.
func printProblems(cmd *cli.Command, subject string, msgs []string) (bool, error) {
	w := out(cmd)
	if jsonOutput(cmd) {
		return len(msgs) > 0, writeJSON(w, map[string]any{
			"subject": subject,
			"valid":   len(msgs) == 0,
			"errors":  append([]string{}, msgs...),
		})
	}
	if len(msgs) == 0 {
		fmt.Fprintf(w, "%s is valid\n", subject)
		return false, nil
	}
	fmt.Fprintf(w, "%s is invalid:\n  - %s\n", subject, strings.Join(msgs, "\n  - "))
	return true, nil
}
