package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRendered prints the output of a summary renderer.
func writeRendered(cmd *cobra.Command, what string, render func() (string, error)) error {
	rendered, err := render()
	if err != nil {
		return fmt.Errorf("render %s: %w", what, err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
