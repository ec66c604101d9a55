package cmd

import (
	"github.com/bnema/everydaymood/internal/adapters/render/summary"
	"github.com/spf13/cobra"
)

func newScoreCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the arcade high score and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board := app.arcade.Scoreboard(cmd.Context())
			if asJSON {
				return writeJSON(cmd, board)
			}
			return writeRendered(cmd, "scoreboard", func() (string, error) {
				return summary.RenderScoreboard(board)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
