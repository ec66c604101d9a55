package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/everydaymood/internal/adapters/render/summary"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/spf13/cobra"
)

func newTogetherCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "together",
		Short: "Show days together, milestones and the next celebration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := app.together.Overview(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrRelationshipNotSet) {
					return fmt.Errorf("%w: run `em settings relationship --start YYYY-MM-DD` first", err)
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd, overview)
			}
			return writeRendered(cmd, "together", func() (string, error) {
				return summary.RenderTogether(overview)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.AddCommand(newTogetherLoveCmd(app))

	return cmd
}

func newTogetherLoveCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		reset  bool
	)

	cmd := &cobra.Command{
		Use:   "love",
		Short: "Press the love meter, ten percent at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			press := app.together.RaiseLove
			if reset {
				press = app.together.ResetLove
			}

			love, err := press(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, love)
			}
			return writeRendered(cmd, "love meter", func() (string, error) {
				return summary.RenderLove(love)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&reset, "reset", false, "Empty the love meter")

	return cmd
}
