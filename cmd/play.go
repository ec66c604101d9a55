package cmd

import (
	"fmt"
	"strings"

	arcaderender "github.com/bnema/everydaymood/internal/adapters/render/arcade"
	"github.com/bnema/everydaymood/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlayCmd(app *app) *cobra.Command {
	var sound bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the arcade game (space/up to flap, q to quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := arcaderender.Options{TickInterval: app.cfg.Game.TickInterval}
			if sound {
				if err := app.sounds.Initialize(); err != nil {
					app.logger.Warn().Err(err).Msg("sound disabled")
				} else {
					defer app.sounds.Close()
					opts.Sounds = app.sounds
				}
			}

			model, err := arcaderender.Run(cmd.Context(), app.arcade, opts,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if err != nil {
				return fmt.Errorf("run arcade: %w", err)
			}

			return writeGameSummary(cmd, model)
		},
	}

	cmd.Flags().BoolVar(&sound, "sound", app.cfg.Game.Sound, "Play sound effects")

	return cmd
}

func writeGameSummary(cmd *cobra.Command, model arcaderender.Model) error {
	result, ok := model.Result()
	if !ok {
		return nil
	}

	lines := []string{fmt.Sprintf("Score: %d  High Score: %d", result.Score, result.HighScore)}
	if result.NewHighScore {
		lines = append(lines, "New high score!")
	}
	for _, achievement := range model.Unlocked() {
		lines = append(lines, "Unlocked: "+achievementLabel(achievement))
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return err
}

func achievementLabel(achievement domain.Achievement) string {
	return strings.TrimSpace(achievement.Emoji + " " + achievement.Title)
}
