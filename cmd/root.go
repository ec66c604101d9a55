package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/everydaymood/internal/config"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/spf13/cobra"
)

const (
	gatedAnnotation = "everydaymood/gated"
	passwordEnv     = "EM_PASSWORD"
)

func Execute() error {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return err
	}

	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, func()) {
	var password string

	rootCmd := &cobra.Command{
		Use:           "em",
		Short:         "Everyday Mood (em): love notes, a mood journal and a little arcade game",
		Long:          "em (Everyday Mood) shows daily love messages, keeps a mood journal that can notify your partner, counts the days together and hosts a small flap-through-the-gaps arcade game.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Unlock password (default: $"+passwordEnv+")")

	app, err := wireApp(context.Background())
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if !isGated(cmd) {
			return nil
		}
		return unlock(cmd, app, password)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		gated(newPlayCmd(app)),
		gated(newScoreCmd(app)),
		gated(newJournalCmd(app)),
		gated(newMessageCmd(app)),
		gated(newTogetherCmd(app)),
		gated(newSettingsCmd(app)),
		gated(newNotifyCmd(app)),
		newLockCmd(app, &password),
	)

	return rootCmd, func() {
		if err := app.Close(); err != nil {
			app.logger.Warn().Err(err).Msg("close resources")
		}
	}
}

func gated(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[gatedAnnotation] = "true"
	return cmd
}

func isGated(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[gatedAnnotation] == "true" {
			return true
		}
	}
	return false
}

func unlock(cmd *cobra.Command, app *app, password string) error {
	if password == "" {
		password = os.Getenv(passwordEnv)
	}

	err := app.gate.Verify(cmd.Context(), password)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrGateLocked):
		return fmt.Errorf("%w: pass --password or set %s", err, passwordEnv)
	default:
		return err
	}
}
