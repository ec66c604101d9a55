package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Check the notifier",
	}

	cmd.AddCommand(newNotifyTestCmd(app))

	return cmd
}

func newNotifyTestCmd(app *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test notification with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := app.now()
			days, err := app.together.DaysTogether(cmd.Context())
			if err != nil {
				return err
			}

			entry := domain.JournalEntry{
				Timestamp:    now,
				Date:         now.Format(domain.JournalDateLayout),
				Mood:         "Test",
				Text:         "This is a test notification from em.",
				DaysTogether: days,
			}

			send := func(ctx context.Context) error {
				return app.notifier.Notify(ctx, entry)
			}
			if quiet {
				err = send(cmd.Context())
			} else {
				err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Sending test notification...", send)
			}
			if err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent.")
			return err
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not show a progress spinner")

	return cmd
}
