package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLockCmd(app *app, password *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Protect em with a password",
	}

	cmd.AddCommand(
		newLockSetCmd(app, password),
		newLockClearCmd(app, password),
		newLockStatusCmd(app),
	)

	return cmd
}

func newLockSetCmd(app *app, password *string) *cobra.Command {
	var newPassword string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set or change the unlock password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := unlock(cmd, app, *password); err != nil {
				return err
			}
			if err := app.gate.SetPassword(cmd.Context(), newPassword); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Password set.")
			return err
		},
	}

	cmd.Flags().StringVar(&newPassword, "new", "", "New unlock password")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func newLockClearCmd(app *app, password *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the unlock password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := unlock(cmd, app, *password); err != nil {
				return err
			}
			if err := app.gate.Clear(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Password removed.")
			return err
		},
	}
}

func newLockStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a password is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := app.gate.Enabled(cmd.Context())
			if err != nil {
				return err
			}

			state := "unlocked (no password set)"
			if enabled {
				state = "locked (password required)"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), state)
			return err
		},
	}
}
