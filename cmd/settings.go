package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/everydaymood/internal/application"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/spf13/cobra"
)

const startDateLayout = "2006-01-02"

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsNotifierCmd(app),
		newSettingsRelationshipCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, settings)
			}

			n := settings.Notifier
			lines := []string{
				"Notifier:",
				fmt.Sprintf("  channel: %s", n.Channel),
				fmt.Sprintf("  enabled: %t", n.Enabled),
			}
			switch n.Channel {
			case domain.NotifierChannelWebhook:
				lines = append(lines, fmt.Sprintf("  webhook url: %s", orUnset(n.WebhookURL)))
			default:
				lines = append(lines,
					fmt.Sprintf("  smtp server: %s:%d", n.SMTPServer, n.SMTPPort),
					fmt.Sprintf("  sender: %s", orUnset(n.Sender)),
					fmt.Sprintf("  recipient: %s", orUnset(n.Recipient)),
					fmt.Sprintf("  password: %s", passwordState(n.PasswordRef)),
				)
			}

			r := settings.Relationship
			start := "not set"
			if !r.StartDate.IsZero() {
				start = r.StartDate.Format(startDateLayout)
			}
			lines = append(lines,
				"Relationship:",
				fmt.Sprintf("  start date: %s", start),
				fmt.Sprintf("  celebration day: %d", r.CelebrationDay),
			)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func orUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "not set"
	}
	return value
}

func passwordState(ref string) string {
	if ref == "" {
		return "not set"
	}
	return "stored (" + ref + ")"
}

func newSettingsNotifierCmd(app *app) *cobra.Command {
	var channel string
	var enable bool
	var disable bool
	var cmdArgs application.UpdateNotifierCommand
	var password string
	var clearPassword bool

	cmd := &cobra.Command{
		Use:   "notifier",
		Short: "Configure how new journal entries are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enable && disable {
				return fmt.Errorf("--enable and --disable are mutually exclusive")
			}
			if enable || disable {
				enabled := enable
				cmdArgs.Enabled = &enabled
			}
			cmdArgs.Channel = domain.NotifierChannel(strings.ToLower(strings.TrimSpace(channel)))

			switch {
			case clearPassword && cmd.Flags().Changed("smtp-password"):
				return fmt.Errorf("--smtp-password and --clear-password are mutually exclusive")
			case clearPassword:
				empty := ""
				cmdArgs.Password = &empty
			case cmd.Flags().Changed("smtp-password"):
				cmdArgs.Password = &password
			}

			if err := app.settings.UpdateNotifier(cmd.Context(), cmdArgs); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Notifier settings saved.")
			return err
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "Delivery channel: email or webhook")
	cmd.Flags().BoolVar(&enable, "enable", false, "Enable notifications")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable notifications")
	cmd.Flags().StringVar(&cmdArgs.SMTPServer, "smtp-server", "", "SMTP server host")
	cmd.Flags().IntVar(&cmdArgs.SMTPPort, "smtp-port", 0, "SMTP server port (STARTTLS)")
	cmd.Flags().StringVar(&cmdArgs.Sender, "sender", "", "Sender email address (also the SMTP username)")
	cmd.Flags().StringVar(&cmdArgs.Recipient, "recipient", "", "Recipient email address")
	cmd.Flags().StringVar(&cmdArgs.WebhookURL, "webhook-url", "", "Webhook URL for the webhook channel")
	cmd.Flags().StringVar(&password, "smtp-password", "", "SMTP password, kept in the secret store")
	cmd.Flags().BoolVar(&clearPassword, "clear-password", false, "Remove the stored SMTP password")

	return cmd
}

func newSettingsRelationshipCmd(app *app) *cobra.Command {
	var start string
	var day int

	cmd := &cobra.Command{
		Use:   "relationship",
		Short: "Set the relationship start date and monthly celebration day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := time.ParseInLocation(startDateLayout, start, time.Local)
			if err != nil {
				return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", start)
			}

			if err := app.settings.UpdateRelationship(cmd.Context(), application.UpdateRelationshipCommand{
				StartDate:      startDate,
				CelebrationDay: day,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Relationship settings saved.")
			return err
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&day, "day", 0, "Day of the month to celebrate (default: 23)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
