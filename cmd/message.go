package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const defaultCategory = "daily"

type moodMessage struct {
	Mood    string
	Message string
}

func newMessageCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"msg"},
		Short:   "Show love messages",
	}

	cmd.AddCommand(
		newMessageRandomCmd(app),
		newMessageDailyCmd(app),
		newMessageMoodCmd(app),
		newMessageMoodsCmd(app),
		newMessageMonthlyCmd(app),
	)

	return cmd
}

func categoryArg(args []string) string {
	if len(args) == 0 {
		return defaultCategory
	}
	return args[0]
}

func newMessageRandomCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "random [category]",
		Short: "Show a random message from a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := app.messages.Random(categoryArg(args))
			if err != nil {
				return fmt.Errorf("%w (categories: %s)", err, strings.Join(app.messages.Categories(), ", "))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}
}

func newMessageDailyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "daily [category]",
		Short: "Show today's message (the same all day)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := app.messages.Daily(categoryArg(args))
			if err != nil {
				return fmt.Errorf("%w (categories: %s)", err, strings.Join(app.messages.Categories(), ", "))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}
}

func newMessageMoodCmd(app *app) *cobra.Command {
	var all bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mood [name]",
		Short: "Show a message for how you feel",
		Long:  "Show a message for how you feel. With --all, read one message per mood; reading them all reveals a hidden note.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("mood name required (moods: %s)", strings.Join(app.messages.Moods(), ", "))
			}

			names := args
			if all {
				names = app.messages.Moods()
			}

			out := make([]moodMessage, 0, len(names))
			for _, name := range names {
				mood, message, err := app.messages.Mood(name)
				if err != nil {
					return fmt.Errorf("%w (moods: %s)", err, strings.Join(app.messages.Moods(), ", "))
				}
				out = append(out, moodMessage{Mood: mood, Message: message})
			}

			visited := make([]string, 0, len(out))
			for _, m := range out {
				visited = append(visited, m.Mood)
			}
			reveal, revealed, err := app.messages.Reveal(cmd.Context(), visited)
			if err != nil {
				return err
			}

			if asJSON {
				payload := struct {
					Messages []moodMessage
					Reveal   any `json:",omitempty"`
				}{Messages: out}
				if revealed {
					payload.Reveal = reveal
				}
				return writeJSON(cmd, payload)
			}

			w := cmd.OutOrStdout()
			for _, m := range out {
				if _, err := fmt.Fprintf(w, "%s\n  %s\n", m.Mood, m.Message); err != nil {
					return err
				}
			}
			if revealed {
				title := reveal.Title
				if title == "" {
					title = "A secret message"
				}
				_, err = fmt.Fprintf(w, "\n💌 %s\n%s\n", title, reveal.Message)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Read one message for every mood")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newMessageMoodsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List the available moods and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Moods: %s\nCategories: %s\n",
				strings.Join(app.messages.Moods(), ", "),
				strings.Join(app.messages.Categories(), ", "))
			return err
		},
	}
}

func newMessageMonthlyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Show the monthly note on the celebration day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, months, ok, err := app.messages.Monthly(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No monthly note today.")
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "💝 %s (%d months)\n%s\n", note.Title, months, note.Message)
			return err
		},
	}
}
