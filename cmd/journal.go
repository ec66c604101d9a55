package cmd

import (
	"fmt"
	"strconv"
	"strings"

	journalrender "github.com/bnema/everydaymood/internal/adapters/render/journal"
	"github.com/bnema/everydaymood/internal/adapters/render/summary"
	"github.com/bnema/everydaymood/internal/application"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/spf13/cobra"
)

type journalAddOutput struct {
	Entry   domain.JournalEntry
	Message string
}

func newJournalCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and browse the mood journal",
	}

	cmd.AddCommand(
		newJournalAddCmd(app),
		newJournalListCmd(app),
		newJournalShowCmd(app),
		newJournalStatsCmd(app),
	)

	return cmd
}

func newJournalAddCmd(app *app) *cobra.Command {
	var mood string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a journal entry and notify your partner",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mood != "" {
				if resolved, ok := app.messages.ResolveMood(mood); ok {
					mood = resolved
				}
			}

			days, err := app.together.DaysTogether(cmd.Context())
			if err != nil {
				return err
			}

			entry, message, err := app.journal.AddEntry(cmd.Context(), application.AddJournalEntryCommand{
				Mood:         mood,
				Text:         strings.Join(args, " "),
				DaysTogether: days,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, journalAddOutput{Entry: entry, Message: message})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved entry #%d (%s).\n%s\n", entry.ID, entry.Mood, message)
			return err
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "Mood for the entry (see `em message moods`)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newJournalListCmd(app *app) *cobra.Command {
	var filter domain.JournalFilter
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resolved, ok := app.messages.ResolveMood(filter.Mood); ok {
				filter.Mood = resolved
			}

			entries, err := app.journal.Entries(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}

			stats, err := app.journal.Statistics(cmd.Context())
			if err != nil {
				return err
			}

			return writeRendered(cmd, "journal", func() (string, error) {
				return summary.RenderJournal(entries, stats)
			})
		},
	}

	cmd.Flags().StringVar(&filter.Mood, "mood", "", "Only entries with this mood")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Only entries whose text contains this (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newJournalShowCmd(app *app) *cobra.Command {
	var asJSON bool
	var plain bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			entry, err := app.journal.Entry(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entry)
			}

			opts := journalrender.Options{Width: 80}
			if plain {
				opts.Style = journalrender.StylePlain
			}
			rendered, err := journalrender.Render(entry, opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&plain, "plain", false, "Render without colors")

	return cmd
}

func newJournalStatsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.journal.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, stats)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Total entries: %d\nWriting streak: %d days\nMost common mood: %s\nJournaling since: %s\n",
				stats.Total, stats.Streak, stats.MostCommonMood, stats.FirstEntryDate)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
