// Package journal renders a single journal entry as markdown for the terminal.
package journal

import (
	"fmt"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/charmbracelet/glamour"
)

const (
	StyleDark  = "dark"
	StyleLight = "light"
	// StylePlain renders without ANSI escapes.
	StylePlain = "notty"
)

type Options struct {
	Style string
	Width int
}

// Markdown formats the entry as a markdown document.
func Markdown(entry domain.JournalEntry) string {
	mood := strings.TrimSpace(entry.Mood)
	if mood == "" {
		mood = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Entry #%d · %s\n\n", entry.ID, mood)
	fmt.Fprintf(&b, "- **Date:** %s\n", entry.Date)
	fmt.Fprintf(&b, "- **Time:** %s\n", entry.Timestamp.Format("15:04:05"))
	if entry.DaysTogether > 0 {
		fmt.Fprintf(&b, "- **Days together:** %d\n", entry.DaysTogether)
	}
	if entry.EmailSent {
		b.WriteString("- **Notification:** sent\n")
	} else {
		b.WriteString("- **Notification:** not sent\n")
	}

	b.WriteString("\n---\n\n")
	for _, line := range strings.Split(strings.TrimSpace(entry.Text), "\n") {
		fmt.Fprintf(&b, "> %s\n", line)
	}

	return b.String()
}

func Render(entry domain.JournalEntry, opts Options) (string, error) {
	style := opts.Style
	if style == "" {
		style = StyleDark
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(Markdown(entry))
	if err != nil {
		return "", fmt.Errorf("render journal entry: %w", err)
	}

	return out, nil
}
