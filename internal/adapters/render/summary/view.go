package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/everydaymood/internal/application"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth       = 24
	previewRunes   = 60
	celebrateLabel = "today! 🎉"
)

func RenderScoreboard(board application.Scoreboard) (string, error) {
	return render(func(s styles) string { return scoreboardView(board, s) })
}

func RenderTogether(together application.Together) (string, error) {
	return render(func(s styles) string { return togetherView(together, s) })
}

func RenderLove(love application.Love) (string, error) {
	return render(func(s styles) string { return loveView(love, s) })
}

func RenderJournal(entries []domain.JournalEntry, stats domain.JournalStats) (string, error) {
	return render(func(s styles) string { return journalView(entries, stats, s) })
}

func scoreboardView(board application.Scoreboard, s styles) string {
	lines := []string{
		s.title.Render("Arcade Scoreboard"),
		s.header.Render(fmt.Sprintf("high score: %d", board.HighScore)),
	}

	if len(board.Achievements) == 0 {
		lines = append(lines, s.empty.Render("No achievements defined."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	unlocked := make(map[int]bool, len(board.Unlocked))
	for _, achievement := range board.Unlocked {
		unlocked[achievement.Threshold] = true
	}

	rows := []string{s.label.Render(fmt.Sprintf("achievements: %d/%d", len(board.Unlocked), len(board.Achievements)))}
	for _, achievement := range board.Achievements {
		rows = append(rows, achievementLine(achievement, unlocked[achievement.Threshold], board.HighScore, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func achievementLine(achievement domain.Achievement, unlocked bool, highScore int, s styles) string {
	title := strings.TrimSpace(achievement.Emoji + " " + achievement.Title)
	if unlocked {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.highlight.Render("[x] "+title),
			" ",
			s.meta.Render(fmt.Sprintf("(score %d)", achievement.Threshold)),
		)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.locked.Render("[ ] "+title),
		" ",
		renderProgressBar(fraction(highScore, achievement.Threshold), barWidth, s),
		" ",
		s.meta.Render(fmt.Sprintf("%d/%d", min(highScore, achievement.Threshold), achievement.Threshold)),
	)
}

func togetherView(together application.Together, s styles) string {
	lines := []string{
		s.title.Render("Days Together"),
		s.header.Render(fmt.Sprintf("since %s", together.StartDate.Format(domain.JournalDateLayout))),
		s.highlight.Render(fmt.Sprintf("%s · %s", plural(together.Days, "day"), plural(together.Months, "month"))),
	}

	next := s.detail.Render(fmt.Sprintf("next celebration: %s (%s)",
		together.NextCelebration.Format("02 Jan 2006"), formatCountdown(together.DaysUntilCelebration)))
	if together.CelebrationToday {
		next = s.celebrate.Render("celebration: " + celebrateLabel)
	}
	lines = append(lines, next)

	if note := together.MonthlyNote; note != nil {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.celebrate.Render(note.Title),
			s.detail.Render(note.Message),
		)))
	}

	if len(together.Milestones) > 0 {
		rows := []string{s.label.Render("milestones:")}
		for _, status := range together.Milestones {
			rows = append(rows, milestoneLine(status, together.Days, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func loveView(love application.Love, s styles) string {
	lines := []string{
		s.highlight.Render(fmt.Sprintf("Love Meter: %d%% 💗", love.Level)),
		renderProgressBar(fraction(love.Level, domain.LoveMeterMax), barWidth, s),
	}
	if love.Overflowing && love.Message != "" {
		lines = append(lines, s.celebrate.Render(love.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func milestoneLine(status domain.MilestoneStatus, days int, s styles) string {
	label := s.label.Render(fmt.Sprintf("%-10s", status.Milestone.Label))
	bar := renderProgressBar(fraction(days, status.Milestone.Days), barWidth, s)

	meta := s.highlight.Render("reached")
	if !status.Reached {
		closeness := interpolateColor(float64(days), 0, float64(status.Milestone.Days))
		meta = lipgloss.NewStyle().Foreground(closeness).Render(plural(status.Remaining, "day") + " to go")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", meta)
}

func journalView(entries []domain.JournalEntry, stats domain.JournalStats, s styles) string {
	lines := []string{
		s.title.Render("Love Journal"),
		s.header.Render(fmt.Sprintf("entries: %d", len(entries))),
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No journal entries yet."))
	} else {
		rows := make([]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, journalLine(entry, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.label.Render(fmt.Sprintf("total entries: %d", stats.Total)),
		s.label.Render(fmt.Sprintf("writing streak: %s", plural(stats.Streak, "day"))),
		s.label.Render(fmt.Sprintf("most common mood: %s", stats.MostCommonMood)),
		s.label.Render(fmt.Sprintf("journaling since: %s", stats.FirstEntryDate)),
	)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func journalLine(entry domain.JournalEntry, s styles) string {
	sent := ""
	if entry.EmailSent {
		sent = " ✉"
	}

	head := s.detail.Render(fmt.Sprintf("#%d %s %s", entry.ID, entry.Timestamp.Format(domain.JournalTimestampLayout), entry.Mood)) + s.meta.Render(sent)
	return lipgloss.JoinVertical(lipgloss.Left, head, s.meta.Render("   "+preview(entry.Text, previewRunes)))
}

func renderProgressBar(filledFraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampFraction(filledFraction)))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func fraction(value, target int) float64 {
	if target <= 0 {
		return 1
	}
	return float64(value) / float64(target)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatCountdown(days int) string {
	switch {
	case days <= 0:
		return celebrateLabel
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func preview(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

// interpolateColor maps value onto the 240..255 greyscale ramp; closer to max is brighter.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := clampFraction((value - min) / (max - min))
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
