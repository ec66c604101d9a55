package arcade

import (
	"fmt"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	playerGlyph   = '♥'
	obstacleGlyph = '█'
	emptyGlyph    = ' '
)

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.score.Render(fmt.Sprintf("Score: %d", m.session.Score)),
		"  ",
		m.styles.meta.Render(fmt.Sprintf("High Score: %d", max(m.highScore, m.session.Score))),
	)

	lines := []string{header, m.styles.frame.Render(m.field())}

	if m.banner != nil {
		lines = append(lines, m.styles.banner.Render(bannerText(*m.banner)))
	}

	if m.result != nil {
		lines = append(lines, m.gameOverView(*m.result))
	} else {
		lines = append(lines, m.styles.help.Render("space/↑ flap · q quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) gameOverView(result domain.FinalResult) string {
	parts := []string{
		m.styles.gameOver.Render("Game Over!"),
		fmt.Sprintf("Score: %d", result.Score),
		fmt.Sprintf("High Score: %d", result.HighScore),
	}
	if result.NewHighScore {
		parts = append(parts, m.styles.record.Render("New high score!"))
	}
	parts = append(parts, m.styles.help.Render("r restart · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func bannerText(achievement domain.Achievement) string {
	text := strings.TrimSpace(achievement.Emoji + " " + achievement.Title)
	if achievement.Message != "" {
		text += ": " + achievement.Message
	}
	return "🏆 " + text
}

// field rasterizes the session onto a columns x rows grid. A cell is an obstacle when its
// center lies on a bar.
func (m Model) field() string {
	tuning := m.session.Tuning()
	cellWidth := tuning.FieldWidth / float64(m.columns)
	cellHeight := tuning.FieldHeight / float64(m.rows)

	grid := make([][]rune, m.rows)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(string(emptyGlyph), m.columns))
	}

	for _, obstacle := range m.session.Obstacles {
		first := int(obstacle.X / cellWidth)
		last := int((obstacle.X + tuning.ObstacleWidth) / cellWidth)
		for col := max(first, 0); col < min(last, m.columns); col++ {
			for row := 0; row < m.rows; row++ {
				y := (float64(row) + 0.5) * cellHeight
				if y < obstacle.GapCenter-obstacle.GapSize/2 || y > obstacle.GapCenter+obstacle.GapSize/2 {
					grid[row][col] = obstacleGlyph
				}
			}
		}
	}

	playerCol := clampIndex(int(tuning.PlayerX/cellWidth), m.columns)
	playerRow := clampIndex(int(m.session.PlayerY/cellHeight), m.rows)
	grid[playerRow][playerCol] = playerGlyph

	rendered := make([]string, m.rows)
	for row, cells := range grid {
		var b strings.Builder
		for _, cell := range cells {
			switch cell {
			case playerGlyph:
				b.WriteString(m.styles.player.Render(string(cell)))
			case obstacleGlyph:
				b.WriteString(m.styles.obstacle.Render(string(cell)))
			default:
				b.WriteRune(cell)
			}
		}
		rendered[row] = b.String()
	}

	return strings.Join(rendered, "\n")
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
