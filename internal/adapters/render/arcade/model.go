// Package arcade is the interactive terminal front end of the arcade game. Each tick
// message drives one session tick; the model never advances the session on its own.
package arcade

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/everydaymood/internal/adapters/audio"
	"github.com/bnema/everydaymood/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

const (
	DefaultTickInterval = 30 * time.Millisecond
	DefaultColumns      = 40
	DefaultRows         = 20
	DefaultBannerTicks  = 100
)

// Engine runs sessions and owns the persisted high score and achievements.
type Engine interface {
	Start() *domain.Session
	Flap(session *domain.Session)
	Tick(ctx context.Context, session *domain.Session) []domain.Achievement
	End(ctx context.Context, session *domain.Session) domain.FinalResult
	HighScore(ctx context.Context) int
}

type Sounds interface {
	Play(effect audio.Effect) bool
}

type Options struct {
	TickInterval time.Duration
	Columns      int
	Rows         int
	BannerTicks  int
	Sounds       Sounds
}

type tickMsg struct {
	generation int
}

type Model struct {
	ctx    context.Context
	engine Engine
	sounds Sounds
	styles styles

	interval    time.Duration
	columns     int
	rows        int
	bannerTicks int

	session    *domain.Session
	generation int
	highScore  int
	banner     *domain.Achievement
	bannerLeft int
	result     *domain.FinalResult
	unlocked   []domain.Achievement
}

func New(ctx context.Context, engine Engine, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.BannerTicks <= 0 {
		opts.BannerTicks = DefaultBannerTicks
	}

	return Model{
		ctx:         ctx,
		engine:      engine,
		sounds:      opts.Sounds,
		styles:      newStyles(),
		interval:    opts.TickInterval,
		columns:     opts.Columns,
		rows:        opts.Rows,
		bannerTicks: opts.BannerTicks,
		session:     engine.Start(),
		highScore:   engine.HighScore(ctx),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.generation != m.generation || !m.session.Running() {
			return m, nil
		}
		return m.advance()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	before := m.session.Score
	unlocked := m.engine.Tick(m.ctx, m.session)

	if m.session.Score > before {
		m.play(audio.EffectScore)
	}
	if m.bannerLeft > 0 {
		m.bannerLeft--
		if m.bannerLeft == 0 {
			m.banner = nil
		}
	}
	if len(unlocked) > 0 {
		latest := unlocked[len(unlocked)-1]
		m.banner = &latest
		m.bannerLeft = m.bannerTicks
		m.unlocked = append(m.unlocked, unlocked...)
		m.play(audio.EffectAchievement)
	}

	if !m.session.Running() {
		m.finish()
		m.play(audio.EffectCrash)
		return m, nil
	}

	return m, m.tick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "space", "up", "k", "w":
		if m.session.Running() {
			m.engine.Flap(m.session)
			m.play(audio.EffectFlap)
		}
		return m, nil
	case "r":
		if m.session.Running() {
			return m, nil
		}
		return m.restart()
	case "q", "esc", "ctrl+c":
		if m.result == nil {
			m.finish()
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *Model) finish() {
	result := m.engine.End(m.ctx, m.session)
	m.result = &result
	m.highScore = result.HighScore
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.session = m.engine.Start()
	m.generation++
	m.result = nil
	m.banner = nil
	m.bannerLeft = 0
	return m, m.tick()
}

func (m Model) play(effect audio.Effect) {
	if m.sounds != nil {
		m.sounds.Play(effect)
	}
}

// Result is the outcome of the last finished session, if any.
func (m Model) Result() (domain.FinalResult, bool) {
	if m.result == nil {
		return domain.FinalResult{}, false
	}
	return *m.result, true
}

// Unlocked lists every achievement unlocked while the program ran, in unlock order.
func (m Model) Unlocked() []domain.Achievement {
	return m.unlocked
}

// Run plays until the user quits and returns the final model.
func Run(ctx context.Context, engine Engine, opts Options, programOpts ...tea.ProgramOption) (Model, error) {
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, programOpts...)
	p := tea.NewProgram(New(ctx, engine, opts), programOpts...)

	finalModel, err := p.Run()
	if err != nil {
		return Model{}, err
	}

	model, ok := finalModel.(Model)
	if !ok {
		return Model{}, ErrUnexpectedModel
	}

	return model, nil
}
