// Package tui is the interactive animation screen behind "sortviz animate".
//
// The model never sorts anything itself. Starting a run hands an
// engine.Run to a pacing.Controller inside a tea.Cmd; the controller's
// renderer forwards each frame over a channel and the model redraws from
// it. Stopping cancels the play context, which cancels the run's token.
//
// Thread safety: the model is used from the bubbletea event loop only.
// The playback goroutine touches nothing but the frame channel.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/config"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/pacing"
	"github.com/roach88/sortviz/internal/render"
	"github.com/roach88/sortviz/internal/source"
)

// sizeStep is how much "+" and "-" change the array size.
const sizeStep = 5

// frameMsg carries one frame of the play identified by gen.
type frameMsg struct {
	gen   int
	frame ir.Frame
}

// finishedMsg reports the end of the play identified by gen.
type finishedMsg struct {
	gen     int
	summary pacing.Summary
	err     error
}

// Model is the bubbletea model for the animation screen.
type Model struct {
	cfg    config.Config
	chart  *render.BarChart
	styles styles
	logger *slog.Logger

	data      []int // input of the next run
	values    []int // what is on screen
	highlight []int
	frames    int

	gen     int
	running bool
	cancel  context.CancelFunc
	frameCh <-chan ir.Frame
	last    *pacing.Summary
	err     error
}

type styles struct {
	title  lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	footer lipgloss.Style
}

// New creates the model. cfg must already be valid.
// A nil logger discards run lifecycle logs, which would otherwise corrupt
// the screen.
func New(cfg config.Config, chart *render.BarChart, logger *slog.Logger) (Model, error) {
	data, err := cfg.Values()
	if err != nil {
		return Model{}, err
	}
	if chart == nil {
		chart = render.NewBarChart(nil, render.DefaultHeight)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		cfg:    cfg,
		chart:  chart,
		logger: logger,
		data:   data,
		values: slices.Clone(data),
		styles: styles{
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			status: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			footer: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		if msg.gen != m.gen || !m.running {
			return m, nil
		}
		m.values = msg.frame.Snapshot()
		m.highlight = msg.frame.Highlighted()
		m.frames = int(msg.frame.Seq())
		return m, waitFrame(m.gen, m.frameCh)

	case finishedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.running = false
		m.frameCh = nil
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		summary := msg.summary
		m.last = &summary
		m.err = msg.err
		m.values = summary.Final
		m.highlight = nil
		m.frames = summary.Frames
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case " ", "space", "enter":
		if m.running {
			return m, nil
		}
		return m.start()

	case "s":
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case "r":
		if m.running {
			return m, nil
		}
		return m.regenerate(m.cfg.Seed+1, len(m.data)), nil

	case "a":
		if m.running {
			return m, nil
		}
		m.cfg.Algorithm = nextKind(m.cfg.Algorithm)
		return m, nil

	case "+", "=":
		if m.running {
			return m, nil
		}
		return m.regenerate(m.cfg.Seed, min(len(m.data)+sizeStep, config.MaxSize)), nil

	case "-", "_":
		if m.running {
			return m, nil
		}
		return m.regenerate(m.cfg.Seed, max(len(m.data)-sizeStep, config.MinSize)), nil
	}
	return m, nil
}

// start launches a play of the current algorithm over a copy of data.
func (m Model) start() (tea.Model, tea.Cmd) {
	run, err := engine.Start(m.cfg.Algorithm, array.New(m.data), nil, engine.WithLogger(m.logger))
	if err != nil {
		m.err = err
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan ir.Frame)
	ctrl, err := pacing.New(m.cfg.Delay(), &channelRenderer{ctx: ctx, frames: frames}, pacing.WithLogger(m.logger))
	if err != nil {
		cancel()
		run.Close()
		m.err = err
		return m, nil
	}

	m.gen++
	m.running = true
	m.cancel = cancel
	m.frameCh = frames
	m.last = nil
	m.err = nil
	m.frames = 0
	m.highlight = nil

	gen := m.gen
	play := func() tea.Msg {
		defer close(frames)
		summary, err := ctrl.Play(ctx, run)
		return finishedMsg{gen: gen, summary: summary, err: err}
	}
	return m, tea.Batch(play, waitFrame(gen, frames))
}

// regenerate replaces the data with n fresh random values from seed.
func (m Model) regenerate(seed uint64, n int) Model {
	data, err := source.Random(seed, n, m.cfg.Min, m.cfg.Max)
	if err != nil {
		m.err = err
		return m
	}
	m.cfg.Seed = seed
	m.cfg.Size = n
	m.cfg.Input = nil
	m.data = data
	m.values = slices.Clone(data)
	m.highlight = nil
	m.frames = 0
	m.last = nil
	m.err = nil
	return m
}

// waitFrame delivers the next frame. It returns nil once the play closes
// the channel.
func waitFrame(gen int, frames <-chan ir.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg{gen: gen, frame: f}
	}
}

func nextKind(k ir.Kind) ir.Kind {
	i := slices.Index(ir.Kinds, k)
	return ir.Kinds[(i+1)%len(ir.Kinds)]
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("sortviz · " + m.cfg.Algorithm.Title()))
	b.WriteString("\n\n")

	// A finished play, stopped or not, is drawn in the done colour.
	if m.last != nil && m.err == nil {
		b.WriteString(m.chart.Done(m.values))
	} else {
		b.WriteString(m.chart.View(m.values, m.highlight))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.status.Render(m.status()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.err.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	keys := "space start · s stop · r new data · a algorithm · +/- size · q quit"
	if m.running {
		keys = "s stop · q quit"
	}
	b.WriteString(m.styles.footer.Render(keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) status() string {
	switch {
	case m.running:
		return fmt.Sprintf("running · frame %d · n=%d · %d ms", m.frames, len(m.data), m.cfg.DelayMS)
	case m.last != nil:
		return fmt.Sprintf("%s · %d frames · n=%d", m.last.Outcome, m.last.Frames, len(m.data))
	default:
		return fmt.Sprintf("ready · n=%d · seed %d · %d ms", len(m.data), m.cfg.Seed, m.cfg.DelayMS)
	}
}

// Running reports whether a play is in flight.
func (m Model) Running() bool { return m.running }

// Algorithm returns the algorithm the next start will run.
func (m Model) Algorithm() ir.Kind { return m.cfg.Algorithm }

// Data returns a copy of the next run's input.
func (m Model) Data() []int { return slices.Clone(m.data) }

// Last returns the summary of the most recent play, or nil.
func (m Model) Last() *pacing.Summary { return m.last }
