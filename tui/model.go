// Package tui hosts the carousel in a terminal with bubbletea.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teranos/discfolio"
	"github.com/teranos/discfolio/logging"
)

// FrameInterval is the refresh period of the frame tick.
const FrameInterval = time.Second / 60

// WheelDelta is the scroll delta of one wheel notch.
const WheelDelta = 120

// rows reserved below the carousel for the title, thumbnail and help lines
const statusRows = 4

type frameMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Options configures a Model.
type Options struct {
	Owner       string
	Items       []discfolio.DisplayItem
	DiscRadius  float64
	ActiveScale float64
	Logger      *slog.Logger
}

// Model is the bubbletea model driving one Renderer.
type Model struct {
	owner     string
	items     []discfolio.DisplayItem
	renderer  *discfolio.Renderer
	surface   *Surface
	keys      KeyMap
	logger    *slog.Logger
	title     string
	thumbnail string
	playing   string
	quitting  bool
}

// NewModel builds a model sized for an 80x24 terminal until the first
// WindowSizeMsg arrives.
func NewModel(opts Options) *Model {
	m := &Model{
		owner:   opts.Owner,
		items:   append([]discfolio.DisplayItem(nil), opts.Items...),
		surface: NewSurface(80, 24-statusRows),
		keys:    DefaultKeyMap(),
		logger:  logging.NewComponentLogger(opts.Logger, "tui"),
	}

	ropts := []discfolio.Option{discfolio.WithSelectionHandler(m.onSelect)}
	if opts.DiscRadius > 0 {
		ropts = append(ropts, discfolio.WithDiscRadius(opts.DiscRadius))
	}
	if opts.ActiveScale > 0 {
		ropts = append(ropts, discfolio.WithActiveScale(opts.ActiveScale))
	}
	m.renderer = discfolio.NewRenderer(m.surface, ropts...)
	m.renderer.SetItems(m.items)
	return m
}

// onSelect swaps the title and thumbnail lines.
func (m *Model) onSelect(i int) {
	item := m.items[i]
	m.title = item.Title
	m.thumbnail = discfolio.ThumbnailURL(item.ID)
	m.logger.Debug("selection changed", logging.Int("index", i), logging.String("id", item.ID))
}

// Renderer exposes the underlying renderer.
func (m *Model) Renderer() *discfolio.Renderer { return m.renderer }

// Title is the selected video's title, empty before the first frame.
func (m *Model) Title() string { return m.title }

// Playing returns the embed URL of the open player, if any.
func (m *Model) Playing() (string, bool) { return m.playing, m.playing != "" }

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.renderer.AdvanceFrame()
		m.renderer.Renormalize()
		return m, tick()

	case tea.WindowSizeMsg:
		m.surface.Resize(msg.Width, msg.Height-statusRows)
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.renderer.Scroll(WheelDelta)
		case tea.MouseButtonWheelUp:
			m.renderer.Scroll(-WheelDelta)
		case tea.MouseButtonLeft:
			m.play()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Close):
			m.playing = ""
		case m.playing != "":
			// the player panel swallows navigation
		case key.Matches(msg, m.keys.Prev):
			m.step(1)
		case key.Matches(msg, m.keys.Next):
			m.step(-1)
		case key.Matches(msg, m.keys.Play):
			m.play()
		}
	}
	return m, nil
}

// step rotates by whole item slots. A positive step brings the previous item
// to the anchor.
func (m *Model) step(n int) {
	if len(m.items) == 0 {
		return
	}
	m.renderer.ApplyRotationDelta(float64(n) * discfolio.AngleStep(len(m.items)))
}

func (m *Model) play() {
	if item, ok := m.renderer.SelectedItem(); ok {
		m.playing = discfolio.EmbedURL(item.ID)
		m.logger.Info("playing", logging.String("id", item.ID))
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	if m.playing != "" {
		cols, rows := m.surface.Dimensions()
		panel := PlayerStyle.Render(
			TitleStyle.Render(m.title) + "\n\n" +
				LinkStyle.Render(m.playing) + "\n\n" +
				MutedStyle.Render("esc to close"))
		b.WriteString(lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, panel))
	} else {
		b.WriteString(m.surface.Render())
	}
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(StatusStyle.Render(MutedStyle.Render("No videos yet.")))
	} else {
		b.WriteString(StatusStyle.Render(TitleStyle.Render(m.title)))
	}
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(MutedStyle.Render(m.thumbnail)))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) help() string {
	parts := make([]string, 0, 6)
	if m.owner != "" {
		parts = append(parts, strings.ToUpper(m.owner))
	}
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
