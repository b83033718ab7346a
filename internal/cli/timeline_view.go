package cli

import (
	"fmt"

	"github.com/alexanderramin/leadtime/internal/cli/formatter"
	"github.com/alexanderramin/leadtime/internal/contract"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColsPerDay = 0.125
	maxColsPerDay = 8
)

type timelineKeyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Fit     key.Binding
	Quit    key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Fit:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit width")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// timelineModel shows a rendered timeline in a scrollable viewport and
// re-renders it at a new scale on zoom.
type timelineModel struct {
	resp       *contract.ScheduleResponse
	colsPerDay float64
	width      int
	vp         viewport.Model
	keys       timelineKeyMap
	ready      bool
}

func newTimelineModel(resp *contract.ScheduleResponse, colsPerDay float64) *timelineModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = timelineViewportKeyMap()
	return &timelineModel{
		resp:       resp,
		colsPerDay: colsPerDay,
		vp:         vp,
		keys:       defaultTimelineKeys(),
	}
}

// timelineViewportKeyMap leaves letter keys free for zoom and quit.
func timelineViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m *timelineModel) Init() tea.Cmd { return nil }

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-1, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ZoomIn):
			m.colsPerDay = min(m.colsPerDay*2, maxColsPerDay)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.ZoomOut):
			m.colsPerDay = max(m.colsPerDay/2, minColsPerDay)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Fit):
			m.colsPerDay = fitColsPerDay(m.resp, m.width)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *timelineModel) View() string {
	if !m.ready {
		return "Loading timeline..."
	}
	help := formatter.Dim(fmt.Sprintf("%s  %s  %s  %s  ↑/↓ scroll  %.3g cols/day",
		helpText(m.keys.ZoomIn), helpText(m.keys.ZoomOut), helpText(m.keys.Fit), helpText(m.keys.Quit), m.colsPerDay))
	return m.vp.View() + "\n" + help + "  " + scrollIndicator(m.vp)
}

func (m *timelineModel) refresh() {
	m.vp.SetContent(formatter.FormatTimeline(m.resp, m.colsPerDay))
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// fitColsPerDay picks the scale at which the whole window fits width.
func fitColsPerDay(resp *contract.ScheduleResponse, width int) float64 {
	if resp == nil || resp.Timeline == nil || resp.Timeline.Days <= 0 || width <= 0 {
		return 1
	}
	labelWidth := 0
	for _, r := range resp.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.PartCode)+2)
	}
	usable := width - labelWidth - 2
	if usable <= 0 {
		return minColsPerDay
	}
	return min(max(float64(usable)/float64(resp.Timeline.Days), minColsPerDay), maxColsPerDay)
}
