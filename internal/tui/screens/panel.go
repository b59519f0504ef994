package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parkspot/parkspot/internal/tui/common"
)

// PanelSnap is one of the three discrete heights a drag settles into.
type PanelSnap int

const (
	PanelCollapsed PanelSnap = iota
	PanelDefault
	PanelExpanded
)

func (s PanelSnap) String() string {
	switch s {
	case PanelCollapsed:
		return "collapsed"
	case PanelExpanded:
		return "expanded"
	default:
		return "default"
	}
}

const (
	panelMinHeight     = 3
	panelDefaultHeight = 10
	// maxHeight is this fraction of the viewport height.
	panelMaxFraction = 0.8
	// Secondary call-to-action buttons appear above this height. This is a
	// continuous function of the height, independent of the snap state.
	panelSecondaryActionsHeight = 14
)

// Panel messages
type (
	// PanelStateChangedMsg reports the open/closed state after a snap
	// transition. Collapsed counts as closed, the other two as open.
	PanelStateChangedMsg struct {
		Open bool
	}

	// FindParkingRequestedMsg is sent when the find-parking shortcut fires.
	FindParkingRequestedMsg struct{}

	// CreateParkingRequestedMsg is sent when the create-spot shortcut fires.
	CreateParkingRequestedMsg struct{}
)

// actionCard is one entry in the 2-column shortcut grid.
type actionCard struct {
	title       string
	description string
	icon        string
	wired       bool
}

// panelDrag captures an active drag. A nil pointer means idle, so partial
// updates cannot leave the gesture state inconsistent.
type panelDrag struct {
	startY      int
	startHeight int
}

// PanelModel is the draggable bottom sheet.
type PanelModel struct {
	width  int
	height int // viewport height

	panelHeight int
	snap        PanelSnap
	drag        *panelDrag

	search       textinput.Model
	searchActive bool
	cursor       int
	actions      []actionCard
	keys         common.PanelKeyMap
}

// NewPanelModel creates the bottom sheet in its default snap state.
func NewPanelModel() PanelModel {
	search := textinput.New()
	search.Placeholder = "Where to?"
	search.CharLimit = 64
	search.Width = 32
	search.Prompt = "🔍 "

	actions := []actionCard{
		{title: "Find Parking", description: "See available spots nearby", icon: "P", wired: true},
		{title: "Create Spot", description: "Share your own parking spot", icon: "+", wired: true},
		{title: "History", description: "Your past parking sessions", icon: "⏱"},
		{title: "Payment Methods", description: "Manage your cards", icon: "💳"},
	}

	return PanelModel{
		panelHeight: panelDefaultHeight,
		snap:        PanelDefault,
		search:      search,
		actions:     actions,
		keys:        common.DefaultPanelKeyMap(),
	}
}

// Height returns the current continuous panel height in rows.
func (m PanelModel) Height() int { return m.panelHeight }

// Snap returns the last settled snap state.
func (m PanelModel) Snap() PanelSnap { return m.snap }

// IsOpen reports the open/closed state; only collapsed counts as closed.
func (m PanelModel) IsOpen() bool { return m.snap != PanelCollapsed }

// Dragging reports whether a drag gesture is in progress.
func (m PanelModel) Dragging() bool { return m.drag != nil }

// SearchActive reports whether the search input is capturing keystrokes.
func (m PanelModel) SearchActive() bool { return m.searchActive }

// maxHeight is the drag ceiling for the current viewport.
func (m PanelModel) maxHeight() int {
	max := int(float64(m.height) * panelMaxFraction)
	if max < panelMinHeight {
		max = panelMinHeight
	}
	return max
}

// clampHeight bounds a height to [minHeight, maxHeight].
func (m PanelModel) clampHeight(h int) int {
	if h < panelMinHeight {
		return panelMinHeight
	}
	if max := m.maxHeight(); h > max {
		return max
	}
	return h
}

// snapFor partitions a release height into the three snap states.
func (m PanelModel) snapFor(h int) PanelSnap {
	low := (panelMinHeight + panelDefaultHeight) / 2
	high := m.maxHeight() - 3
	if high <= panelDefaultHeight {
		high = panelDefaultHeight + 1
	}

	switch {
	case h < low:
		return PanelCollapsed
	case h > high:
		return PanelExpanded
	default:
		return PanelDefault
	}
}

// heightFor returns the resting height of a snap state.
func (m PanelModel) heightFor(s PanelSnap) int {
	switch s {
	case PanelCollapsed:
		return panelMinHeight
	case PanelExpanded:
		return m.maxHeight()
	default:
		return panelDefaultHeight
	}
}

// Top returns the viewport row of the drag handle.
func (m PanelModel) Top() int { return m.height - m.panelHeight }

// settle moves to a snap state and notifies on open/closed transitions.
func (m PanelModel) settle(s PanelSnap) (PanelModel, tea.Cmd) {
	wasOpen := m.IsOpen()
	m.snap = s
	m.panelHeight = m.heightFor(s)

	if m.IsOpen() == wasOpen {
		return m, nil
	}
	open := m.IsOpen()
	return m, func() tea.Msg {
		return PanelStateChangedMsg{Open: open}
	}
}

// Update handles messages for the bottom sheet.
func (m PanelModel) Update(msg tea.Msg) (PanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panelHeight = m.clampHeight(m.panelHeight)
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.searchActive {
			switch msg.String() {
			case "esc", "enter":
				m.searchActive = false
				m.search.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				return m, cmd
			}
		}

		switch {
		case msg.String() == "/":
			m.searchActive = true
			m.search.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
			m.cursor ^= 1
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.cursor ^= 2
			return m, nil

		case key.Matches(msg, m.keys.Select):
			return m, m.selectAction()
		}
	}

	return m, nil
}

// Expand moves one snap state up (keyboard fallback for the drag gesture).
func (m PanelModel) Expand() (PanelModel, tea.Cmd) {
	switch m.snap {
	case PanelCollapsed:
		return m.settle(PanelDefault)
	default:
		return m.settle(PanelExpanded)
	}
}

// Collapse moves one snap state down.
func (m PanelModel) Collapse() (PanelModel, tea.Cmd) {
	switch m.snap {
	case PanelExpanded:
		return m.settle(PanelDefault)
	default:
		return m.settle(PanelCollapsed)
	}
}

func (m PanelModel) updateMouse(msg tea.MouseMsg) (PanelModel, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y == m.Top() {
			m.drag = &panelDrag{startY: msg.Y, startHeight: m.panelHeight}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag != nil {
			// Dragging up grows the panel.
			m.panelHeight = m.clampHeight(m.drag.startHeight + m.drag.startY - msg.Y)
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		m.drag = nil
		return m.settle(m.snapFor(m.panelHeight))
	}

	return m, nil
}

func (m PanelModel) selectAction() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.actions) || !m.actions[m.cursor].wired {
		return nil
	}

	switch m.cursor {
	case 0:
		return func() tea.Msg { return FindParkingRequestedMsg{} }
	case 1:
		return func() tea.Msg { return CreateParkingRequestedMsg{} }
	}
	return nil
}

// View renders the panel at its current height.
func (m PanelModel) View() string {
	if m.width == 0 {
		return ""
	}

	handle := lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		common.PanelHandleStyle.Render("━━━━━━"))

	lines := []string{handle}

	if m.panelHeight > panelMinHeight {
		lines = append(lines, "  "+m.search.View(), "")
		lines = append(lines, m.renderGrid()...)
	}

	if m.panelHeight > panelSecondaryActionsHeight {
		lines = append(lines,
			"",
			"  "+common.ButtonStyle.Render("Park Now"),
			"  "+common.MutedTextStyle.Render("My Reservations")+"   "+common.MutedTextStyle.Render("Favorites"),
		)
	}

	// The panel occupies exactly panelHeight rows.
	if len(lines) > m.panelHeight {
		lines = lines[:m.panelHeight]
	}
	for len(lines) < m.panelHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m PanelModel) renderGrid() []string {
	var rows []string
	for row := 0; row < 2; row++ {
		var cards []string
		for col := 0; col < 2; col++ {
			i := row*2 + col
			card := m.actions[i]

			style := common.CardStyle
			if i == m.cursor {
				style = common.CardSelectedStyle
			}

			title := card.icon + " " + card.title
			if !card.wired {
				title = common.MutedTextStyle.Render(title)
			}
			cards = append(cards, style.Render(title+"\n"+
				common.MutedTextStyle.Render(card.description)))
		}
		rows = append(rows, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "\n")...)
	}
	return rows
}
