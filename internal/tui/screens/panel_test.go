package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedPanel(t *testing.T) PanelModel {
	t.Helper()
	m := NewPanelModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestPanel_InitialState(t *testing.T) {
	m := sizedPanel(t)

	assert.Equal(t, PanelDefault, m.Snap())
	assert.Equal(t, panelDefaultHeight, m.Height())
	assert.True(t, m.IsOpen())
	assert.False(t, m.Dragging())
}

func TestPanel_DragClampsToMaxHeight(t *testing.T) {
	m := sizedPanel(t)
	top := m.Top()

	m, _ = m.Update(mouse(40, top, tea.MouseActionPress))
	require.True(t, m.Dragging())

	// Way past the top of the screen.
	m, _ = m.Update(mouse(40, -20, tea.MouseActionMotion))
	assert.Equal(t, m.maxHeight(), m.Height())

	m, cmd := m.Update(mouse(40, -20, tea.MouseActionRelease))
	assert.False(t, m.Dragging())
	assert.Equal(t, PanelExpanded, m.Snap())
	assert.Nil(t, cmd, "default to expanded is not an open/closed transition")
}

func TestPanel_DragClampsToMinHeight(t *testing.T) {
	m := sizedPanel(t)
	top := m.Top()

	m, _ = m.Update(mouse(40, top, tea.MouseActionPress))
	m, _ = m.Update(mouse(40, 100, tea.MouseActionMotion))
	assert.Equal(t, panelMinHeight, m.Height())

	m, cmd := m.Update(mouse(40, 100, tea.MouseActionRelease))
	assert.Equal(t, PanelCollapsed, m.Snap())

	require.NotNil(t, cmd, "collapsing closes the panel")
	msg, ok := cmd().(PanelStateChangedMsg)
	require.True(t, ok)
	assert.False(t, msg.Open)
}

func TestPanel_ReleaseNearDefaultSnapsToDefault(t *testing.T) {
	m := sizedPanel(t)
	top := m.Top()

	m, _ = m.Update(mouse(40, top, tea.MouseActionPress))
	m, _ = m.Update(mouse(40, top-2, tea.MouseActionMotion))
	assert.Equal(t, panelDefaultHeight+2, m.Height())

	m, cmd := m.Update(mouse(40, top-2, tea.MouseActionRelease))
	assert.Equal(t, PanelDefault, m.Snap())
	assert.Equal(t, panelDefaultHeight, m.Height())
	assert.Nil(t, cmd)
}

func TestPanel_PressOffHandleDoesNotStartDrag(t *testing.T) {
	m := sizedPanel(t)

	m, _ = m.Update(mouse(40, m.Top()+3, tea.MouseActionPress))
	assert.False(t, m.Dragging())

	m, _ = m.Update(mouse(40, 5, tea.MouseActionMotion))
	assert.Equal(t, panelDefaultHeight, m.Height())

	m, cmd := m.Update(mouse(40, 5, tea.MouseActionRelease))
	assert.Nil(t, cmd)
	assert.Equal(t, PanelDefault, m.Snap())
}

func TestPanel_OpenClosedNotificationOnlyOnTransition(t *testing.T) {
	m := sizedPanel(t)

	m, cmd := m.Collapse()
	require.NotNil(t, cmd)
	assert.Equal(t, PanelStateChangedMsg{Open: false}, cmd())

	// Already collapsed, no transition.
	m, cmd = m.Collapse()
	assert.Nil(t, cmd)
	assert.Equal(t, PanelCollapsed, m.Snap())

	m, cmd = m.Expand()
	require.NotNil(t, cmd)
	assert.Equal(t, PanelStateChangedMsg{Open: true}, cmd())
	assert.Equal(t, PanelDefault, m.Snap())

	// Default to expanded stays open.
	m, cmd = m.Expand()
	assert.Nil(t, cmd)
	assert.Equal(t, PanelExpanded, m.Snap())
}

func TestPanel_SecondaryActionsFollowHeight(t *testing.T) {
	m := sizedPanel(t)

	assert.NotContains(t, m.View(), "Park Now")

	m, _ = m.Update(mouse(40, m.Top(), tea.MouseActionPress))
	m, _ = m.Update(mouse(40, m.height-panelSecondaryActionsHeight-2, tea.MouseActionMotion))

	// Mid-drag, before any snap settles.
	require.True(t, m.Dragging())
	assert.Contains(t, m.View(), "Park Now")
}

func TestPanel_ActionGridSelection(t *testing.T) {
	m := sizedPanel(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, FindParkingRequestedMsg{}, cmd())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CreateParkingRequestedMsg{}, cmd())

	// The bottom row actions are presentational only.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestPanel_SearchCapturesKeys(t *testing.T) {
	m := sizedPanel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, m.searchActive)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Equal(t, "f", m.search.Value())
	if cmd != nil {
		assert.NotEqual(t, FindParkingRequestedMsg{}, cmd())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searchActive)
}

func TestPanel_CollapsedViewIsHandleOnly(t *testing.T) {
	m := sizedPanel(t)
	m, _ = m.Collapse()

	view := m.View()
	assert.Contains(t, view, "━")
	assert.NotContains(t, view, "Find Parking")
}
