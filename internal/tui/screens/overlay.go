package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parkspot/parkspot/internal/tui/common"
)

// Overlay messages
type (
	// RecenterRequestedMsg asks for a fresh device location lookup.
	RecenterRequestedMsg struct{}

	// BannerDismissedMsg reports that the campaign banner was closed, so the
	// dismissal can be persisted for the rest of the session.
	BannerDismissedMsg struct{}
)

// overlayTarget identifies which chrome control a click landed on.
type overlayTarget int

const (
	targetNone overlayTarget = iota
	targetMenu
	targetBanner
	targetRecenter
)

// OverlayModel renders the chrome above the map: the menu button, the
// campaign banner and the recenter control, plus the placement hint while
// a position pick is armed.
type OverlayModel struct {
	width int

	banner        string
	bannerVisible bool
	menuOpen      bool
	placementHint bool
}

var menuEntries = []string{"Profile", "My Spots", "Settings", "About"}

// NewOverlayModel creates the chrome with the given campaign banner text.
// An empty text disables the banner entirely.
func NewOverlayModel(banner string) OverlayModel {
	return OverlayModel{
		banner:        banner,
		bannerVisible: banner != "",
	}
}

// SetWidth assigns the viewport width.
func (m OverlayModel) SetWidth(width int) OverlayModel {
	m.width = width
	return m
}

// BannerVisible reports whether the campaign banner is showing.
func (m OverlayModel) BannerVisible() bool { return m.bannerVisible }

// MenuOpen reports whether the dropdown menu is showing.
func (m OverlayModel) MenuOpen() bool { return m.menuOpen }

// DismissBanner hides the banner and reports the dismissal.
func (m OverlayModel) DismissBanner() (OverlayModel, tea.Cmd) {
	if !m.bannerVisible {
		return m, nil
	}
	m.bannerVisible = false
	return m, func() tea.Msg { return BannerDismissedMsg{} }
}

// ToggleMenu opens or closes the dropdown menu.
func (m OverlayModel) ToggleMenu() OverlayModel {
	m.menuOpen = !m.menuOpen
	return m
}

// SetPlacementHint shows or hides the pick-a-position hint.
func (m OverlayModel) SetPlacementHint(on bool) OverlayModel {
	m.placementHint = on
	return m
}

// Height returns the number of viewport rows the chrome occupies.
func (m OverlayModel) Height() int {
	h := 1
	if m.menuOpen {
		h += len(menuEntries)
	}
	if m.placementHint {
		h++
	}
	return h
}

// Click routes a pointer event on the chrome rows.
func (m OverlayModel) Click(x, y int) (OverlayModel, tea.Cmd) {
	if y != 0 {
		// Clicks on the dropdown or hint rows do nothing; the menu entries
		// have no behavior behind them yet.
		return m, nil
	}

	switch m.hitTest(x) {
	case targetMenu:
		return m.ToggleMenu(), nil
	case targetBanner:
		return m.DismissBanner()
	case targetRecenter:
		return m, func() tea.Msg { return RecenterRequestedMsg{} }
	}
	return m, nil
}

// hitTest maps an x position on the control row to a chrome control.
func (m OverlayModel) hitTest(x int) overlayTarget {
	menuW := lipgloss.Width(m.menuButton())
	recenterW := lipgloss.Width(m.recenterButton())

	switch {
	case x < menuW:
		return targetMenu
	case x >= m.width-recenterW:
		return targetRecenter
	case m.bannerVisible:
		return targetBanner
	}
	return targetNone
}

func (m OverlayModel) menuButton() string {
	return common.ChromeButtonStyle.Render("☰ Menu")
}

func (m OverlayModel) recenterButton() string {
	return common.ChromeButtonStyle.Render("⌖ Recenter")
}

// View renders the chrome rows.
func (m OverlayModel) View() string {
	if m.width == 0 {
		return ""
	}

	menu := m.menuButton()
	recenter := m.recenterButton()

	middle := ""
	if m.bannerVisible {
		middle = common.BannerStyle.Render(m.banner + "  ✕")
	}
	gap := m.width - lipgloss.Width(menu) - lipgloss.Width(recenter) - lipgloss.Width(middle)
	if gap < 0 {
		// Not enough room for the banner, drop it for this frame.
		middle = ""
		gap = m.width - lipgloss.Width(menu) - lipgloss.Width(recenter)
		if gap < 0 {
			gap = 0
		}
	}
	left := gap / 2
	row := menu + strings.Repeat(" ", left) + middle + strings.Repeat(" ", gap-left) + recenter

	lines := []string{row}
	if m.menuOpen {
		for _, entry := range menuEntries {
			lines = append(lines, common.ChromeButtonStyle.Render(entry))
		}
	}
	if m.placementHint {
		hint := common.NoticeStyle.Render("Click the map to choose the spot position (esc cancels)")
		lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hint))
	}
	return strings.Join(lines, "\n")
}
