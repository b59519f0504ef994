package screens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parkspot/parkspot/internal/geo"
	"github.com/parkspot/parkspot/internal/models"
	"github.com/parkspot/parkspot/internal/tui/common"
)

// Spot list messages
type (
	// SpotChosenMsg reports the entry picked from the list.
	SpotChosenMsg struct {
		Spot models.ParkingSpot
	}

	// SpotListClosedMsg reports that the list was dismissed.
	SpotListClosedMsg struct{}
)

// visibleListRows bounds the scrolled window of entries.
const visibleListRows = 5

// SpotListModel is the modal list of nearby spots, closest first.
type SpotListModel struct {
	spots  []models.ParkingSpot
	origin models.Coordinates
	cursor int
	offset int
	keys   common.ListKeyMap
}

// NewSpotListModel builds the list sorted by distance from the origin.
func NewSpotListModel(spots []models.ParkingSpot, origin models.Coordinates) SpotListModel {
	sorted := make([]models.ParkingSpot, len(spots))
	copy(sorted, spots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return geo.DistanceKm(origin, sorted[i].Coordinates) < geo.DistanceKm(origin, sorted[j].Coordinates)
	})

	return SpotListModel{
		spots:  sorted,
		origin: origin,
		keys:   common.DefaultListKeyMap(),
	}
}

// Spots returns the entries in display order.
func (m SpotListModel) Spots() []models.ParkingSpot { return m.spots }

// Update handles list navigation.
func (m SpotListModel) Update(msg tea.Msg) (SpotListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.spots)-1 {
			m.cursor++
			if m.cursor >= m.offset+visibleListRows {
				m.offset = m.cursor - visibleListRows + 1
			}
		}

	case key.Matches(keyMsg, m.keys.Select):
		if len(m.spots) == 0 {
			return m, nil
		}
		spot := m.spots[m.cursor]
		return m, func() tea.Msg { return SpotChosenMsg{Spot: spot} }

	case key.Matches(keyMsg, m.keys.Close):
		return m, func() tea.Msg { return SpotListClosedMsg{} }
	}

	return m, nil
}

// View renders the modal.
func (m SpotListModel) View() string {
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render("Nearby Parking"))
	b.WriteByte('\n')

	if len(m.spots) == 0 {
		b.WriteString(common.MutedTextStyle.Render("No parking spots around here yet."))
		b.WriteByte('\n')
		b.WriteString(common.FormatHelp("esc", "close"))
		return common.BoxStyle.Render(b.String())
	}

	end := m.offset + visibleListRows
	if end > len(m.spots) {
		end = len(m.spots)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderEntry(i))
		b.WriteByte('\n')
	}

	b.WriteString(common.MutedTextStyle.Render(
		fmt.Sprintf("%d/%d", m.cursor+1, len(m.spots))))
	b.WriteString("  ")
	b.WriteString(common.FormatHelp("↑/↓", "move"))
	b.WriteString("  ")
	b.WriteString(common.FormatHelp("enter", "show on map"))
	b.WriteString("  ")
	b.WriteString(common.FormatHelp("esc", "close"))

	return common.BoxStyle.Render(b.String())
}

func (m SpotListModel) renderEntry(i int) string {
	spot := m.spots[i]

	badge := common.AvailableBadge.Render("available")
	if !spot.Available {
		badge = common.TakenBadge.Render("taken")
	}

	header := spot.Title + "  " + spot.FormattedPrice() + "  " + badge
	if i == m.cursor {
		header = common.SelectedStyle.Render(spot.Title) + "  " + spot.FormattedPrice() + "  " + badge
	}

	km := geo.DistanceKm(m.origin, spot.Coordinates)
	walk := geo.WalkingMinutes(m.origin, spot.Coordinates)
	meta := fmt.Sprintf("%.1f km · %d min walk · %s", km, walk, geo.LocationCode(spot.Coordinates))

	lines := []string{
		header,
		common.MutedTextStyle.Render(spot.Address),
	}
	if spot.Description != "" {
		lines = append(lines, common.MutedTextStyle.Render(spot.Description))
	}
	lines = append(lines, common.MutedTextStyle.Render(meta))
	return strings.Join(lines, "\n")
}
