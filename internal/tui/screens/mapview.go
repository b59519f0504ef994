package screens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/parkspot/parkspot/internal/geo"
	"github.com/parkspot/parkspot/internal/mapwidget"
	"github.com/parkspot/parkspot/internal/models"
	"github.com/parkspot/parkspot/internal/tui/common"
)

// mapState tracks the widget lifecycle.
type mapState int

const (
	mapLoading mapState = iota
	mapReady
	mapUnavailable
)

const (
	// A widget that reports not-ready is retried this many times before the
	// screen gives up and shows a static placeholder.
	maxWidgetInitAttempts = 5
	widgetRetryInterval   = 200 * time.Millisecond

	defaultZoom = 15

	// A plain click selects the nearest spot marker within this distance.
	markerPickRangeKm = 0.25
)

// WidgetFactory builds a fresh widget instance for each rebuild.
type WidgetFactory func() mapwidget.Widget

// Map screen messages
type (
	// widgetRetryMsg re-attempts widget init. The generation guards against
	// a retry scheduled for an instance that has since been rebuilt.
	widgetRetryMsg struct {
		generation int
	}

	// MapClickedMsg reports a placement pick with its synthesized address.
	MapClickedMsg struct {
		Coordinates models.Coordinates
		Address     string
	}

	// MapUnavailableMsg is sent once when init retries are exhausted.
	MapUnavailableMsg struct{}
)

// SynthesizeAddress builds a human-readable address from a picked position.
// Reverse geocoding is out of reach here, so the coordinates stand in.
func SynthesizeAddress(c models.Coordinates) string {
	return fmt.Sprintf("Parking spot at %.4f, %.4f", c.Lat(), c.Lng())
}

// MapModel owns the map widget lifecycle. Any change to the center, the
// spots, the viewport or the placement mode rebuilds the instance from
// scratch through the factory, so exactly one instance is ever live.
type MapModel struct {
	factory WidgetFactory
	widget  mapwidget.Widget
	log     *logrus.Logger

	center models.Coordinates
	zoom   int
	width  int
	height int

	user      *models.UserLocation
	spots     []models.ParkingSpot
	placement bool

	selected *models.ParkingSpot
	spin     spinner.Model

	state      mapState
	attempts   int
	generation int
}

// NewMapModel creates a map screen that builds widgets through the factory.
func NewMapModel(factory WidgetFactory, log *logrus.Logger) MapModel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return MapModel{
		factory: factory,
		log:     log,
		zoom:    defaultZoom,
		center:  models.FallbackCoordinates,
		state:   mapLoading,
		spin:    spin,
	}
}

// WithZoom overrides the default zoom level. Values below one are ignored.
func (m MapModel) WithZoom(zoom int) MapModel {
	if zoom > 0 {
		m.zoom = zoom
	}
	return m
}

// State accessors for the orchestrator.
func (m MapModel) Ready() bool       { return m.state == mapReady }
func (m MapModel) Unavailable() bool { return m.state == mapUnavailable }
func (m MapModel) Center() models.Coordinates {
	return m.center
}

// SetRegion assigns the viewport area reserved for the map.
func (m MapModel) SetRegion(width, height int) (MapModel, tea.Cmd) {
	if width == m.width && height == m.height {
		return m, nil
	}
	m.width = width
	m.height = height
	return m.rebuild()
}

// SetCenter recenters the map.
func (m MapModel) SetCenter(c models.Coordinates) (MapModel, tea.Cmd) {
	m.center = c
	return m.rebuild()
}

// SetUserLocation places the user marker and recenters on it.
func (m MapModel) SetUserLocation(loc models.UserLocation) (MapModel, tea.Cmd) {
	m.user = &loc
	m.center = loc.Coordinates
	return m.rebuild()
}

// SetSpots replaces the spot markers.
func (m MapModel) SetSpots(spots []models.ParkingSpot) (MapModel, tea.Cmd) {
	m.spots = spots
	m.selected = nil
	return m.rebuild()
}

// SetPlacementMode arms or disarms position picking.
func (m MapModel) SetPlacementMode(on bool) (MapModel, tea.Cmd) {
	if m.placement == on {
		return m, nil
	}
	m.placement = on
	m.selected = nil
	return m.rebuild()
}

// PlacementMode reports whether a click picks a position.
func (m MapModel) PlacementMode() bool { return m.placement }

// rebuild destroys the live instance and builds a fresh one.
func (m MapModel) rebuild() (MapModel, tea.Cmd) {
	m.generation++
	m.attempts = 0
	if m.widget != nil {
		m.widget.Destroy()
	}
	m.widget = m.factory()
	return m.tryInit()
}

func (m MapModel) tryInit() (MapModel, tea.Cmd) {
	err := m.widget.Init(mapwidget.Config{
		Center: m.center,
		Zoom:   m.zoom,
		Width:  m.width,
		Height: m.height,
	})
	if err == nil {
		m.state = mapReady
		m.addMarkers()
		return m, nil
	}

	if !errors.Is(err, mapwidget.ErrNotReady) {
		m.log.WithError(err).Error("map widget failed to initialize")
		m.state = mapUnavailable
		return m, func() tea.Msg { return MapUnavailableMsg{} }
	}

	m.attempts++
	if m.attempts >= maxWidgetInitAttempts {
		m.log.Warn("map widget still not ready, giving up")
		m.state = mapUnavailable
		return m, func() tea.Msg { return MapUnavailableMsg{} }
	}

	m.state = mapLoading
	gen := m.generation
	retry := tea.Tick(widgetRetryInterval, func(time.Time) tea.Msg {
		return widgetRetryMsg{generation: gen}
	})
	return m, tea.Batch(retry, m.spin.Tick)
}

func (m MapModel) addMarkers() {
	if m.user != nil {
		m.widget.AddMarker(mapwidget.Marker{
			Coordinates: m.user.Coordinates,
			Kind:        mapwidget.MarkerUser,
			Label:       "You",
		})
	}
	for _, spot := range m.spots {
		kind := mapwidget.MarkerSpotAvailable
		if !spot.Available {
			kind = mapwidget.MarkerSpotTaken
		}
		m.widget.AddMarker(mapwidget.Marker{
			Coordinates: spot.Coordinates,
			Kind:        kind,
			Label:       spot.Title,
		})
	}
}

// Update handles the retry schedule and the loading spinner.
func (m MapModel) Update(msg tea.Msg) (MapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case widgetRetryMsg:
		if msg.generation != m.generation || m.state != mapLoading {
			return m, nil
		}
		return m.tryInit()

	case spinner.TickMsg:
		if m.state != mapLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Click delivers a pointer event in map-local cell coordinates. In placement
// mode it yields a MapClickedMsg; otherwise it selects the nearest spot
// marker within range, or clears the selection.
func (m MapModel) Click(x, y int) (MapModel, tea.Cmd) {
	if m.state != mapReady {
		return m, nil
	}

	var picked *models.Coordinates
	m.widget.OnClick(func(c models.Coordinates) { picked = &c })
	m.widget.Click(x, y)
	if picked == nil {
		return m, nil
	}

	if m.placement {
		c := *picked
		return m, func() tea.Msg {
			return MapClickedMsg{Coordinates: c, Address: SynthesizeAddress(c)}
		}
	}

	m.selected = nil
	best := markerPickRangeKm
	for i := range m.spots {
		if d := geo.DistanceKm(*picked, m.spots[i].Coordinates); d < best {
			best = d
			m.selected = &m.spots[i]
		}
	}
	return m, nil
}

// Selected returns the spot picked by the last plain click, if any.
func (m MapModel) Selected() *models.ParkingSpot { return m.selected }

// View renders the map region.
func (m MapModel) View() string {
	switch m.state {
	case mapUnavailable:
		return m.placeholderView()
	case mapLoading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spin.View()+common.MutedTextStyle.Render("Loading map..."))
	}

	view := m.widget.View()
	if m.selected == nil {
		return view
	}

	// The popup replaces the top row of the map.
	lines := strings.SplitN(view, "\n", 2)
	parts := []string{m.selected.Title}
	if m.selected.Description != "" {
		parts = append(parts, m.selected.Description)
	}
	parts = append(parts, m.selected.FormattedPrice(), availabilityBadge(*m.selected), m.selected.Address)
	lines[0] = common.NoticeStyle.Render(strings.Join(parts, " · "))
	return strings.Join(lines, "\n")
}

func (m MapModel) placeholderView() string {
	msg := common.ErrorTextStyle.Render("Map unavailable") + "\n" +
		common.MutedTextStyle.Render("Press f to browse spots as a list")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func availabilityBadge(s models.ParkingSpot) string {
	if s.Available {
		return common.AvailableBadge.Render("available")
	}
	return common.TakenBadge.Render("taken")
}
