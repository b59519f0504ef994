package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/parkspot/parkspot/internal/api"
	"github.com/parkspot/parkspot/internal/location"
	"github.com/parkspot/parkspot/internal/mapwidget"
	"github.com/parkspot/parkspot/internal/models"
	"github.com/parkspot/parkspot/internal/session"
	"github.com/parkspot/parkspot/internal/tui/common"
	"github.com/parkspot/parkspot/internal/tui/screens"
)

const (
	requestTimeout = 30 * time.Second
	noticeLifetime = 4 * time.Second

	// Radius passed to the nearby query. The backend filters by availability
	// only for now, so this bounds nothing yet.
	nearbyRadiusKm = 5.0

	bannerDismissedKey = "banner_dismissed"
)

// modal identifies which surface sits on top of the map, if any.
type modal int

const (
	modalNone modal = iota
	modalList
	modalForm
	modalHelp
)

// Internal messages
type (
	locationResolvedMsg struct {
		loc models.UserLocation
	}

	// spotsLoadedMsg carries the fetch sequence number it was issued with.
	// A response from a superseded fetch is dropped instead of overwriting
	// newer data.
	spotsLoadedMsg struct {
		seq   int
		spots []models.ParkingSpot
	}

	// nearbySpotsMsg carries its own fetch sequence number, same scheme as
	// spotsLoadedMsg.
	nearbySpotsMsg struct {
		seq   int
		spots []models.ParkingSpot
	}

	spotCreatedMsg struct {
		spot *models.ParkingSpot
		err  error
	}

	noticeExpiredMsg struct {
		id int
	}
)

// notice is a transient status line shown over the map.
type notice struct {
	id   int
	text string
}

// App is the root model wiring the map, the bottom sheet, the chrome and
// the modal surfaces together.
type App struct {
	repo     api.SpotRepository
	resolver *location.Resolver
	store    *session.Store
	log      *logrus.Logger

	overlay  screens.OverlayModel
	panel    screens.PanelModel
	mapView  screens.MapModel
	spotList screens.SpotListModel
	form     screens.CreateSpotModel
	modal    modal

	userLoc *models.UserLocation
	spots   []models.ParkingSpot

	fetchSeq  int
	nearbySeq int
	notices   []notice
	noticeID  int

	width  int
	height int

	keys common.ScreenKeyMap
}

// NewApp creates the root model. A nil widget factory defaults to the
// terminal renderer.
func NewApp(repo api.SpotRepository, resolver *location.Resolver, store *session.Store, banner string, factory screens.WidgetFactory, log *logrus.Logger) App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if factory == nil {
		factory = func() mapwidget.Widget { return mapwidget.NewTerminalMap() }
	}

	var dismissed bool
	if ok, err := store.Get(bannerDismissedKey, &dismissed); err == nil && ok && dismissed {
		banner = ""
	}

	return App{
		repo:     repo,
		resolver: resolver,
		store:    store,
		log:      log,
		overlay:  screens.NewOverlayModel(banner),
		panel:    screens.NewPanelModel(),
		mapView:  screens.NewMapModel(factory, log),
		keys:     common.DefaultScreenKeyMap(),
	}
}

// WithMapZoom overrides the map zoom level.
func (a App) WithMapZoom(zoom int) App {
	a.mapView = a.mapView.WithZoom(zoom)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.resolveLocationCmd(), a.fetchSpotsCmd(a.fetchSeq))
}

func (a App) resolveLocationCmd() tea.Cmd {
	resolver := a.resolver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return locationResolvedMsg{loc: resolver.Resolve(ctx)}
	}
}

func (a App) fetchSpotsCmd(seq int) tea.Cmd {
	repo := a.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return spotsLoadedMsg{seq: seq, spots: repo.ListAll(ctx)}
	}
}

func (a App) fetchNearbyCmd(origin models.Coordinates, seq int) tea.Cmd {
	repo := a.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return nearbySpotsMsg{seq: seq, spots: repo.ListNear(ctx, origin.Lat(), origin.Lng(), nearbyRadiusKm)}
	}
}

// findParking issues a nearby fetch, retiring any fetch still in flight.
func (a App) findParking() (tea.Model, tea.Cmd) {
	a.nearbySeq++
	return a, a.fetchNearbyCmd(a.origin(), a.nearbySeq)
}

func (a App) createSpotCmd(req models.CreateParkingSpotRequest) tea.Cmd {
	repo := a.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		spot, err := repo.Create(ctx, req)
		return spotCreatedMsg{spot: spot, err: err}
	}
}

// pushNotice queues a transient status line and its expiry.
func (a *App) pushNotice(text string) tea.Cmd {
	a.noticeID++
	id := a.noticeID
	a.notices = append(a.notices, notice{id: id, text: text})
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// mapRegionHeight is the viewport area left between the chrome and panel.
func (a App) mapRegionHeight() int {
	h := a.height - a.overlay.Height() - a.panel.Height()
	if h < 0 {
		h = 0
	}
	return h
}

// syncMapRegion resizes the map after any layout change.
func (a *App) syncMapRegion() tea.Cmd {
	if a.width == 0 || a.height == 0 {
		return nil
	}
	var cmd tea.Cmd
	a.mapView, cmd = a.mapView.SetRegion(a.width, a.mapRegionHeight())
	return cmd
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.overlay = a.overlay.SetWidth(msg.Width)
		var panelCmd tea.Cmd
		a.panel, panelCmd = a.panel.Update(msg)
		return a, tea.Batch(panelCmd, a.syncMapRegion())

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case locationResolvedMsg:
		a.userLoc = &msg.loc
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.mapView, cmd = a.mapView.SetUserLocation(msg.loc)
		cmds = append(cmds, cmd)
		if msg.loc.Source == models.LocationSourceFallback {
			cmds = append(cmds, a.pushNotice("Location unavailable, showing the default area"))
		}
		return a, tea.Batch(cmds...)

	case spotsLoadedMsg:
		if msg.seq != a.fetchSeq {
			a.log.WithFields(logrus.Fields{"seq": msg.seq, "current": a.fetchSeq}).
				Debug("dropping stale spots response")
			return a, nil
		}
		a.spots = msg.spots
		var cmd tea.Cmd
		a.mapView, cmd = a.mapView.SetSpots(msg.spots)
		return a, cmd

	case nearbySpotsMsg:
		// A retired response never opens the list, and a live one does not
		// steal the screen from a form mid-entry.
		if msg.seq != a.nearbySeq || a.modal == modalForm {
			a.log.WithFields(logrus.Fields{"seq": msg.seq, "current": a.nearbySeq}).
				Debug("dropping nearby spots response")
			return a, nil
		}
		a.spotList = screens.NewSpotListModel(msg.spots, a.origin())
		a.modal = modalList
		return a, nil

	case spotCreatedMsg:
		return a.updateSpotCreated(msg)

	case noticeExpiredMsg:
		for i := range a.notices {
			if a.notices[i].id == msg.id {
				a.notices = append(a.notices[:i], a.notices[i+1:]...)
				break
			}
		}
		return a, nil

	case screens.MapUnavailableMsg:
		return a, a.pushNotice("Map unavailable, use f to browse spots")

	case screens.MapClickedMsg:
		return a.updateMapClicked(msg)

	case screens.PanelStateChangedMsg:
		return a, a.syncMapRegion()

	case screens.FindParkingRequestedMsg:
		return a.findParking()

	case screens.CreateParkingRequestedMsg:
		return a.startPlacement()

	case screens.RecenterRequestedMsg:
		a.resolver.Invalidate()
		return a, a.resolveLocationCmd()

	case screens.BannerDismissedMsg:
		if err := a.store.Set(bannerDismissedKey, true); err != nil {
			a.log.WithError(err).Warn("failed to persist banner dismissal")
		}
		return a, nil

	case screens.SpotChosenMsg:
		a.modal = modalNone
		var cmd tea.Cmd
		a.mapView, cmd = a.mapView.SetCenter(msg.Spot.Coordinates)
		noticeCmd := a.pushNotice(msg.Spot.Title + " · " + msg.Spot.Address + " · " + msg.Spot.FormattedPrice())
		return a, tea.Batch(cmd, noticeCmd)

	case screens.SpotListClosedMsg:
		a.modal = modalNone
		return a, nil

	case screens.SpotFormSubmittedMsg:
		return a, a.createSpotCmd(msg.Request)

	case screens.SpotFormClosedMsg:
		a.modal = modalNone
		return a, nil
	}

	// Widget retry ticks and other screen-internal messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.mapView, cmd = a.mapView.Update(msg)
	cmds = append(cmds, cmd)
	if a.modal == modalForm {
		a.form, cmd = a.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// origin is the position used for distance math and nearby queries.
func (a App) origin() models.Coordinates {
	if a.userLoc != nil {
		return a.userLoc.Coordinates
	}
	return models.FallbackCoordinates
}

func (a App) startPlacement() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.panel, cmd = a.panel.Collapse()
	cmds = append(cmds, cmd)
	a.mapView, cmd = a.mapView.SetPlacementMode(true)
	cmds = append(cmds, cmd)
	a.overlay = a.overlay.SetPlacementHint(true)
	cmds = append(cmds, a.syncMapRegion())

	return a, tea.Batch(cmds...)
}

func (a App) cancelPlacement() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.mapView, cmd = a.mapView.SetPlacementMode(false)
	cmds = append(cmds, cmd)
	a.overlay = a.overlay.SetPlacementHint(false)
	a.panel, cmd = a.panel.Expand()
	cmds = append(cmds, cmd, a.syncMapRegion())

	return a, tea.Batch(cmds...)
}

func (a App) updateMapClicked(msg screens.MapClickedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.mapView, cmd = a.mapView.SetPlacementMode(false)
	a.overlay = a.overlay.SetPlacementHint(false)
	a.form = screens.NewCreateSpotModel(msg.Coordinates, msg.Address)
	a.modal = modalForm
	return a, cmd
}

func (a App) updateSpotCreated(msg spotCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.log.WithError(msg.err).Error("spot creation failed")
		a.form = a.form.Unlock(userMessage(msg.err))
		return a, nil
	}

	a.modal = modalNone
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.panel, cmd = a.panel.Expand()
	cmds = append(cmds, cmd, a.syncMapRegion(), a.pushNotice("Parking spot created"))

	// Refetch so the new spot shows up; the sequence number retires any
	// fetch still in flight.
	a.fetchSeq++
	cmds = append(cmds, a.fetchSpotsCmd(a.fetchSeq))
	return a, tea.Batch(cmds...)
}

// userMessage extracts the display text from a repository error.
func userMessage(err error) string {
	var da *api.DataAccessError
	if errors.As(err, &da) {
		return da.UserMessage
	}
	var se *api.StorageError
	if errors.As(err, &se) {
		return se.UserMessage
	}
	return "something went wrong, please try again"
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even from a modal.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.modal {
	case modalList:
		var cmd tea.Cmd
		a.spotList, cmd = a.spotList.Update(msg)
		return a, cmd
	case modalForm:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	case modalHelp:
		a.modal = modalNone
		return a, nil
	}

	// The search input eats keys that would otherwise hit global bindings.
	if a.panel.SearchActive() {
		var cmd tea.Cmd
		a.panel, cmd = a.panel.Update(msg)
		return a, cmd
	}

	if a.mapView.PlacementMode() && msg.String() == "esc" {
		return a.cancelPlacement()
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Menu):
		a.overlay = a.overlay.ToggleMenu()
		return a, a.syncMapRegion()

	case key.Matches(msg, a.keys.Recenter):
		a.resolver.Invalidate()
		return a, a.resolveLocationCmd()

	case key.Matches(msg, a.keys.DismissBanner):
		var cmd tea.Cmd
		a.overlay, cmd = a.overlay.DismissBanner()
		return a, cmd

	case key.Matches(msg, a.keys.FindParking):
		return a.findParking()

	case key.Matches(msg, a.keys.CreateParking):
		return a.startPlacement()

	case key.Matches(msg, a.keys.ExpandPanel):
		var cmd tea.Cmd
		a.panel, cmd = a.panel.Expand()
		return a, tea.Batch(cmd, a.syncMapRegion())

	case key.Matches(msg, a.keys.CollapsePanel):
		var cmd tea.Cmd
		a.panel, cmd = a.panel.Collapse()
		return a, tea.Batch(cmd, a.syncMapRegion())

	case key.Matches(msg, a.keys.Help):
		a.modal = modalHelp
		return a, nil
	}

	// Remaining keys drive the panel grid and search.
	var cmd tea.Cmd
	a.panel, cmd = a.panel.Update(msg)
	return a, cmd
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone {
		return a, nil
	}

	// An active drag owns the pointer until release.
	if a.panel.Dragging() || msg.Y >= a.panel.Top() {
		var cmd tea.Cmd
		a.panel, cmd = a.panel.Update(msg)
		return a, tea.Batch(cmd, a.syncMapRegion())
	}

	chrome := a.overlay.Height()
	if msg.Y < chrome {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			var cmd tea.Cmd
			a.overlay, cmd = a.overlay.Click(msg.X, msg.Y)
			return a, tea.Batch(cmd, a.syncMapRegion())
		}
		return a, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		var cmd tea.Cmd
		a.mapView, cmd = a.mapView.Click(msg.X, msg.Y-chrome)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Starting ParkSpot..."
	}

	var b strings.Builder
	b.WriteString(a.overlay.View())
	b.WriteByte('\n')
	b.WriteString(a.mapArea())
	b.WriteByte('\n')
	b.WriteString(a.panel.View())
	return b.String()
}

// mapArea renders the middle region: the map, or the active modal on top
// of it, with any notices on the first row.
func (a App) mapArea() string {
	h := a.mapRegionHeight()
	if h <= 0 {
		return ""
	}

	var content string
	switch a.modal {
	case modalList:
		content = lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, a.spotList.View())
	case modalForm:
		content = lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, a.form.View())
	case modalHelp:
		content = lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, a.helpView())
	default:
		content = a.mapView.View()
	}

	if len(a.notices) == 0 {
		return content
	}
	lines := strings.SplitN(content, "\n", 2)
	lines[0] = lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		common.NoticeStyle.Render(a.notices[len(a.notices)-1].text))
	return strings.Join(lines, "\n")
}

func (a App) helpView() string {
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render("Keys"))
	b.WriteByte('\n')
	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(common.FormatHelp(binding.Help().Key, binding.Help().Desc))
			b.WriteByte('\n')
		}
	}
	b.WriteString(common.MutedTextStyle.Render("press any key to close"))
	return common.BoxStyle.Render(b.String())
}
