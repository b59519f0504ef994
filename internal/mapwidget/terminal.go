package mapwidget

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/parkspot/parkspot/internal/models"
)

var (
	userMarkerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)
	availableMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	takenMarkerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	gridStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))
)

const (
	userMarkerRune      = '◉'
	availableMarkerRune = 'P'
	takenMarkerRune     = 'P'
	gridRune            = '·'
)

// TerminalMap renders markers on a character-cell grid using a plain
// equirectangular projection around the view center.
type TerminalMap struct {
	cfg     Config
	markers []Marker
	onClick func(models.Coordinates)

	live bool
}

// NewTerminalMap creates an uninitialized terminal map.
func NewTerminalMap() *TerminalMap {
	return &TerminalMap{}
}

// Init implements Widget.
func (t *TerminalMap) Init(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ErrNotReady
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = 15
	}

	// Re-init tears down whatever was there before.
	if t.live {
		t.Destroy()
	}

	t.cfg = cfg
	t.markers = nil
	t.live = true
	return nil
}

// Live reports whether the instance currently holds resources.
func (t *TerminalMap) Live() bool { return t.live }

// AddMarker implements Widget.
func (t *TerminalMap) AddMarker(m Marker) {
	if !t.live {
		return
	}
	t.markers = append(t.markers, m)
}

// OnClick implements Widget.
func (t *TerminalMap) OnClick(fn func(models.Coordinates)) {
	t.onClick = fn
}

// Click implements Widget.
func (t *TerminalMap) Click(x, y int) {
	if !t.live || t.onClick == nil {
		return
	}
	if x < 0 || x >= t.cfg.Width || y < 0 || y >= t.cfg.Height {
		return
	}
	t.onClick(t.CoordinatesAt(x, y))
}

// Destroy implements Widget.
func (t *TerminalMap) Destroy() {
	t.live = false
	t.markers = nil
	t.onClick = nil
}

// spans returns the latitude/longitude extent covered by the viewport.
// One zoom step halves the visible extent, web-map style; terminal cells
// are roughly twice as tall as wide, hence the 0.5 factor on longitude.
func (t *TerminalMap) spans() (latSpan, lngSpan float64) {
	latSpan = 360 / math.Exp2(float64(t.cfg.Zoom))
	aspect := float64(t.cfg.Width) / float64(t.cfg.Height)
	cosLat := math.Cos(t.cfg.Center.Lat() * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngSpan = latSpan * aspect * 0.5 / cosLat
	return latSpan, lngSpan
}

// CoordinatesAt converts a cell position to geographic coordinates at the
// cell's center.
func (t *TerminalMap) CoordinatesAt(x, y int) models.Coordinates {
	latSpan, lngSpan := t.spans()

	lat := t.cfg.Center.Lat() + latSpan/2 - (float64(y)+0.5)*latSpan/float64(t.cfg.Height)
	lng := t.cfg.Center.Lng() - lngSpan/2 + (float64(x)+0.5)*lngSpan/float64(t.cfg.Width)

	return models.NewCoordinates(lat, lng)
}

// cellFor projects coordinates onto the grid. ok is false outside the view.
func (t *TerminalMap) cellFor(c models.Coordinates) (x, y int, ok bool) {
	latSpan, lngSpan := t.spans()

	y = int((t.cfg.Center.Lat() + latSpan/2 - c.Lat()) / latSpan * float64(t.cfg.Height))
	x = int((c.Lng() - t.cfg.Center.Lng() + lngSpan/2) / lngSpan * float64(t.cfg.Width))

	if x < 0 || x >= t.cfg.Width || y < 0 || y >= t.cfg.Height {
		return 0, 0, false
	}
	return x, y, true
}

// MarkerAt returns the marker rendered at the given cell, if any.
func (t *TerminalMap) MarkerAt(x, y int) *Marker {
	if !t.live {
		return nil
	}
	for i := range t.markers {
		mx, my, ok := t.cellFor(t.markers[i].Coordinates)
		if ok && mx == x && my == y {
			return &t.markers[i]
		}
	}
	return nil
}

// View implements Widget.
func (t *TerminalMap) View() string {
	if !t.live {
		return ""
	}

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, t.cfg.Height)
	for y := range grid {
		grid[y] = make([]cell, t.cfg.Width)
		for x := range grid[y] {
			if (x+y*3)%7 == 0 {
				grid[y][x] = cell{r: gridRune, style: gridStyle}
			} else {
				grid[y][x] = cell{r: ' '}
			}
		}
	}

	// Spot markers first so the user marker wins a shared cell.
	for _, m := range t.markers {
		if m.Kind == MarkerUser {
			continue
		}
		if x, y, ok := t.cellFor(m.Coordinates); ok {
			r, style := markerGlyph(m.Kind)
			grid[y][x] = cell{r: r, style: style}
		}
	}
	for _, m := range t.markers {
		if m.Kind != MarkerUser {
			continue
		}
		if x, y, ok := t.cellFor(m.Coordinates); ok {
			r, style := markerGlyph(m.Kind)
			grid[y][x] = cell{r: r, style: style}
		}
	}

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			if c.r == ' ' {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		if y < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func markerGlyph(kind MarkerKind) (rune, lipgloss.Style) {
	switch kind {
	case MarkerUser:
		return userMarkerRune, userMarkerStyle
	case MarkerSpotTaken:
		return takenMarkerRune, takenMarkerStyle
	default:
		return availableMarkerRune, availableMarkerStyle
	}
}
