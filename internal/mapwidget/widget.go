package mapwidget

import (
	"errors"

	"github.com/parkspot/parkspot/internal/models"
)

// ErrNotReady is returned by Init while the rendering surface cannot be
// built yet, e.g. before the terminal has reported its dimensions. Callers
// retry with a bounded schedule.
var ErrNotReady = errors.New("map widget not ready")

// MarkerKind selects the marker's visual style.
type MarkerKind int

const (
	MarkerUser MarkerKind = iota
	MarkerSpotAvailable
	MarkerSpotTaken
)

// Marker is a point rendered on the map.
type Marker struct {
	Coordinates models.Coordinates
	Kind        MarkerKind
	Label       string
}

// Config describes the viewport for a widget instance.
type Config struct {
	Center models.Coordinates
	Zoom   int
	Width  int
	Height int
}

// Widget is the capability set the map screen depends on, so tests can
// drive the screen with a fake instead of the terminal renderer.
type Widget interface {
	// Init builds the instance for the given viewport. It returns
	// ErrNotReady while the surface cannot be built; calling it on a live
	// instance tears the previous state down first.
	Init(cfg Config) error
	// AddMarker places a marker. Markers outside the viewport are kept but
	// not rendered.
	AddMarker(m Marker)
	// OnClick registers the handler invoked with the geographic position of
	// a pointer event delivered through Click.
	OnClick(fn func(models.Coordinates))
	// Click delivers a pointer event in cell space.
	Click(x, y int)
	// View renders the current frame.
	View() string
	// Destroy releases the instance. A destroyed widget ignores events.
	Destroy()
}
