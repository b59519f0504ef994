package mapwidget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot/internal/models"
)

func initializedMap(t *testing.T) *TerminalMap {
	t.Helper()
	m := NewTerminalMap()
	require.NoError(t, m.Init(Config{
		Center: models.NewCoordinates(41.0082, 28.9784),
		Zoom:   15,
		Width:  80,
		Height: 24,
	}))
	return m
}

func TestTerminalMap_InitRequiresDimensions(t *testing.T) {
	m := NewTerminalMap()

	err := m.Init(Config{Center: models.FallbackCoordinates, Zoom: 15})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, m.Live())

	err = m.Init(Config{Center: models.FallbackCoordinates, Zoom: 15, Width: 80})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestTerminalMap_ReinitResetsState(t *testing.T) {
	m := initializedMap(t)
	m.AddMarker(Marker{Coordinates: models.NewCoordinates(41.0092, 28.9794)})

	require.NoError(t, m.Init(Config{
		Center: models.NewCoordinates(41.0082, 28.9784),
		Zoom:   15,
		Width:  80,
		Height: 24,
	}))

	assert.True(t, m.Live())
	assert.Empty(t, m.markers)
}

func TestTerminalMap_DestroyIgnoresFurtherEvents(t *testing.T) {
	m := initializedMap(t)

	clicked := 0
	m.OnClick(func(models.Coordinates) { clicked++ })
	m.Destroy()

	assert.False(t, m.Live())
	m.Click(10, 10)
	m.AddMarker(Marker{})
	assert.Zero(t, clicked)
	assert.Empty(t, m.View())
}

func TestTerminalMap_ClickReportsCellCoordinates(t *testing.T) {
	m := initializedMap(t)

	var got models.Coordinates
	clicks := 0
	m.OnClick(func(c models.Coordinates) {
		got = c
		clicks++
	})

	m.Click(40, 12)

	require.Equal(t, 1, clicks, "exactly one callback per click")
	assert.Equal(t, m.CoordinatesAt(40, 12), got)
	// A click near the view center resolves near the center coordinate.
	assert.InDelta(t, 41.0082, got.Lat(), 0.01)
	assert.InDelta(t, 28.9784, got.Lng(), 0.01)
}

func TestTerminalMap_ClickOutsideViewportIgnored(t *testing.T) {
	m := initializedMap(t)

	clicks := 0
	m.OnClick(func(models.Coordinates) { clicks++ })

	m.Click(-1, 5)
	m.Click(5, -1)
	m.Click(80, 5)
	m.Click(5, 24)

	assert.Zero(t, clicks)
}

func TestTerminalMap_ProjectionRoundTrip(t *testing.T) {
	m := initializedMap(t)

	for _, pos := range []struct{ x, y int }{{0, 0}, {79, 23}, {40, 12}, {10, 20}} {
		coords := m.CoordinatesAt(pos.x, pos.y)
		x, y, ok := m.cellFor(coords)

		require.True(t, ok, "cell (%d,%d)", pos.x, pos.y)
		assert.Equal(t, pos.x, x)
		assert.Equal(t, pos.y, y)
	}
}

func TestTerminalMap_MarkerAt(t *testing.T) {
	m := initializedMap(t)

	spot := Marker{
		Coordinates: m.CoordinatesAt(20, 10),
		Kind:        MarkerSpotAvailable,
		Label:       "Covered Garage",
	}
	m.AddMarker(spot)

	found := m.MarkerAt(20, 10)
	require.NotNil(t, found)
	assert.Equal(t, "Covered Garage", found.Label)

	assert.Nil(t, m.MarkerAt(21, 10))
}

func TestTerminalMap_ViewRendersMarkers(t *testing.T) {
	m := initializedMap(t)

	m.AddMarker(Marker{Coordinates: m.CoordinatesAt(40, 12), Kind: MarkerUser})
	m.AddMarker(Marker{Coordinates: m.CoordinatesAt(10, 5), Kind: MarkerSpotAvailable})

	view := m.View()

	assert.Equal(t, 24, len(strings.Split(view, "\n")))
	assert.Contains(t, view, string(userMarkerRune))
	assert.Contains(t, view, string(availableMarkerRune))
}

func TestTerminalMap_UserMarkerWinsSharedCell(t *testing.T) {
	m := initializedMap(t)
	pos := m.CoordinatesAt(40, 12)

	m.AddMarker(Marker{Coordinates: pos, Kind: MarkerSpotAvailable})
	m.AddMarker(Marker{Coordinates: pos, Kind: MarkerUser})

	view := m.View()
	assert.Contains(t, view, string(userMarkerRune))
}

func TestTerminalMap_OffViewMarkersKeptNotRendered(t *testing.T) {
	m := initializedMap(t)

	m.AddMarker(Marker{
		Coordinates: models.NewCoordinates(48.8566, 2.3522), // far outside the view
		Kind:        MarkerSpotAvailable,
	})

	assert.Len(t, m.markers, 1)
	assert.NotContains(t, m.View(), string(availableMarkerRune))
}
