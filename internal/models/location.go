package models

import "time"

// LocationSource records where a resolved user location came from.
type LocationSource string

const (
	LocationSourceDevice   LocationSource = "device"
	LocationSourceFallback LocationSource = "fallback"
	LocationSourceSession  LocationSource = "session"
)

// UserLocation is the user's resolved position for the current session.
type UserLocation struct {
	Coordinates Coordinates    `json:"coordinates"`
	Source      LocationSource `json:"source"`
	ResolvedAt  time.Time      `json:"resolved_at"`
}

// FallbackCoordinates is the city-center position substituted when the
// device location is denied or unavailable.
var FallbackCoordinates = NewCoordinates(41.0082, 28.9784)

// NewFallbackLocation returns the fixed fallback position.
func NewFallbackLocation() UserLocation {
	return UserLocation{
		Coordinates: FallbackCoordinates,
		Source:      LocationSourceFallback,
		ResolvedAt:  time.Now().UTC(),
	}
}
