package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Coordinates is a latitude/longitude pair. It is a fixed 2-tuple on the
// wire, never a free-form array.
type Coordinates [2]float64

// NewCoordinates creates a Coordinates value from latitude and longitude.
func NewCoordinates(lat, lng float64) Coordinates {
	return Coordinates{lat, lng}
}

// Lat returns the latitude component.
func (c Coordinates) Lat() float64 { return c[0] }

// Lng returns the longitude component.
func (c Coordinates) Lng() float64 { return c[1] }

// String formats the pair with five decimal places.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f, %.5f", c[0], c[1])
}

// UnmarshalJSON enforces the 2-tuple invariant.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("coordinates must be a numeric pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("coordinates must have exactly 2 elements, got %d", len(raw))
	}
	c[0], c[1] = raw[0], raw[1]
	return nil
}

// ParkingSpot represents a persisted parking location record.
type ParkingSpot struct {
	ID           string      `json:"id"`
	Coordinates  Coordinates `json:"coordinates"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	PricePerHour float64     `json:"price_per_hour"`
	Available    bool        `json:"available"`
	ImageURL     string      `json:"image_url,omitempty"`
	OwnerID      string      `json:"owner_id"`
	Address      string      `json:"address"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// FormattedPrice renders the hourly price for display.
func (s ParkingSpot) FormattedPrice() string {
	return fmt.Sprintf("₺%.0f/hr", s.PricePerHour)
}

// CreateParkingSpotRequest is the payload for creating a new spot. It is
// built by the create form, consumed once by the repository, then discarded.
type CreateParkingSpotRequest struct {
	Coordinates  Coordinates `json:"coordinates"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	PricePerHour float64     `json:"price_per_hour"`
	Address      string      `json:"address"`
	Image        []byte      `json:"-"`
	ImageName    string      `json:"-"`
}

// IsComplete reports whether the three mandatory fields are present and the
// price is non-negative.
func (r CreateParkingSpotRequest) IsComplete() bool {
	return r.Title != "" && r.Description != "" && r.Address != "" && r.PricePerHour >= 0
}
