package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/parkspot/parkspot/internal/models"
)

const spotsTable = "/rest/v1/parking_spots"

// SpotRepository is the surface the UI depends on, so tests can substitute
// a fake for the remote backend.
type SpotRepository interface {
	ListAll(ctx context.Context) []models.ParkingSpot
	ListNear(ctx context.Context, lat, lng, radius float64) []models.ParkingSpot
	Create(ctx context.Context, req models.CreateParkingSpotRequest) (*models.ParkingSpot, error)
	UploadImage(ctx context.Context, data []byte, name string) (string, error)
}

// ListAll returns every stored parking spot, newest first. Backend failures
// are logged and yield an empty list; they are never surfaced to the caller.
func (c *Client) ListAll(ctx context.Context) []models.ParkingSpot {
	spots, err := c.querySpots(ctx, spotsTable+"?select=*&order=created_at.desc")
	if err != nil {
		c.log.WithError(err).Error("failed to list parking spots")
		return []models.ParkingSpot{}
	}
	return spots
}

// ListNear returns available spots around the given position, newest first.
// The radius is accepted but not applied: the backing query filters by
// availability only, so the result is ListAll restricted to available spots.
// True proximity filtering needs server-side geospatial support.
func (c *Client) ListNear(ctx context.Context, lat, lng, radius float64) []models.ParkingSpot {
	_ = lat
	_ = lng
	_ = radius

	spots, err := c.querySpots(ctx, spotsTable+"?select=*&available=eq.true&order=created_at.desc")
	if err != nil {
		c.log.WithError(err).Error("failed to list nearby parking spots")
		return []models.ParkingSpot{}
	}
	return spots
}

func (c *Client) querySpots(ctx context.Context, path string) ([]models.ParkingSpot, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var spots []models.ParkingSpot
	if err := json.Unmarshal(body, &spots); err != nil {
		return nil, fmt.Errorf("failed to parse spots response: %w", err)
	}
	return spots, nil
}

// insertSpotRow is the wire payload for a spot insert.
type insertSpotRow struct {
	Coordinates  models.Coordinates `json:"coordinates"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	PricePerHour float64            `json:"price_per_hour"`
	Address      string             `json:"address"`
	ImageURL     string             `json:"image_url,omitempty"`
	Available    bool               `json:"available"`
	OwnerID      string             `json:"owner_id"`
}

// Create persists a new parking spot and returns the stored record with the
// server-assigned id and timestamps. The owner identity is the authenticated
// user when one can be resolved, otherwise a generated anonymous id. The
// record is always created available.
func (c *Client) Create(ctx context.Context, req models.CreateParkingSpotRequest) (*models.ParkingSpot, error) {
	var imageURL string
	if len(req.Image) > 0 {
		url, err := c.UploadImage(ctx, req.Image, req.ImageName)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	row := insertSpotRow{
		Coordinates:  req.Coordinates,
		Title:        req.Title,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		Address:      req.Address,
		ImageURL:     imageURL,
		Available:    true,
		OwnerID:      c.ResolveOwnerID(ctx),
	}

	body, err := c.post(ctx, spotsTable, row, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"title":   req.Title,
			"address": req.Address,
		}).Error("failed to create parking spot")
		return nil, &DataAccessError{
			UserMessage: "could not create the parking spot",
			Cause:       err,
		}
	}

	// PostgREST returns the representation as a single-element array.
	var spots []models.ParkingSpot
	if err := json.Unmarshal(body, &spots); err != nil {
		var spot models.ParkingSpot
		if err2 := json.Unmarshal(body, &spot); err2 == nil && spot.ID != "" {
			return &spot, nil
		}
		return nil, &DataAccessError{
			UserMessage: "could not create the parking spot",
			Cause:       fmt.Errorf("failed to parse create response: %w", err),
		}
	}
	if len(spots) == 0 {
		return nil, &DataAccessError{
			UserMessage: "could not create the parking spot",
			Cause:       fmt.Errorf("no record returned from insert"),
		}
	}

	return &spots[0], nil
}
