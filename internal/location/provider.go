package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/parkspot/parkspot/internal/models"
	"github.com/parkspot/parkspot/internal/session"
)

// sessionKey is where the resolved location is cached for the session.
const sessionKey = "user_location"

// defaultTimeout bounds the one-shot position lookup so the screen never
// hangs on it. Reduced accuracy is acceptable.
const defaultTimeout = 3 * time.Second

// Provider performs a one-shot "where am I" lookup.
type Provider interface {
	Current(ctx context.Context) (models.Coordinates, error)
}

// HTTPLocator resolves an approximate position from an IP geolocation
// endpoint returning {"latitude": ..., "longitude": ...}.
type HTTPLocator struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPLocator creates a locator against the given endpoint.
func NewHTTPLocator(endpoint string, timeout time.Duration) *HTTPLocator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPLocator{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Current implements Provider.
func (l *HTTPLocator) Current(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("position lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return models.Coordinates{}, fmt.Errorf("position lookup failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to read position response: %w", err)
	}

	var pos struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(body, &pos); err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to parse position response: %w", err)
	}
	if pos.Latitude == 0 && pos.Longitude == 0 {
		return models.Coordinates{}, fmt.Errorf("position lookup returned no coordinates")
	}

	return models.NewCoordinates(pos.Latitude, pos.Longitude), nil
}

// Resolver resolves and caches the user location for the session.
type Resolver struct {
	provider Provider
	store    *session.Store
	fallback models.Coordinates
	log      *logrus.Logger
}

// NewResolver wires a provider, a session store and the fallback position.
func NewResolver(provider Provider, store *session.Store, fallback models.Coordinates, log *logrus.Logger) *Resolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Resolver{
		provider: provider,
		store:    store,
		fallback: fallback,
		log:      log,
	}
}

// Resolve returns the user's position for this session. A cached value wins;
// otherwise the provider is asked once, and on denial, error or timeout the
// fixed fallback is substituted. Whatever was resolved is cached so the next
// screen load does not prompt again. Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context) models.UserLocation {
	var cached models.UserLocation
	if ok, err := r.store.Get(sessionKey, &cached); err == nil && ok {
		cached.Source = models.LocationSourceSession
		return cached
	}

	loc := models.UserLocation{
		Source:     models.LocationSourceDevice,
		ResolvedAt: time.Now().UTC(),
	}

	coords, err := r.provider.Current(ctx)
	if err != nil {
		r.log.WithError(err).Warn("device location unavailable, using fallback")
		loc.Coordinates = r.fallback
		loc.Source = models.LocationSourceFallback
	} else {
		loc.Coordinates = coords
	}

	if err := r.store.Set(sessionKey, loc); err != nil {
		r.log.WithError(err).Warn("failed to cache user location")
	}

	return loc
}

// Invalidate drops the cached location so the next Resolve asks the device
// again. Used by the recenter control.
func (r *Resolver) Invalidate() {
	if err := r.store.Delete(sessionKey); err != nil {
		r.log.WithError(err).Warn("failed to invalidate cached location")
	}
}
