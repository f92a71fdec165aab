// Package nominatim resolves birth places to coordinates with the
// OpenStreetMap Nominatim search API.
//
// Nominatim's usage policy allows one request per second and requires an
// identifying User-Agent; both are enforced here. Lookups never fail: any
// problem yields the (0, 0) fallback marked with Fallback=true.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/logger"
)

// Ensure Geocoder implements the interface.
var _ driven.Geocoder = (*Geocoder)(nil)

const (
	defaultTimeout = 10 * time.Second

	// defaultBackoff applies after a 429 without a Retry-After header.
	defaultBackoff = 60 * time.Second
)

// Config configures the geocoder.
type Config struct {
	BaseURL   string
	UserAgent string

	// RequestsPerSecond defaults to 1.
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Geocoder is a rate-limited Nominatim client with an in-process cache.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       *logger.Logger

	mu      sync.Mutex
	retryAt time.Time
	cache   map[string]domain.Coordinates
}

// New creates a geocoder.
func New(cfg Config, log *logger.Logger) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Geocoder{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    cfg.HTTPClient,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		log:       log,
		cache:     make(map[string]domain.Coordinates),
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve returns the coordinates of place, or the fallback.
func (g *Geocoder) Resolve(ctx context.Context, place string) domain.Coordinates {
	place = strings.TrimSpace(place)
	if place == "" {
		return domain.FallbackCoordinates()
	}

	key := strings.ToLower(place)
	g.mu.Lock()
	if c, ok := g.cache[key]; ok {
		g.mu.Unlock()
		return c
	}
	g.mu.Unlock()

	c, err := g.search(ctx, place)
	if err != nil {
		g.log.Warn("could not resolve %q, using fallback coordinates: %v", place, err)
		return domain.FallbackCoordinates()
	}

	g.mu.Lock()
	g.cache[key] = c
	g.mu.Unlock()
	return c
}

func (g *Geocoder) search(ctx context.Context, place string) (domain.Coordinates, error) {
	if err := g.wait(ctx); err != nil {
		return domain.Coordinates{}, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", place)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		g.backoff(resp.Header.Get("Retry-After"))
		return domain.Coordinates{}, fmt.Errorf("rate limited by server")
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no match")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}
	return domain.NewCoordinates(lat, lon)
}

// wait blocks for any server-imposed backoff, then for the token bucket.
func (g *Geocoder) wait(ctx context.Context) error {
	g.mu.Lock()
	retryAt := g.retryAt
	g.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		return fmt.Errorf("backing off for %s", d.Round(time.Second))
	}
	return g.limiter.Wait(ctx)
}

func (g *Geocoder) backoff(retryAfter string) {
	d := defaultBackoff
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
		d = time.Duration(secs) * time.Second
	}
	g.mu.Lock()
	g.retryAt = time.Now().Add(d)
	g.mu.Unlock()
}
