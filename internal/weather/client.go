// Package weather fetches solar climatology from the NASA POWER API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/solarestimate/internal/constants"
	"github.com/chrissnell/solarestimate/internal/metrics"
	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// NASA POWER parameter names
const (
	ParameterGHI         = "ALLSKY_SFC_SW_DWN"
	ParameterTemperature = "T2M"

	annualKey = "ANN"
	fillValue = -999.0
)

// Defaults for an empty Config
const (
	DefaultBaseURL   = "https://power.larc.nasa.gov/api/temporal/climatology/point"
	DefaultCommunity = "RE"
	DefaultTimeout   = 10 * time.Second
	DefaultCacheTTL  = 24 * time.Hour
)

var monthKeys = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Config configures the climatology client
type Config struct {
	BaseURL   string
	Community string
	Parameter string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Community == "" {
		c.Community = DefaultCommunity
	}
	if c.Parameter == "" {
		c.Parameter = ParameterGHI
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

// Client answers climatology lookups from memory, then the persistent store,
// then the network. It never retries a failed request.
type Client struct {
	cfg     Config
	http    *http.Client
	cache   *cache.Cache
	store   *Store
	metrics *metrics.WeatherMetrics
	logger  *zap.SugaredLogger
}

// NewClient builds a Client. store and m may be nil.
func NewClient(cfg Config, store *Store, m *metrics.WeatherMetrics, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// climatology is one parameter's values keyed by month abbreviation plus ANN
type climatology struct {
	Values map[string]float64 `msgpack:"values"`
	Units  string             `msgpack:"units"`
}

type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
	Parameters map[string]struct {
		Units    string `json:"units"`
		LongName string `json:"longname"`
	} `json:"parameters"`
	Messages []string `json:"messages"`
}

// AnnualGHI returns the annual GHI in kWh/m²/year. Failures wrap
// solarerr.ErrUpstreamUnavailable.
func (c *Client) AnnualGHI(ctx context.Context, lat, lon float64) (float64, error) {
	ghi, _, err := c.annualGHI(ctx, lat, lon)
	return ghi, err
}

func (c *Client) annualGHI(ctx context.Context, lat, lon float64) (float64, types.GHISource, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return 0, "", err
	}
	clim, source, err := c.lookup(ctx, c.cfg.Parameter, lat, lon)
	if err != nil {
		return 0, "", err
	}
	ann, ok := clim.Values[annualKey]
	if !ok || ann <= fillValue || ann < 0 {
		return 0, "", fmt.Errorf("no annual %s value for (%.4f, %.4f): %w", c.cfg.Parameter, lat, lon, solarerr.ErrUpstreamUnavailable)
	}
	return toAnnual(ann, clim.Units), source, nil
}

// Irradiance never fails for valid coordinates: when the service cannot
// answer it substitutes FallbackGHI and reports the fallback source
func (c *Client) Irradiance(ctx context.Context, lat, lon float64) (types.Irradiance, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return types.Irradiance{}, err
	}
	ghi, source, err := c.annualGHI(ctx, lat, lon)
	if err != nil {
		c.logger.Warnf("climatology unavailable for (%.4f, %.4f), using regional fallback: %v", lat, lon, err)
		source = types.GHISourceFallback
		ghi = FallbackGHI(lat, lon)
	}
	c.metrics.RecordLookup(string(source))
	return types.Irradiance{GHIAnnual: ghi, Source: source}, nil
}

// MonthlyGHI returns the mean daily GHI of each month, kWh/m²/day
func (c *Client) MonthlyGHI(ctx context.Context, lat, lon float64) ([12]float64, error) {
	return c.monthly(ctx, c.cfg.Parameter, lat, lon)
}

// MonthlyTemperature returns the mean 2 m air temperature of each month, °C
func (c *Client) MonthlyTemperature(ctx context.Context, lat, lon float64) ([12]float64, error) {
	return c.monthly(ctx, ParameterTemperature, lat, lon)
}

func (c *Client) monthly(ctx context.Context, parameter string, lat, lon float64) ([12]float64, error) {
	var out [12]float64
	if err := ValidateCoordinates(lat, lon); err != nil {
		return out, err
	}
	clim, _, err := c.lookup(ctx, parameter, lat, lon)
	if err != nil {
		return out, err
	}
	for i, key := range monthKeys {
		v, ok := clim.Values[key]
		if !ok || v <= fillValue {
			return out, fmt.Errorf("missing %s for %s: %w", key, parameter, solarerr.ErrUpstreamUnavailable)
		}
		out[i] = v
	}
	return out, nil
}

// BatchAnnualGHI looks up several locations in turn, pausing delay between
// requests. Locations that fail are left out of the result.
func (c *Client) BatchAnnualGHI(ctx context.Context, locations []types.Location, delay time.Duration) (map[types.Location]float64, error) {
	results := make(map[types.Location]float64, len(locations))
	for i, loc := range locations {
		c.logger.Debugf("batch GHI lookup %d/%d (%.4f, %.4f)", i+1, len(locations), loc.Latitude, loc.Longitude)

		ghi, err := c.AnnualGHI(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			c.logger.Infof("batch GHI lookup for (%.4f, %.4f) failed: %v", loc.Latitude, loc.Longitude, err)
		} else {
			results[loc] = ghi
		}

		if i < len(locations)-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return results, nil
}

func cacheKey(parameter string, lat, lon float64) string {
	return fmt.Sprintf("%s:%.4f:%.4f", parameter, lat, lon)
}

// lookup resolves a parameter from cache, store, then network
func (c *Client) lookup(ctx context.Context, parameter string, lat, lon float64) (*climatology, types.GHISource, error) {
	key := cacheKey(parameter, lat, lon)
	if v, found := c.cache.Get(key); found {
		return v.(*climatology), types.GHISourceCache, nil
	}

	if c.store != nil {
		clim, err := c.store.Get(ctx, parameter, lat, lon)
		if err != nil {
			c.logger.Errorf("climatology store read failed: %v", err)
		} else if clim != nil {
			c.cache.Set(key, clim, cache.DefaultExpiration)
			return clim, types.GHISourceStore, nil
		}
	}

	clim, err := c.fetch(ctx, parameter, lat, lon)
	if err != nil {
		return nil, "", err
	}
	c.cache.Set(key, clim, cache.DefaultExpiration)
	if c.store != nil {
		if err := c.store.Put(ctx, parameter, lat, lon, clim); err != nil {
			c.logger.Errorf("climatology store write failed: %v", err)
		}
	}
	return clim, types.GHISourceLive, nil
}

func (c *Client) fetch(ctx context.Context, parameter string, lat, lon float64) (*climatology, error) {
	v := url.Values{}
	v.Set("parameters", parameter)
	v.Set("community", c.cfg.Community)
	v.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	v.Set("format", "JSON")

	reqURL := c.cfg.BaseURL + "?" + v.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating climatology request: %w", err)
	}
	req.Header.Set("User-Agent", "solarestimate/"+constants.Version)

	c.logger.Debugf("requesting climatology: %s", reqURL)
	start := time.Now()
	clim, reason, err := c.do(req, parameter)
	c.metrics.RecordFetch(parameter, time.Since(start), reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", solarerr.ErrUpstreamUnavailable, err)
	}
	return clim, nil
}

// do performs the request. reason labels the failure for metrics.
func (c *Client) do(req *http.Request, parameter string) (*climatology, string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, "timeout", err
		}
		return nil, "transport", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, "status", fmt.Errorf("climatology service returned %s", resp.Status)
	}

	var body powerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "decode", fmt.Errorf("unable to decode climatology response: %w", err)
	}

	values, ok := body.Properties.Parameter[parameter]
	if !ok || len(values) == 0 {
		return nil, "missing", fmt.Errorf("parameter %s missing from response (messages: %s)",
			parameter, strings.Join(body.Messages, "; "))
	}

	clim := &climatology{Values: values}
	if meta, ok := body.Parameters[parameter]; ok {
		clim.Units = meta.Units
	}
	return clim, "", nil
}

// toAnnual converts the service's annual mean to a yearly total. The POWER
// climatology reports irradiance as a daily mean.
func toAnnual(v float64, units string) float64 {
	if units == "" || strings.Contains(strings.ToLower(units), "/day") {
		return v * 365
	}
	return v
}
