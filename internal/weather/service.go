package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"roostaboosta/internal/httpx"
	"roostaboosta/internal/logging"
)

// Data is one weather observation, shaped for the display: integral
// percentages and imperial units, plus the condition text.
type Data struct {
	Humidity     int
	PrecipChance int
	Temperature  int
	WindSpeed    int
	Condition    string
}

// Cache persists observations between polls. Load returns the zero time
// when nothing is cached.
type Cache interface {
	Load(ctx context.Context) (Data, time.Time, error)
	Store(ctx context.Context, d Data, fetchedAt time.Time) error
}

// ErrNoLocation indicates the service was built without a query location.
var ErrNoLocation = errors.New("weather: no location configured")

const (
	defaultHost    = "api.weatherapi.com"
	defaultTTL     = 10 * time.Minute
	defaultTimeout = 10 * time.Second

	// readBufSize matches the transport-side buffers; response bytes are
	// consumed in chunks of this size.
	readBufSize = 256
)

// Options configures a Service.
type Options struct {
	Host     string
	Key      string
	Location string
	TTL      time.Duration
	Timeout  time.Duration
}

// Service polls the weather API. Fetch serves from the cache while the
// cached observation is fresh.
type Service struct {
	client  *httpx.Client
	cache   Cache
	logger  *slog.Logger
	host    string
	key     string
	loc     string
	ttl     time.Duration
	timeout time.Duration

	now func() time.Time
}

// NewService builds a service over the given HTTP client. cache may be nil.
func NewService(client *httpx.Client, cache Cache, logger *slog.Logger, opts Options) (*Service, error) {
	if strings.TrimSpace(opts.Location) == "" {
		return nil, ErrNoLocation
	}
	host := opts.Host
	if host == "" {
		host = defaultHost
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		client:  client,
		cache:   cache,
		logger:  logging.NewComponentLogger(logger, "weather"),
		host:    host,
		key:     opts.Key,
		loc:     opts.Location,
		ttl:     ttl,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

// Fetch returns the current observation, hitting the API only when the
// cache is missing or stale. A failed refresh falls back to a stale cached
// observation when one exists.
func (s *Service) Fetch(ctx context.Context) (Data, error) {
	var cached Data
	var cachedAt time.Time
	if s.cache != nil {
		var err error
		cached, cachedAt, err = s.cache.Load(ctx)
		if err != nil {
			s.logger.Warn("cache load failed", logging.Error(err))
			cachedAt = time.Time{}
		}
		if !cachedAt.IsZero() && s.now().Sub(cachedAt) < s.ttl {
			return cached, nil
		}
	}

	data, err := s.fetch(ctx)
	if err != nil {
		if !cachedAt.IsZero() {
			s.logger.Warn("refresh failed, serving stale observation",
				logging.Error(err), logging.Duration("age", s.now().Sub(cachedAt)))
			return cached, nil
		}
		return Data{}, err
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, data, s.now()); err != nil {
			s.logger.Warn("cache store failed", logging.Error(err))
		}
	}
	return data, nil
}

func (s *Service) fetch(ctx context.Context) (Data, error) {
	req := &httpx.Request{
		Method: httpx.MethodFor("GET"),
		URI:    s.uri(),
		General: httpx.GeneralHeader{
			Connection: "close",
		},
		Header: httpx.RequestHeader{
			Host:   s.host,
			Accept: "application/json",
		},
	}
	resp := new(httpx.Response)

	promise, err := s.client.Do(req, resp, s.timeout, nil)
	if err != nil {
		return Data{}, fmt.Errorf("weather: request: %w", err)
	}
	defer promise.Drop()

	parser := httpx.NewResponseParser(resp)
	buf := make([]byte, readBufSize)
	deadline := s.now().Add(s.timeout)
	for !parser.Done() {
		if err := ctx.Err(); err != nil {
			return Data{}, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Data{}, fmt.Errorf("weather: response: %w", httpx.ErrTimeout)
		}
		if err := promise.Wait(remaining); err != nil {
			return Data{}, fmt.Errorf("weather: response: %w", err)
		}
		for promise.Available() > 0 {
			n, err := promise.Read(buf)
			if err != nil {
				return Data{}, fmt.Errorf("weather: read response: %w", err)
			}
			if err := parser.Feed(buf[:n]); err != nil {
				return Data{}, fmt.Errorf("weather: parse response: %w", err)
			}
		}
	}

	if !resp.Status.Success() {
		return Data{}, fmt.Errorf("weather: server returned %d %s", resp.Status.Code(), resp.Status.Reason())
	}
	return decodeBody(resp.Body)
}

func (s *Service) uri() string {
	q := url.Values{}
	q.Set("key", s.key)
	q.Set("q", s.loc)
	q.Set("days", "1")
	q.Set("aqi", "no")
	q.Set("alerts", "no")
	return "/v1/forecast.json?" + q.Encode()
}

// payload mirrors the slice of the forecast document the clock displays.
type payload struct {
	Current struct {
		Humidity  float64 `json:"humidity"`
		TempF     float64 `json:"temp_f"`
		WindMph   float64 `json:"wind_mph"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Days []struct {
			Day struct {
				RainChance float64 `json:"daily_chance_of_rain"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func decodeBody(body string) (Data, error) {
	var doc payload
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return Data{}, fmt.Errorf("weather: decode body: %w", err)
	}
	d := Data{
		Humidity:    int(doc.Current.Humidity),
		Temperature: int(doc.Current.TempF),
		WindSpeed:   int(doc.Current.WindMph),
		Condition:   doc.Current.Condition.Text,
	}
	if len(doc.Forecast.Days) > 0 {
		d.PrecipChance = int(doc.Forecast.Days[0].Day.RainChance)
	}
	return d, nil
}
