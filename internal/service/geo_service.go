package service

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type Location struct {
	LatLong string `json:"latlong"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// UnknownLocation is used whenever a lookup fails.
func UnknownLocation() Location {
	return Location{LatLong: "N/A", City: "Unknown", State: "Unknown", Country: "Unknown"}
}

type GeoServiceInterface interface {
	Locate(ctx context.Context, ip string) Location
}

// GeoService resolves an IP to coordinates and reverse geocodes them to an
// address. It never fails; errors degrade to UnknownLocation.
type GeoService struct {
	client     *resty.Client
	ipURL      string
	reverseURL string
	enabled    bool
	log        *zap.Logger
}

func NewGeoService(cfg *config.GeoConfig, log *zap.Logger) *GeoService {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	return &GeoService{
		client:     client,
		ipURL:      strings.TrimRight(cfg.IPURL, "/"),
		reverseURL: cfg.ReverseURL,
		enabled:    cfg.Enabled,
		log:        log.Named("geo"),
	}
}

func (s *GeoService) Locate(ctx context.Context, ip string) Location {
	if !s.enabled {
		return UnknownLocation()
	}

	lat, lon, err := s.lookupIP(ctx, ip)
	if err != nil {
		s.log.Warn("could not determine location", zap.String("ip", ip), zap.Error(err))
		return UnknownLocation()
	}

	loc := UnknownLocation()
	loc.LatLong = fmt.Sprintf("[%s, %s]", formatCoord(lat), formatCoord(lon))

	addr, err := s.reverse(ctx, lat, lon)
	if err != nil {
		s.log.Warn("reverse geocoding failed", zap.String("latlong", loc.LatLong), zap.Error(err))
		return loc
	}
	if v := firstNonEmpty(addr.Get("city").String(), addr.Get("town").String(), addr.Get("village").String()); v != "" {
		loc.City = v
	}
	if v := addr.Get("state").String(); v != "" {
		loc.State = v
	}
	if v := addr.Get("country").String(); v != "" {
		loc.Country = v
	}
	return loc
}

// lookupIP asks the IP service for coordinates. Private and loopback
// addresses resolve the server's own public address instead.
func (s *GeoService) lookupIP(ctx context.Context, ip string) (float64, float64, error) {
	endpoint := s.ipURL
	if parsed := net.ParseIP(ip); parsed != nil && !parsed.IsLoopback() && !parsed.IsPrivate() {
		endpoint = s.ipURL + "/" + url.PathEscape(ip)
	}

	resp, err := s.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return 0, 0, fmt.Errorf("ip lookup: %w", err)
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("ip lookup: unexpected status %d", resp.StatusCode())
	}

	body := resp.String()
	if status := gjson.Get(body, "status").String(); status != "" && status != "success" {
		return 0, 0, fmt.Errorf("ip lookup: status %q: %s", status, gjson.Get(body, "message").String())
	}
	lat, lon := gjson.Get(body, "lat"), gjson.Get(body, "lon")
	if !lat.Exists() || !lon.Exists() {
		return 0, 0, fmt.Errorf("ip lookup: response has no coordinates")
	}
	return lat.Float(), lon.Float(), nil
}

func (s *GeoService) reverse(ctx context.Context, lat, lon float64) (gjson.Result, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":          "jsonv2",
			"lat":             formatCoord(lat),
			"lon":             formatCoord(lon),
			"accept-language": "en",
		}).
		Get(s.reverseURL)
	if err != nil {
		return gjson.Result{}, err
	}
	if resp.IsError() {
		return gjson.Result{}, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	addr := gjson.Get(resp.String(), "address")
	if !addr.Exists() {
		return gjson.Result{}, fmt.Errorf("response has no address")
	}
	return addr, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
