package location

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/tidwall/gjson"
)

// Geocoder resolves coordinates into an address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*Location, error)
}

// NominatimConfig configures a Nominatim-compatible reverse geocoder.
type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatim(cfg NominatimConfig) Geocoder {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &nominatim{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (n *nominatim) Reverse(ctx context.Context, lat, lon float64) (*Location, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Nominatim's usage policy rejects anonymous clients.
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("geocoding service unavailable: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream("read geocoding response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("geocoding service returned %d", resp.StatusCode)
	}
	return parseReverse(body, lat, lon)
}

// parseReverse reshapes a jsonv2 reverse response. Nominatim reports misses
// as 200 with an "error" member.
func parseReverse(body []byte, lat, lon float64) (*Location, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperr.Upstream("geocoding service returned invalid JSON")
	}
	doc := gjson.ParseBytes(body)
	if e := doc.Get("error"); e.Exists() {
		return nil, apperr.Upstream("geocoding failed: %s", e.String())
	}

	addr := doc.Get("address")
	loc := &Location{
		DisplayName: doc.Get("display_name").String(),
		Road:        addr.Get("road").String(),
		City:        firstOf(addr, "city", "town", "village", "municipality"),
		State:       addr.Get("state").String(),
		Country:     addr.Get("country").String(),
		CountryCode: addr.Get("country_code").String(),
		Postcode:    addr.Get("postcode").String(),
		Lat:         lat,
		Lon:         lon,
	}
	// lat/lon come back as strings in jsonv2
	if v := doc.Get("lat"); v.Exists() {
		loc.Lat = v.Float()
	}
	if v := doc.Get("lon"); v.Exists() {
		loc.Lon = v.Float()
	}
	return loc, nil
}

func firstOf(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k).String(); v != "" {
			return v
		}
	}
	return ""
}
