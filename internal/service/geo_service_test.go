package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/stretchr/testify/assert"
)

func newGeoTestServer(t *testing.T, ipBody, reverseBody string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/json/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ipBody))
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ipBody))
	})
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.Query().Get("lat")+","+r.URL.Query().Get("lon"))
		if reverseBody == "" {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reverseBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &paths
}

func geoConfig(base string) *config.GeoConfig {
	return &config.GeoConfig{
		Enabled:    true,
		IPURL:      base + "/json",
		ReverseURL: base + "/reverse",
		UserAgent:  "resume-analyzer-test",
		Timeout:    2 * time.Second,
	}
}

func TestGeoServiceLocate(t *testing.T) {
	srv, paths := newGeoTestServer(t,
		`{"status":"success","lat":-6.2,"lon":106.8}`,
		`{"address":{"town":"Jakarta","state":"DKI Jakarta","country":"Indonesia"}}`,
	)
	s := NewGeoService(geoConfig(srv.URL), nil)

	loc := s.Locate(context.Background(), "8.8.8.8")
	assert.Equal(t, Location{LatLong: "[-6.2, 106.8]", City: "Jakarta", State: "DKI Jakarta", Country: "Indonesia"}, loc)
	assert.Equal(t, []string{"/json/8.8.8.8", "/reverse?-6.2,106.8"}, *paths)
}

func TestGeoServiceLocate_PrivateIPUsesSelfLookup(t *testing.T) {
	srv, paths := newGeoTestServer(t, `{"status":"success","lat":1,"lon":2}`, `{"address":{"city":"X"}}`)
	s := NewGeoService(geoConfig(srv.URL), nil)

	s.Locate(context.Background(), "127.0.0.1")
	assert.Equal(t, "/json", (*paths)[0])
}

func TestGeoServiceLocate_Failures(t *testing.T) {
	srv, _ := newGeoTestServer(t, `{"status":"fail","message":"reserved range"}`, "")
	s := NewGeoService(geoConfig(srv.URL), nil)
	assert.Equal(t, UnknownLocation(), s.Locate(context.Background(), "8.8.8.8"))

	srv, _ = newGeoTestServer(t, `{"status":"success","lat":10.5,"lon":20}`, "")
	s = NewGeoService(geoConfig(srv.URL), nil)
	loc := s.Locate(context.Background(), "8.8.8.8")
	assert.Equal(t, "[10.5, 20]", loc.LatLong)
	assert.Equal(t, "Unknown", loc.City)
	assert.Equal(t, "Unknown", loc.Country)
}

func TestGeoServiceLocate_Disabled(t *testing.T) {
	cfg := geoConfig("http://127.0.0.1:1")
	cfg.Enabled = false
	assert.Equal(t, UnknownLocation(), NewGeoService(cfg, nil).Locate(context.Background(), "8.8.8.8"))
}
