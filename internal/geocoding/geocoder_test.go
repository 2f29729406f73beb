package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeocoder(t *testing.T) {
	g := NewGeocoder("key")
	require.NotNil(t, g)
	assert.Equal(t, defaultBaseURL, g.baseURL)
	assert.Equal(t, 10*time.Second, g.httpClient.Timeout)
	assert.Equal(t, DefaultLimit, g.limit)
	assert.Equal(t, DefaultCountry, g.defaultCountry)
}

func fixtureServer(t *testing.T, wantPath, fixture string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		if r.URL.Query().Get("appid") != "secret" {
			t.Error("appid not sent")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
		data, err := os.ReadFile("../../testdata/" + fixture)
		if err != nil {
			t.Fatalf("reading fixture: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
}

func TestGeocode_Zip(t *testing.T) {
	server := fixtureServer(t, "/zip", "geo_zip.json")
	defer server.Close()

	g := NewGeocoder("secret", WithBaseURL(server.URL))
	q, err := g.Parse("02633")
	require.NoError(t, err)

	locs, err := g.Geocode(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, locs, 1)

	assert.Equal(t, "Chatham", locs[0].Name)
	assert.Equal(t, "02633", locs[0].Zip)
	assert.Equal(t, "US", locs[0].Country)
	assert.InDelta(t, 41.6885, locs[0].Coordinates.Latitude, 1e-6)
	assert.InDelta(t, -69.9596, locs[0].Coordinates.Longitude, 1e-6)
}

func TestGeocode_Direct(t *testing.T) {
	var gotQuery, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		data, _ := os.ReadFile("../../testdata/geo_direct.json")
		w.Write(data)
	}))
	defer server.Close()

	g := NewGeocoder("secret", WithBaseURL(server.URL))
	q, err := g.Parse("Portland")
	require.NoError(t, err)

	locs, err := g.Geocode(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "Portland", gotQuery)
	assert.Equal(t, "5", gotLimit)
	require.Len(t, locs, 2)
	assert.Equal(t, "Oregon", locs[0].State)
	assert.Equal(t, "Maine", locs[1].State)
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	g := NewGeocoder("secret", WithBaseURL(server.URL))
	_, err := g.Geocode(context.Background(), Query{Kind: KindPlace, City: "Nowhere"})
	assert.True(t, errors.Is(err, ErrNoResults), "err = %v", err)
}

func TestGeocode_ZipNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"not found"}`))
	}))
	defer server.Close()

	g := NewGeocoder("secret", WithBaseURL(server.URL))
	_, err := g.Geocode(context.Background(), Query{Kind: KindZip, Zip: "00000", Country: "us"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGeocode_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	}))
	defer server.Close()

	g := NewGeocoder("bad", WithBaseURL(server.URL))
	_, err := g.Geocode(context.Background(), Query{Kind: KindPlace, City: "Boston"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Invalid API key."), "err = %v", err)
	assert.False(t, errors.Is(err, ErrNoResults))
}

func TestGeocode_ContextCanceled(t *testing.T) {
	g := NewGeocoder("secret", WithBaseURL("http://127.0.0.1:0"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Geocode(ctx, Query{Kind: KindPlace, City: "Boston"})
	assert.Error(t, err)
}
