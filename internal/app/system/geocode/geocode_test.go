package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/makanenak/makanenak/internal/app/system/geocode"
	"github.com/makanenak/makanenak/internal/domain/models"
)

func TestLookup_FirstResultWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Jalan Sudirman, Jakarta" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"-6.2100","lon":"106.8200"},{"lat":"0","lon":"0"}]`))
	}))
	defer srv.Close()

	c := geocode.New(srv.URL, zap.NewNop())
	lat, lng, found := c.Lookup(context.Background(), "Jalan Sudirman, Jakarta")
	if !found {
		t.Fatal("expected a match")
	}
	if lat != -6.21 || lng != 106.82 {
		t.Errorf("got (%v, %v)", lat, lng)
	}
}

func TestLookup_NoResultsFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := geocode.New(srv.URL, zap.NewNop())
	lat, lng, found := c.Lookup(context.Background(), "nowhere at all")
	if found {
		t.Fatal("expected no match")
	}
	if lat != models.DefaultLat || lng != models.DefaultLng {
		t.Errorf("expected default coordinates, got (%v, %v)", lat, lng)
	}
}

func TestLookup_ServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := geocode.New(srv.URL, zap.NewNop())
	lat, lng, found := c.Lookup(context.Background(), "Jalan Sudirman")
	if found {
		t.Fatal("expected no match on server error")
	}
	if lat != models.DefaultLat || lng != models.DefaultLng {
		t.Errorf("expected default coordinates, got (%v, %v)", lat, lng)
	}
}

func TestLookup_EmptyAddress(t *testing.T) {
	c := geocode.New("http://invalid.test", zap.NewNop())
	lat, lng, found := c.Lookup(context.Background(), "")
	if found {
		t.Fatal("expected no match for empty address")
	}
	if lat != models.DefaultLat || lng != models.DefaultLng {
		t.Errorf("expected default coordinates, got (%v, %v)", lat, lng)
	}
}

func TestReverse_ReturnsDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lat"); got != "-6.21" {
			t.Errorf("unexpected lat %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Jalan Sudirman, Jakarta Pusat, Indonesia"}`))
	}))
	defer srv.Close()

	c := geocode.New(srv.URL, zap.NewNop())
	addr, found := c.Reverse(context.Background(), -6.21, 106.82)
	if !found {
		t.Fatal("expected a match")
	}
	if addr != "Jalan Sudirman, Jakarta Pusat, Indonesia" {
		t.Errorf("got %q", addr)
	}
}

func TestReverse_EmptyResultNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := geocode.New(srv.URL, zap.NewNop())
	if _, found := c.Reverse(context.Background(), -6.21, 106.82); found {
		t.Fatal("expected no match")
	}
}

func TestDirectionsURL(t *testing.T) {
	got := geocode.DirectionsURL(-6.2088, 106.8456)
	want := "https://www.google.com/maps/dir/?api=1&destination=-6.2088,106.8456"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
