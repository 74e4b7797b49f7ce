package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const spotifySearchBody = `{
  "tracks": {
    "items": [
      {
        "id": "t1",
        "name": "Song One",
        "preview_url": "http://preview/t1",
        "duration_ms": 180000,
        "artists": [{"name": "A"}, {"name": "B"}],
        "album": {"name": "Album", "images": [{"url": "http://img/big"}, {"url": "http://img/small"}]},
        "external_urls": {"spotify": "https://open.spotify.com/track/t1"}
      },
      {
        "id": "t2",
        "name": "No Art",
        "artists": [{"name": "C"}],
        "album": {"name": "Bare", "images": []},
        "external_urls": {"spotify": "https://open.spotify.com/track/t2"}
      }
    ]
  }
}`

func newFakeSpotify(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		if q.Get("type") != "track" || q.Get("limit") != "10" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if q.Get("q") == "fail" {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "down")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, spotifySearchBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSpotifyClientSearch(t *testing.T) {
	var tokenCalls int32
	srv := newFakeSpotify(t, &tokenCalls)
	client := NewSpotifyClient(context.Background(), SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/api/token",
		APIURL:       srv.URL + "/",
	})

	tracks, err := client.Search(context.Background(), "song")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	want := Track{
		ID:         "t1",
		Name:       "Song One",
		Artist:     "A, B",
		Album:      "Album",
		AlbumImage: "http://img/big",
		SongLink:   "https://open.spotify.com/track/t1",
		PreviewURL: "http://preview/t1",
		DurationMs: 180000,
	}
	if tracks[0] != want {
		t.Fatalf("got %+v, want %+v", tracks[0], want)
	}
	if tracks[1].AlbumImage != "" {
		t.Fatalf("expected empty album image, got %q", tracks[1].AlbumImage)
	}

	if _, err := client.Search(context.Background(), "again"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&tokenCalls); n != 1 {
		t.Fatalf("token fetched %d times, want 1", n)
	}
}

func TestSpotifyClientErrors(t *testing.T) {
	var tokenCalls int32
	srv := newFakeSpotify(t, &tokenCalls)
	client := NewSpotifyClient(context.Background(), SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/api/token",
		APIURL:       srv.URL,
	})

	if _, err := client.Search(context.Background(), " "); !errors.Is(err, errEmptyQuery) {
		t.Fatalf("expected empty query error, got %v", err)
	}
	if _, err := client.Search(context.Background(), "fail"); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestMockCatalogue(t *testing.T) {
	m := NewMockCatalogue()
	tests := []struct {
		query string
		want  []string
	}{
		{"LIGHTS", []string{"mock_track1"}},
		{"harry", []string{"mock_track2"}},
		{"future", []string{"mock_track3"}},
		{"e", []string{"mock_track1", "mock_track2", "mock_track3"}},
		{"nothing matches", nil},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, err := m.Search(context.Background(), tc.query)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d tracks, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("track %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
	if _, err := m.Search(context.Background(), ""); !errors.Is(err, errEmptyQuery) {
		t.Fatalf("expected empty query error, got %v", err)
	}
}

func TestNewTrackSearcherFallsBackToMock(t *testing.T) {
	if _, ok := NewTrackSearcher(SpotifyConfig{ClientID: "only-id"}, quietLogger()).(*MockCatalogue); !ok {
		t.Fatal("expected mock catalogue without a secret")
	}
	s := NewTrackSearcher(SpotifyConfig{ClientID: "id", ClientSecret: "s", APIURL: "http://x"}, quietLogger())
	if _, ok := s.(*SpotifyClient); !ok {
		t.Fatalf("expected spotify client, got %T", s)
	}
}
