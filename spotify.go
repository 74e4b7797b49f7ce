package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Track is a search hit used to fill the add-song form.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	AlbumImage string `json:"albumImage"`
	SongLink   string `json:"songLink"`
	PreviewURL string `json:"previewUrl"`
	DurationMs int64  `json:"durationMs"`
}

type TrackSearcher interface {
	Search(ctx context.Context, query string) ([]Track, error)
}

const (
	spotifySearchLimit = 10
	// tokens are refreshed this long before Spotify says they expire
	spotifyTokenEarlyExpiry = 10 * time.Minute
)

var errEmptyQuery = errors.New("missing search query")

// NewTrackSearcher returns a Spotify client when credentials are configured
// and the built-in catalogue otherwise.
func NewTrackSearcher(cfg SpotifyConfig, logger *log.Logger) TrackSearcher {
	if !cfg.Enabled() {
		logger.Warn("Spotify credentials not configured, using mock track catalogue")
		return NewMockCatalogue()
	}
	return NewSpotifyClient(context.Background(), cfg)
}

type SpotifyClient struct {
	apiURL string
	client *http.Client
}

func NewSpotifyClient(ctx context.Context, cfg SpotifyConfig) *SpotifyClient {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	src := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(ctx), spotifyTokenEarlyExpiry)
	client := oauth2.NewClient(ctx, src)
	client.Timeout = 10 * time.Second

	return &SpotifyClient{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		client: client,
	}
}

func (s *SpotifyClient) Search(ctx context.Context, query string) ([]Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errEmptyQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/v1/search", nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Add("q", query)
	q.Add("type", "track")
	q.Add("limit", fmt.Sprint(spotifySearchLimit))
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search tracks: spotify replied %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	response := struct {
		Tracks struct {
			Items []struct {
				ID         string `json:"id"`
				Name       string `json:"name"`
				PreviewURL string `json:"preview_url"`
				DurationMs int64  `json:"duration_ms"`
				Artists    []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Name   string `json:"name"`
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
				ExternalURLs struct {
					Spotify string `json:"spotify"`
				} `json:"external_urls"`
			} `json:"items"`
		} `json:"tracks"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode spotify response: %w", err)
	}

	tracks := make([]Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		artists := make([]string, 0, len(item.Artists))
		for _, a := range item.Artists {
			artists = append(artists, a.Name)
		}
		t := Track{
			ID:         item.ID,
			Name:       item.Name,
			Artist:     strings.Join(artists, ", "),
			Album:      item.Album.Name,
			SongLink:   item.ExternalURLs.Spotify,
			PreviewURL: item.PreviewURL,
			DurationMs: item.DurationMs,
		}
		if len(item.Album.Images) > 0 {
			t.AlbumImage = item.Album.Images[0].URL
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// MockCatalogue answers searches from a fixed track list.
type MockCatalogue struct {
	tracks []Track
}

func NewMockCatalogue() *MockCatalogue {
	return &MockCatalogue{tracks: []Track{
		{
			ID:         "mock_track1",
			Name:       "Blinding Lights",
			Artist:     "The Weeknd",
			Album:      "After Hours",
			AlbumImage: "https://i.scdn.co/image/ab67616d0000b273c06f0e8b33d2d5bb0f36c8de",
			SongLink:   "https://open.spotify.com/track/0VjIjW4GlULA64jZtv6X1N",
			DurationMs: 200040,
		},
		{
			ID:         "mock_track2",
			Name:       "Watermelon Sugar",
			Artist:     "Harry Styles",
			Album:      "Fine Line",
			AlbumImage: "https://i.scdn.co/image/ab67616d0000b273d9985092cd88399b68fe3f85",
			SongLink:   "https://open.spotify.com/track/6UelLqGlWMcVH1E5c4H7lY",
			DurationMs: 174000,
		},
		{
			ID:         "mock_track3",
			Name:       "Levitating",
			Artist:     "Dua Lipa",
			Album:      "Future Nostalgia",
			AlbumImage: "https://i.scdn.co/image/ab67616d0000b273c8b444df094279e70d0ed856",
			SongLink:   "https://open.spotify.com/track/463CkQjx2Zk1yXoBuierM9",
			DurationMs: 203064,
		},
	}}
}

func (m *MockCatalogue) Search(_ context.Context, query string) ([]Track, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, errEmptyQuery
	}
	out := make([]Track, 0)
	for _, t := range m.tracks {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Artist), q) ||
			strings.Contains(strings.ToLower(t.Album), q) {
			out = append(out, t)
		}
	}
	return out, nil
}
