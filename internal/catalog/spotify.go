// Package catalog proxies catalog search to the Spotify Web API using the
// client-credentials flow. The app token is shared across requests via Redis.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"resonate/internal/cache"
	"resonate/internal/config"
	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

// tokenSkew is subtracted from the upstream expiry so a cached token is never
// served right at its deadline.
const tokenSkew = time.Minute

// Track is a flattened track search result exposed to clients.
type Track struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
}

// Artist is a flattened artist search result.
type Artist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
}

// Album is a flattened album search result.
type Album struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
}

// Results groups one search across the three catalog entity types.
type Results struct {
	Tracks  []Track  `json:"tracks"`
	Artists []Artist `json:"artists"`
	Albums  []Album  `json:"albums"`
}

// Client talks to the Spotify Web API.
type Client struct {
	cfg *config.Config
}

// NewClient returns a catalog client backed by the configured credentials.
func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg}
}

type cachedToken struct {
	AccessToken string `json:"access_token"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Search returns up to limit tracks, artists and albums matching the query.
// A blank query returns an empty result without calling upstream.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) (*Results, error) {
	if query == "" {
		return emptyResults(), nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track,artist,album")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	agent := fiber.AcquireAgent()
	agent.Timeout(requestTimeout)
	req := agent.Request()
	req.Header.SetMethod(fiber.MethodGet)
	req.SetRequestURI(c.cfg.SpotifyAPIURL + "/search?" + params.Encode())
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)

	if err := agent.Parse(); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("catalog search request: %w", err))
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, models.NewInternalError(fmt.Errorf("catalog search: %w", errs[0]))
	}
	if code == fiber.StatusUnauthorized {
		// Upstream revoked the token early; drop it so the next call refreshes.
		cache.Invalidate(ctx, cache.CatalogTokenKey)
		return nil, models.NewInternalError(errors.New("catalog token rejected upstream"))
	}
	if code != fiber.StatusOK {
		return nil, models.NewInternalError(fmt.Errorf("catalog search returned status %d", code))
	}

	return parseResults(body)
}

func emptyResults() *Results {
	return &Results{Tracks: []Track{}, Artists: []Artist{}, Albums: []Album{}}
}

// token returns a valid app token, fetching and caching a fresh one on miss.
func (c *Client) token(ctx context.Context) (string, error) {
	var cached cachedToken
	if found, _ := cache.GetJSON(ctx, cache.CatalogTokenKey, &cached); found && cached.AccessToken != "" {
		return cached.AccessToken, nil
	}

	if c.cfg.SpotifyClientID == "" || c.cfg.SpotifyClientSecret == "" {
		return "", models.NewInternalError(errors.New("catalog credentials not configured"))
	}

	agent := fiber.AcquireAgent()
	agent.Timeout(requestTimeout)
	req := agent.Request()
	req.Header.SetMethod(fiber.MethodPost)
	req.SetRequestURI(c.cfg.SpotifyTokenURL)

	args := fiber.AcquireArgs()
	args.Set("grant_type", "client_credentials")
	agent.Form(args)
	fiber.ReleaseArgs(args)

	agent.BasicAuth(c.cfg.SpotifyClientID, c.cfg.SpotifyClientSecret)

	if err := agent.Parse(); err != nil {
		return "", models.NewInternalError(fmt.Errorf("catalog token request: %w", err))
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", models.NewInternalError(fmt.Errorf("catalog token: %w", errs[0]))
	}
	if code != fiber.StatusOK {
		return "", models.NewInternalError(fmt.Errorf("catalog token endpoint returned status %d", code))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", models.NewInternalError(fmt.Errorf("catalog token decode: %w", err))
	}
	if tok.AccessToken == "" {
		return "", models.NewInternalError(errors.New("catalog token response missing access_token"))
	}

	ttl := time.Duration(tok.ExpiresIn)*time.Second - tokenSkew
	if ttl > 0 {
		_ = cache.SetJSON(ctx, cache.CatalogTokenKey, cachedToken{AccessToken: tok.AccessToken}, ttl)
	}
	return tok.AccessToken, nil
}

type searchImage struct {
	URL string `json:"url"`
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name   string        `json:"name"`
				Images []searchImage `json:"images"`
			} `json:"album"`
			ExternalURLs map[string]string `json:"external_urls"`
		} `json:"items"`
	} `json:"tracks"`
	Artists struct {
		Items []struct {
			ID           string            `json:"id"`
			Name         string            `json:"name"`
			Images       []searchImage     `json:"images"`
			ExternalURLs map[string]string `json:"external_urls"`
		} `json:"items"`
	} `json:"artists"`
	Albums struct {
		Items []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Images       []searchImage     `json:"images"`
			ExternalURLs map[string]string `json:"external_urls"`
		} `json:"items"`
	} `json:"albums"`
}

func parseResults(body []byte) (*Results, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("catalog search decode: %w", err))
	}

	out := emptyResults()
	for _, item := range resp.Tracks.Items {
		t := Track{
			ID:    item.ID,
			Name:  item.Name,
			Album: item.Album.Name,
			URL:   item.ExternalURLs["spotify"],
		}
		if len(item.Artists) > 0 {
			t.Artist = item.Artists[0].Name
		}
		if len(item.Album.Images) > 0 {
			t.ImageURL = item.Album.Images[0].URL
		}
		out.Tracks = append(out.Tracks, t)
	}
	for _, item := range resp.Artists.Items {
		a := Artist{
			ID:   item.ID,
			Name: item.Name,
			URL:  item.ExternalURLs["spotify"],
		}
		if len(item.Images) > 0 {
			a.ImageURL = item.Images[0].URL
		}
		out.Artists = append(out.Artists, a)
	}
	for _, item := range resp.Albums.Items {
		a := Album{
			ID:   item.ID,
			Name: item.Name,
			URL:  item.ExternalURLs["spotify"],
		}
		if len(item.Artists) > 0 {
			a.Artist = item.Artists[0].Name
		}
		if len(item.Images) > 0 {
			a.ImageURL = item.Images[0].URL
		}
		out.Albums = append(out.Albums, a)
	}
	return out, nil
}
