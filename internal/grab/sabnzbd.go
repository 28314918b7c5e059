// Package grab submits chosen releases to a download client. Only queue
// submission lives here; download tracking and import are outside the
// engine's scope.
package grab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/grabarr/pkg/release"
)

var (
	// ErrClientUnavailable indicates the download client could not be reached.
	ErrClientUnavailable = errors.New("download client unavailable")

	// ErrInvalidAPIKey indicates the download client rejected the API key.
	ErrInvalidAPIKey = errors.New("invalid download client api key")
)

// SABnzbd submits NZB URLs to a SABnzbd queue.
type SABnzbd struct {
	baseURL    string
	apiKey     string
	category   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewSABnzbd creates a SABnzbd submission client.
func NewSABnzbd(baseURL, apiKey, category string, log *slog.Logger) *SABnzbd {
	if log == nil {
		log = slog.Default()
	}
	return &SABnzbd{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		category: category,
		log:      log.With("component", "sabnzbd"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type addResponse struct {
	Status bool     `json:"status"`
	NzoIDs []string `json:"nzo_ids"`
	Error  string   `json:"error"`
}

// Grab sends a release's download URL to SABnzbd. It implements the
// engine's Grabber contract. SABnzbd itself deduplicates repeated URLs, so
// a re-submitted release is harmless.
func (c *SABnzbd) Grab(ctx context.Context, rel release.Release) error {
	if rel.DownloadURL == "" {
		return fmt.Errorf("release %q has no download url", rel.Title)
	}

	params := url.Values{
		"apikey": {c.apiKey},
		"output": {"json"},
		"mode":   {"addurl"},
		"name":   {rel.DownloadURL},
		"cat":    {c.category},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("add request failed", "error", err)
		return ErrClientUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body addResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !body.Status {
		if isAPIKeyError(body.Error) {
			return ErrInvalidAPIKey
		}
		return fmt.Errorf("sabnzbd add failed: %s", body.Error)
	}
	if len(body.NzoIDs) == 0 {
		return errors.New("sabnzbd returned no nzo_id")
	}

	c.log.Info("release queued", "release", rel.Title, "nzo_id", body.NzoIDs[0])
	return nil
}

func isAPIKeyError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "api key") || strings.Contains(lower, "apikey")
}
