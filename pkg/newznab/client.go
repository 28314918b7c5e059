// Package newznab implements the Newznab indexer feed protocol. The engine
// polls each configured indexer's recent-release feed once per cycle.
package newznab

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Category sets for the two managed types.
var (
	MovieCategories  = []int{2000, 2010, 2020, 2030, 2040, 2045, 2050}
	SeriesCategories = []int{5000, 5010, 5020, 5030, 5040, 5045, 5050, 5070}
)

// Item is one release entry from an indexer feed.
type Item struct {
	Title       string
	GUID        string
	DownloadURL string
	Size        int64
	ExternalID  int64 // tmdbid/tvdbid attribute, 0 = absent
	Season      int
	Episode     int
	PublishDate time.Time
}

// Client polls a single Newznab indexer.
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	priority   int
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a feed client for one indexer. Lower priority wins when
// the engine picks between indexers.
func NewClient(name, baseURL, apiKey string, priority int, log *slog.Logger) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "newznab", "indexer", name)
	}
	return &Client{
		name:     name,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		priority: priority,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: clientLog,
	}
}

// Name returns the indexer name.
func (c *Client) Name() string { return c.name }

// Priority returns the configured indexer priority.
func (c *Client) Priority() int { return c.priority }

type rssResponse struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title     string        `xml:"title"`
	GUID      string        `xml:"guid"`
	Link      string        `xml:"link"`
	Size      int64         `xml:"size"`
	PubDate   string        `xml:"pubDate"`
	Enclosure rssEnclosure  `xml:"enclosure"`
	Attrs     []newznabAttr `xml:"http://www.newznab.com/DTD/2010/feeds/attributes/ attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
}

type newznabAttr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Recent fetches the indexer's latest releases for the given categories.
// An empty query is a feed poll, which Newznab serves newest-first.
func (c *Client) Recent(ctx context.Context, categories []int) ([]Item, error) {
	start := time.Now()

	reqURL, err := url.Parse(c.baseURL + "/api")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", "search")
	params.Set("limit", "100")
	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, cat := range categories {
			cats[i] = strconv.Itoa(cat)
		}
		params.Set("cat", strings.Join(cats, ","))
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	items := make([]Item, 0, len(rss.Channel.Items))
	for _, raw := range rss.Channel.Items {
		items = append(items, itemFromRSS(raw))
	}

	if c.log != nil {
		c.log.Debug("feed poll complete", "results", len(items),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return items, nil
}

func itemFromRSS(raw rssItem) Item {
	item := Item{
		Title:       raw.Title,
		GUID:        raw.GUID,
		DownloadURL: raw.Link,
		Size:        raw.Size,
	}

	if raw.Enclosure.Length > 0 {
		item.Size = raw.Enclosure.Length
	}
	if item.DownloadURL == "" {
		item.DownloadURL = raw.Enclosure.URL
	}

	if raw.PubDate != "" {
		for _, format := range []string{
			time.RFC1123Z,
			"Mon, 02 Jan 2006 15:04:05 MST",
			time.RFC1123,
		} {
			if t, err := time.Parse(format, raw.PubDate); err == nil {
				item.PublishDate = t
				break
			}
		}
	}

	for _, attr := range raw.Attrs {
		switch attr.Name {
		case "size":
			if item.Size == 0 {
				item.Size, _ = strconv.ParseInt(attr.Value, 10, 64)
			}
		case "tmdbid", "tvdbid":
			if item.ExternalID == 0 {
				item.ExternalID, _ = strconv.ParseInt(attr.Value, 10, 64)
			}
		case "season":
			item.Season, _ = strconv.Atoi(strings.TrimPrefix(strings.ToUpper(attr.Value), "S"))
		case "episode":
			item.Episode, _ = strconv.Atoi(strings.TrimPrefix(strings.ToUpper(attr.Value), "E"))
		}
	}

	return item
}
