// SPDX-License-Identifier: MPL-2.0

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// maxResponseBytes is the upper bound on a feed response body (10 MB).
// Prevents unbounded memory consumption from a misbehaving feed endpoint.
const maxResponseBytes = 10 << 20

type (
	// TimeModeRow is one row of the combined Time-Mode scoring feed. Cells
	// arrive as strings because the feed is spreadsheet-shaped; blank cells
	// are meaningful (unassigned).
	TimeModeRow struct {
		ModuleName                  string `json:"modulename"`
		ResolvedScore               string `json:"resolvedscore"`
		ResolvedBossPointsPerModule string `json:"resolvedbosspointspermodule"`
		AssignedScore               string `json:"assignedscore"`
		CommunityScore              string `json:"communityscore"`
		TPScore                     string `json:"tpscore"`
	}

	// TwitchPlaysRow is one row of the Twitch-Plays score feed.
	TwitchPlaysRow struct {
		ModuleName string `json:"modulename"`
		TPScore    string `json:"tpscore"`
	}

	// Client fetches the two external scoring feeds.
	Client struct {
		httpClient     *http.Client
		timeModeURL    string
		twitchPlaysURL string
		userAgent      string
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy
// configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(f *Client) {
		f.httpClient = c
	}
}

// WithTimeModeURL sets the Time-Mode feed endpoint. An empty URL disables the
// feed (it behaves as permanently empty).
func WithTimeModeURL(u string) ClientOption {
	return func(f *Client) {
		f.timeModeURL = u
	}
}

// WithTwitchPlaysURL sets the Twitch-Plays feed endpoint. An empty URL
// disables the feed.
func WithTwitchPlaysURL(u string) ClientOption {
	return func(f *Client) {
		f.twitchPlaysURL = u
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(f *Client) {
		f.userAgent = ua
	}
}

// NewClient creates a Client. Defaults: http.DefaultClient, no feed URLs.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		userAgent:  "manualhub/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll fetches both feeds concurrently and returns them indexed for
// merging. Each fetch is isolated: a failure is logged and that feed degrades
// to empty, so external data unavailability never blocks catalog generation.
func (c *Client) FetchAll(ctx context.Context) *Feeds {
	var (
		timeMode    []TimeModeRow
		twitchPlays []TwitchPlaysRow
	)

	var g errgroup.Group
	g.Go(func() error {
		rows, err := fetchRows[TimeModeRow](ctx, c, c.timeModeURL)
		if err != nil {
			slog.Warn("time-mode feed unavailable, continuing without it", "error", err)
			return nil
		}
		timeMode = rows
		return nil
	})
	g.Go(func() error {
		rows, err := fetchRows[TwitchPlaysRow](ctx, c, c.twitchPlaysURL)
		if err != nil {
			slog.Warn("twitch-plays feed unavailable, continuing without it", "error", err)
			return nil
		}
		twitchPlays = rows
		return nil
	})
	_ = g.Wait() // workers never return errors; failures degrade to empty

	return NewFeeds(timeMode, twitchPlays)
}

// fetchRows GETs url and decodes the response as a JSON list of rows.
func fetchRows[T any](ctx context.Context, c *Client, url string) ([]T, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}

	var rows []T
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding feed response: %w", err)
	}
	return rows, nil
}
