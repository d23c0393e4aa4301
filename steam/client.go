// Package steam wraps the handful of Steam Web API and storefront endpoints
// the report needs. All lookups go through a shared fetch.Fetcher, so a URL
// requested twice (the appdetails endpoint feeds two fields) costs one call.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/backlogr/fetch"
)

// DefaultBeatenThreshold is the fraction of achievements that must be
// unlocked before a game counts as beaten.
const DefaultBeatenThreshold = 0.5

const (
	defaultAPIBase   = "https://api.steampowered.com"
	defaultStoreBase = "https://store.steampowered.com"
)

// Client wraps the Steam Web API and the storefront API.
type Client struct {
	apiBase         string
	storeBase       string
	apiKey          string
	steamID         string
	fetcher         *fetch.Fetcher
	logger          zerolog.Logger
	beatenThreshold float64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIBase overrides the Web API base URL.
func WithAPIBase(base string) ClientOption {
	return func(c *Client) {
		c.apiBase = strings.TrimRight(base, "/")
	}
}

// WithStoreBase overrides the storefront base URL.
func WithStoreBase(base string) ClientOption {
	return func(c *Client) {
		c.storeBase = strings.TrimRight(base, "/")
	}
}

// WithBeatenThreshold sets the unlocked-achievements fraction above which a
// game counts as beaten.
func WithBeatenThreshold(threshold float64) ClientOption {
	return func(c *Client) {
		if threshold > 0 {
			c.beatenThreshold = threshold
		}
	}
}

// NewClient creates a new Steam client.
func NewClient(apiKey, steamID string, fetcher *fetch.Fetcher, logger zerolog.Logger, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if steamID == "" {
		return nil, ErrMissingSteamID
	}

	client := &Client{
		apiBase:         defaultAPIBase,
		storeBase:       defaultStoreBase,
		apiKey:          apiKey,
		steamID:         steamID,
		fetcher:         fetcher,
		logger:          logger,
		beatenThreshold: DefaultBeatenThreshold,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// OwnedGames retrieves the account's owned games, in the order the API
// returns them. Unlike the per-game lookups, a failure here is fatal to the
// whole run and is returned to the caller.
func (c *Client) OwnedGames(ctx context.Context) ([]OwnedGame, error) {
	params := url.Values{
		"key":                       {c.apiKey},
		"steamid":                   {c.steamID},
		"include_appinfo":           {"true"},
		"include_played_free_games": {"true"},
		"format":                    {"json"},
	}
	requestURL := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v0001/?%s", c.apiBase, params.Encode())

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned games: %w", err)
	}

	var response ownedGamesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse owned games response: %w", err)
	}

	c.logger.Debug().Int("count", len(response.Response.Games)).Msg("Retrieved owned games")
	return response.Response.Games, nil
}

// ReviewSummary returns the review-score label for a game, e.g.
// "Overwhelmingly Positive".
func (c *Client) ReviewSummary(ctx context.Context, appID int) Field {
	requestURL := fmt.Sprintf("%s/appreviews/%d?json=1&num_per_page=1", c.storeBase, appID)

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		c.logger.Debug().Err(err).Int("appid", appID).Msg("Failed to fetch reviews")
		return Unavailable(ErrFetchingReviews)
	}

	var response reviewsResponse
	if err := json.Unmarshal(body, &response); err != nil || response.QuerySummary == nil || response.QuerySummary.ReviewScoreDesc == "" {
		return Unavailable(NoReviews)
	}

	return Ok(response.QuerySummary.ReviewScoreDesc)
}

// MetacriticScore returns the game's Metacritic score as a display value.
func (c *Client) MetacriticScore(ctx context.Context, appID int) Field {
	details, err := c.appDetails(ctx, appID)
	if err != nil {
		c.logger.Debug().Err(err).Int("appid", appID).Msg("Failed to fetch app details")
		return Unavailable(ErrFetchingScore)
	}

	if details == nil || details.Data.Metacritic == nil {
		return Unavailable(NoScore)
	}

	return Ok(strconv.Itoa(details.Data.Metacritic.Score))
}

// ReleaseDate returns the game's release date reformatted to YYYY-MM-DD.
func (c *Client) ReleaseDate(ctx context.Context, appID int) Field {
	details, err := c.appDetails(ctx, appID)
	if err != nil {
		c.logger.Debug().Err(err).Int("appid", appID).Msg("Failed to fetch app details")
		return Unavailable(ErrFetchingReleaseDate)
	}

	if details == nil || details.Data.ReleaseDate == nil {
		return Unavailable(UnknownReleaseDate)
	}

	return formatReleaseDate(details.Data.ReleaseDate.Date)
}

// Beaten reports whether at least beatenThreshold of the game's achievements
// are unlocked for this account. Games without achievement data, and any
// fetch failure, count as not beaten.
func (c *Client) Beaten(ctx context.Context, appID int) bool {
	params := url.Values{
		"appid":   {strconv.Itoa(appID)},
		"key":     {c.apiKey},
		"steamid": {c.steamID},
	}
	requestURL := fmt.Sprintf("%s/ISteamUserStats/GetPlayerAchievements/v0001/?%s", c.apiBase, params.Encode())

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		c.logger.Debug().Err(err).Int("appid", appID).Msg("Failed to fetch achievements")
		return false
	}

	var response playerAchievementsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return false
	}

	achievements := response.PlayerStats.Achievements
	if len(achievements) == 0 {
		return false
	}

	var unlocked int
	for _, ach := range achievements {
		if ach.Achieved != 0 {
			unlocked++
		}
	}

	return float64(unlocked) >= c.beatenThreshold*float64(len(achievements))
}

// appDetails fetches the storefront appdetails entry for appID. Both the
// Metacritic and release-date lookups land on the same URL, so the second
// one is served from the fetch cache.
func (c *Client) appDetails(ctx context.Context, appID int) (*appDetails, error) {
	requestURL := fmt.Sprintf("%s/api/appdetails?appids=%d", c.storeBase, appID)

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var response map[string]appDetails
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse app details: %w", err)
	}

	// An appid the storefront does not know is absent data, not an error.
	details, ok := response[strconv.Itoa(appID)]
	if !ok {
		return nil, nil
	}

	return &details, nil
}

// formatReleaseDate converts the storefront's "21 Mar, 2020" textual format
// to ISO YYYY-MM-DD.
func formatReleaseDate(date string) Field {
	parsed, err := time.Parse("2 Jan, 2006", date)
	if err != nil {
		return Unavailable(UnknownReleaseDate)
	}
	return Ok(parsed.Format("2006-01-02"))
}
