package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/backlogr/fetch"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher := fetch.New(zerolog.Nop(), fetch.WithSleep(func(time.Duration) {}))
	opts = append([]ClientOption{WithAPIBase(server.URL), WithStoreBase(server.URL)}, opts...)

	client, err := NewClient("test-key", "7656119", fetcher, zerolog.Nop(), opts...)
	require.NoError(t, err)

	return client, server
}

func TestNewClient(t *testing.T) {
	fetcher := fetch.New(zerolog.Nop())

	tests := []struct {
		name    string
		apiKey  string
		steamID string
		wantErr error
	}{
		{
			name:    "valid config",
			apiKey:  "test-key",
			steamID: "7656119",
		},
		{
			name:    "missing API key",
			steamID: "7656119",
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "missing steam ID",
			apiKey:  "test-key",
			wantErr: ErrMissingSteamID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, tt.steamID, fetcher, zerolog.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestOwnedGames(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v0001/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "7656119", r.URL.Query().Get("steamid"))
		assert.Equal(t, "true", r.URL.Query().Get("include_appinfo"))

		fmt.Fprint(w, `{"response":{"game_count":2,"games":[
			{"appid":620,"name":"Portal 2","playtime_forever":840,"rtime_last_played":1584748800},
			{"appid":440,"name":"Team Fortress 2","playtime_forever":0,"rtime_last_played":0}
		]}}`)
	}))

	games, err := client.OwnedGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, 620, games[0].AppID)
	assert.Equal(t, "Portal 2", games[0].Name)
	assert.Equal(t, 840, games[0].PlaytimeForever)
	assert.Equal(t, int64(1584748800), games[0].LastPlayed)
	assert.Equal(t, int64(0), games[1].LastPlayed)
}

func TestOwnedGamesErrorIsFatal(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.OwnedGames(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get owned games")
}

func TestOwnedGamesEmptyLibrary(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{}}`)
	}))

	games, err := client.OwnedGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestReviewSummary(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		ok     bool
	}{
		{
			name: "summary present",
			body: `{"query_summary":{"review_score_desc":"Overwhelmingly Positive"}}`,
			want: "Overwhelmingly Positive",
			ok:   true,
		},
		{
			name: "no summary",
			body: `{"success":1}`,
			want: NoReviews,
		},
		{
			name:   "request failure",
			status: http.StatusBadGateway,
			want:   ErrFetchingReviews,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/appreviews/620", r.URL.Path)
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				fmt.Fprint(w, tt.body)
			}))

			field := client.ReviewSummary(context.Background(), 620)
			assert.Equal(t, tt.ok, field.OK())
			assert.Equal(t, tt.want, field.Display())
		})
	}
}

func TestMetacriticScore(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		ok     bool
	}{
		{
			name: "score present",
			body: `{"620":{"success":true,"data":{"metacritic":{"score":95,"url":"https://example.com"}}}}`,
			want: "95",
			ok:   true,
		},
		{
			name: "no metacritic data",
			body: `{"620":{"success":true,"data":{}}}`,
			want: NoScore,
		},
		{
			name: "unknown appid",
			body: `{}`,
			want: NoScore,
		},
		{
			name:   "request failure",
			status: http.StatusInternalServerError,
			want:   ErrFetchingScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/appdetails", r.URL.Path)
				assert.Equal(t, "620", r.URL.Query().Get("appids"))
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				fmt.Fprint(w, tt.body)
			}))

			field := client.MetacriticScore(context.Background(), 620)
			assert.Equal(t, tt.ok, field.OK())
			assert.Equal(t, tt.want, field.Display())
		})
	}
}

func TestReleaseDate(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		ok     bool
	}{
		{
			name: "parsable date",
			body: `{"620":{"success":true,"data":{"release_date":{"coming_soon":false,"date":"21 Mar, 2020"}}}}`,
			want: "2020-03-21",
			ok:   true,
		},
		{
			name: "single digit day",
			body: `{"620":{"success":true,"data":{"release_date":{"date":"5 Nov, 1998"}}}}`,
			want: "1998-11-05",
			ok:   true,
		},
		{
			name: "unparsable date",
			body: `{"620":{"success":true,"data":{"release_date":{"date":"Coming soon"}}}}`,
			want: UnknownReleaseDate,
		},
		{
			name: "release date absent",
			body: `{"620":{"success":true,"data":{}}}`,
			want: UnknownReleaseDate,
		},
		{
			name:   "request failure",
			status: http.StatusServiceUnavailable,
			want:   ErrFetchingReleaseDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				fmt.Fprint(w, tt.body)
			}))

			field := client.ReleaseDate(context.Background(), 620)
			assert.Equal(t, tt.ok, field.OK())
			assert.Equal(t, tt.want, field.Display())
		})
	}
}

func TestAppDetailsFetchedOnce(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"620":{"success":true,"data":{
			"metacritic":{"score":95},
			"release_date":{"date":"18 Apr, 2011"}
		}}}`)
	}))

	ctx := context.Background()
	score := client.MetacriticScore(ctx, 620)
	date := client.ReleaseDate(ctx, 620)

	assert.Equal(t, "95", score.Display())
	assert.Equal(t, "2011-04-18", date.Display())
	assert.Equal(t, 1, calls, "both fields come from one appdetails request")
}

func TestBeaten(t *testing.T) {
	achievements := func(unlocked, total int) string {
		body := `{"playerstats":{"success":true,"achievements":[`
		for i := 0; i < total; i++ {
			achieved := 0
			if i < unlocked {
				achieved = 1
			}
			if i > 0 {
				body += ","
			}
			body += fmt.Sprintf(`{"apiname":"ACH_%d","achieved":%d}`, i, achieved)
		}
		return body + `]}}`
	}

	tests := []struct {
		name   string
		status int
		body   string
		opts   []ClientOption
		want   bool
	}{
		{
			name: "half unlocked is beaten",
			body: achievements(2, 4),
			want: true,
		},
		{
			name: "below half is not beaten",
			body: achievements(1, 4),
			want: false,
		},
		{
			name: "all unlocked",
			body: achievements(3, 3),
			want: true,
		},
		{
			name: "no achievement data",
			body: `{"playerstats":{"success":false}}`,
			want: false,
		},
		{
			name:   "request failure",
			status: http.StatusBadRequest,
			want:   false,
		},
		{
			name: "custom threshold",
			body: achievements(2, 4),
			opts: []ClientOption{WithBeatenThreshold(0.75)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/ISteamUserStats/GetPlayerAchievements/v0001/", r.URL.Path)
				assert.Equal(t, "620", r.URL.Query().Get("appid"))
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				fmt.Fprint(w, tt.body)
			}), tt.opts...)

			assert.Equal(t, tt.want, client.Beaten(context.Background(), 620))
		})
	}
}

func TestFormatReleaseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"21 Mar, 2020", "2020-03-21", true},
		{"02 Jan, 1999", "1999-01-02", true},
		{"2020-03-21", UnknownReleaseDate, false},
		{"", UnknownReleaseDate, false},
		{"To be announced", UnknownReleaseDate, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field := formatReleaseDate(tt.input)
			assert.Equal(t, tt.ok, field.OK())
			assert.Equal(t, tt.want, field.Display())
		})
	}
}

func TestFieldDisplay(t *testing.T) {
	assert.Equal(t, "95", Ok("95").Display())
	assert.True(t, Ok("95").OK())
	assert.Equal(t, NoScore, Unavailable(NoScore).Display())
	assert.False(t, Unavailable(NoScore).OK())
}
