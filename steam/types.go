package steam

// OwnedGame is one entry of the owned-games list returned by the
// IPlayerService endpoint.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`  // total playtime in minutes
	LastPlayed      int64  `json:"rtime_last_played"` // epoch seconds, 0 = never played
}

// ownedGamesResponse is the envelope of GetOwnedGames.
type ownedGamesResponse struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

// reviewsResponse is the envelope of the store appreviews endpoint.
type reviewsResponse struct {
	QuerySummary *struct {
		ReviewScoreDesc string `json:"review_score_desc"`
	} `json:"query_summary"`
}

// appDetails is one per-appid entry of the store appdetails endpoint. The
// response body is a map keyed by the appid string.
type appDetails struct {
	Success bool `json:"success"`
	Data    struct {
		Metacritic *struct {
			Score int    `json:"score"`
			URL   string `json:"url"`
		} `json:"metacritic"`
		ReleaseDate *struct {
			ComingSoon bool   `json:"coming_soon"`
			Date       string `json:"date"`
		} `json:"release_date"`
	} `json:"data"`
}

// Achievement is one per-player achievement record. Achieved is 0 or 1.
type Achievement struct {
	APIName  string `json:"apiname"`
	Achieved int    `json:"achieved"`
}

// playerAchievementsResponse is the envelope of GetPlayerAchievements.
type playerAchievementsResponse struct {
	PlayerStats struct {
		Success      bool          `json:"success"`
		Achievements []Achievement `json:"achievements"`
	} `json:"playerstats"`
}
