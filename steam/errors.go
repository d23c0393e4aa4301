package steam

import (
	"errors"
)

// Common errors
var (
	// ErrMissingAPIKey indicates the Steam Web API key was not provided
	ErrMissingAPIKey = errors.New("steam API key is required")
	// ErrMissingSteamID indicates the account identifier was not provided
	ErrMissingSteamID = errors.New("steam ID is required")
)

// Sentinel display values substituted when enrichment data is unavailable.
const (
	NoReviews              = "No Reviews"
	ErrFetchingReviews     = "Error Fetching Reviews"
	NoScore                = "No Score"
	ErrFetchingScore       = "Error Fetching Metacritic Score"
	UnknownReleaseDate     = "Unknown Release Date"
	ErrFetchingReleaseDate = "Error Fetching Release Date"
)
