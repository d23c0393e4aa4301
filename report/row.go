package report

import (
	"strconv"
	"time"

	"github.com/s0up4200/backlogr/steam"
)

// NeverPlayed is shown in the last-played column for games that were never
// launched.
const NeverPlayed = "Never Played"

// Header is the fixed CSV header, one column per Row field.
var Header = []string{
	"Name",
	"Review Rating",
	"Metacritic Score",
	"Playtime in Minutes",
	"Date Released",
	"Last Played/Added",
	"Beaten",
}

// Row is one line of the report: the enrichment output for a single game.
// Unavailable fields keep their sentinel reason until serialization.
type Row struct {
	Name            string
	ReviewRating    steam.Field
	MetacriticScore steam.Field
	PlaytimeMinutes int
	ReleaseDate     steam.Field
	LastPlayed      string
	Beaten          bool
}

// Record flattens the row to CSV column values, in Header order.
func (r Row) Record() []string {
	return []string{
		r.Name,
		r.ReviewRating.Display(),
		r.MetacriticScore.Display(),
		strconv.Itoa(r.PlaytimeMinutes),
		r.ReleaseDate.Display(),
		r.LastPlayed,
		strconv.FormatBool(r.Beaten),
	}
}

// lastPlayedDate converts the rtime_last_played epoch to a UTC calendar
// date, or NeverPlayed when the timestamp is zero.
func lastPlayedDate(epoch int64) string {
	if epoch == 0 {
		return NeverPlayed
	}
	return time.Unix(epoch, 0).UTC().Format("2006-01-02")
}
