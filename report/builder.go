// Package report turns an owned-games list into the flat CSV library report.
package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/s0up4200/backlogr/steam"
)

// Enricher supplies the per-game lookup fields. steam.Client implements it;
// tests substitute their own.
type Enricher interface {
	ReviewSummary(ctx context.Context, appID int) steam.Field
	MetacriticScore(ctx context.Context, appID int) steam.Field
	ReleaseDate(ctx context.Context, appID int) steam.Field
	Beaten(ctx context.Context, appID int) bool
}

// Builder produces report rows by enriching owned games one at a time, in
// the order the platform returned them.
type Builder struct {
	enricher Enricher
	logger   zerolog.Logger
	progress io.Writer
}

// NewBuilder creates a Builder writing progress lines to stdout.
func NewBuilder(enricher Enricher, logger zerolog.Logger) *Builder {
	return &Builder{
		enricher: enricher,
		logger:   logger,
		progress: os.Stdout,
	}
}

// SetProgress redirects the per-game progress output.
func (b *Builder) SetProgress(w io.Writer) {
	b.progress = w
}

// Build returns one row per game. A failure while processing a single game
// is logged with its appid and that game is skipped; the batch continues.
func (b *Builder) Build(ctx context.Context, games []steam.OwnedGame) []Row {
	rows := make([]Row, 0, len(games))

	for i, game := range games {
		fmt.Fprintf(b.progress, "[%d/%d] %s\n", i+1, len(games), game.Name)

		row, err := b.buildRow(ctx, game)
		if err != nil {
			b.logger.Error().
				Err(err).
				Int("appid", game.AppID).
				Str("name", game.Name).
				Msg("Failed to process game, skipping")
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// buildRow enriches a single game. A panic out of an enricher is converted
// to an error so one bad game cannot take down the batch.
func (b *Builder) buildRow(ctx context.Context, game steam.OwnedGame) (row Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing appid %d: %v", game.AppID, r)
		}
	}()

	row = Row{
		Name:            game.Name,
		PlaytimeMinutes: game.PlaytimeForever,
		LastPlayed:      lastPlayedDate(game.LastPlayed),
		ReviewRating:    b.enricher.ReviewSummary(ctx, game.AppID),
		MetacriticScore: b.enricher.MetacriticScore(ctx, game.AppID),
		ReleaseDate:     b.enricher.ReleaseDate(ctx, game.AppID),
		Beaten:          b.enricher.Beaten(ctx, game.AppID),
	}

	return row, nil
}
