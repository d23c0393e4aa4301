package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/backlogr/filter"
	"github.com/s0up4200/backlogr/report"
	"github.com/s0up4200/backlogr/steam"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library report to a CSV file",
	Long: `Fetch your owned games and write one enriched CSV row per game.

Every game costs several API calls, so large libraries take a while; the
Steam rate limiter is respected with exponential backoff. An optional filter
expression narrows the report before any per-game calls are made, e.g.:

  backlogr export --filter 'PlaytimeMinutes > 600'
  backlogr export --filter 'not NeverPlayed'
  backlogr export --filter 'containsStr(Name, "portal")'`,
	PreRunE: initializeApp,
	RunE:    runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default from config)")
	exportCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
}

func runExport(cmd *cobra.Command, args []string) error {
	if cfg.Steam.SteamID == "" {
		fmt.Println("Could not determine Steam ID. Set STEAM_ID or steam.steam_id in the config.")
		return nil
	}

	// Determine filter expression: command line > config default
	expression := filterExpr
	if expression == "" {
		expression = cfg.Filter.DefaultExpression
	}

	var gameFilter filter.GameFilter
	if expression != "" {
		var err error
		gameFilter, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	client, err := newSteamClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	games, err := client.OwnedGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve owned games: %w", err)
	}
	if len(games) == 0 {
		fmt.Println("Could not retrieve owned games or no games found.")
		return nil
	}

	if gameFilter != nil {
		var kept []steam.OwnedGame
		for _, game := range games {
			if gameFilter(game) {
				kept = append(kept, game)
			}
		}
		logger.Info().
			Str("filter", expression).
			Int("matched", len(kept)).
			Int("total", len(games)).
			Msg("Applied filter")
		games = kept

		if len(games) == 0 {
			fmt.Println("No games match the filter expression.")
			return nil
		}
	}

	path := outputPath
	if path == "" {
		path = cfg.Output.Path
	}

	builder := report.NewBuilder(client, logger)
	rows := builder.Build(ctx, games)

	if err := report.WriteFile(path, rows); err != nil {
		return err
	}

	logger.Info().
		Int("games", len(rows)).
		Str("path", path).
		Msg("Report written")

	return nil
}
