package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/backlogr/config"
	"github.com/s0up4200/backlogr/fetch"
	"github.com/s0up4200/backlogr/steam"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Command flags
	outputPath string
	filterExpr string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "backlogr",
	Short: "Export your Steam library to a CSV report",
	Long: `backlogr pulls your owned games from the Steam Web API, enriches each one
with review rating, Metacritic score, release date and a completion
heuristic, and writes the result to a CSV file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and logger
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// newSteamClient builds the fetcher and Steam client from the loaded config
func newSteamClient() (*steam.Client, error) {
	fetcher := fetch.New(logger,
		fetch.WithWaitBounds(
			time.Duration(cfg.Fetch.MinWaitSeconds)*time.Second,
			time.Duration(cfg.Fetch.MaxWaitSeconds)*time.Second,
		),
		fetch.WithMaxAttempts(cfg.Fetch.MaxAttempts),
	)

	return steam.NewClient(cfg.Steam.APIKey, cfg.Steam.SteamID, fetcher, logger,
		steam.WithBeatenThreshold(cfg.Beaten.Threshold),
	)
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to the Steam Web API",
	Long:    `Fetch the owned-games list once and print basic statistics.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	if cfg.Steam.SteamID == "" {
		fmt.Println("Could not determine Steam ID. Set STEAM_ID or steam.steam_id in the config.")
		return nil
	}

	client, err := newSteamClient()
	if err != nil {
		return err
	}

	fmt.Println("Testing connection to the Steam Web API...")

	games, err := client.OwnedGames(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get owned games: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nLibrary statistics:\n")
	fmt.Printf("- Owned games: %d\n", len(games))

	var played int
	for _, game := range games {
		if game.PlaytimeForever > 0 {
			played++
		}
	}
	fmt.Printf("- Games with playtime: %d\n", played)

	return nil
}
