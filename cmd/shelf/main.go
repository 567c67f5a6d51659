package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/shelf/internal/bestseller"
	"github.com/mmcdole/shelf/internal/config"
	"github.com/mmcdole/shelf/internal/discover"
	"github.com/mmcdole/shelf/internal/log"
	"github.com/mmcdole/shelf/internal/provider/googlebooks"
	"github.com/mmcdole/shelf/internal/provider/nyt"
	"github.com/mmcdole/shelf/internal/provider/tmdb"
	"github.com/mmcdole/shelf/internal/recommend"
	"github.com/mmcdole/shelf/internal/search"
	"github.com/mmcdole/shelf/internal/store"
	"github.com/mmcdole/shelf/internal/tui"
	"github.com/mmcdole/shelf/internal/watchlist"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("shelf %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting shelf", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	// Provider clients
	titles := tmdb.NewClient(cfg.Providers.TMDBKey, logger)
	books := googlebooks.NewClient(cfg.Providers.GoogleBooksKey, logger)
	lists := nyt.NewClient(cfg.Providers.NYTKey, logger)

	// Saved-list store
	listStore, err := store.NewListStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open list store: %w", err)
	}
	defer listStore.Close()

	// Services
	watchlistSvc := watchlist.NewService(listStore, logger)
	searchSvc := search.NewService(titles, books, logger)
	bestsellerSvc := bestseller.NewService(lists, books, logger)
	discoverSvc := discover.NewService(titles, logger)
	movieRecs := recommend.NewMovieEngine(titles, logger)
	showRecs := recommend.NewShowEngine(titles, logger)
	bookRecs := recommend.NewBookEngine(books, logger)

	// Create TUI model
	model := tui.NewModel(searchSvc, bestsellerSvc, discoverSvc, watchlistSvc, movieRecs, showRecs, bookRecs)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Shelf!")
	fmt.Println()
	fmt.Println("Shelf needs a TMDB API key for movie and TV search.")
	fmt.Println("Google Books and NYT Books keys are optional; their features")
	fmt.Println("are disabled or rate-limited without them.")
	fmt.Println()

	tmdbKey, err := promptSecret("TMDB API key (required): ")
	if err != nil {
		return err
	}
	if tmdbKey == "" {
		return fmt.Errorf("a TMDB API key is required")
	}

	googleKey, err := promptSecret("Google Books API key (optional): ")
	if err != nil {
		return err
	}
	nytKey, err := promptSecret("NYT Books API key (optional): ")
	if err != nil {
		return err
	}

	cfg.Providers.TMDBKey = tmdbKey
	cfg.Providers.GoogleBooksKey = googleKey
	cfg.Providers.NYTKey = nytKey

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run shelf again to start the application.")

	return nil
}

// promptSecret reads a key without echoing it to the terminal
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
