package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jkow/earmark"
	"github.com/jkow/earmark/aggregate"
	"github.com/jkow/earmark/archive"
	"github.com/jkow/earmark/gofeed"
	"github.com/jkow/earmark/googlebooks"
	"github.com/jkow/earmark/goquery"
	"github.com/jkow/earmark/htmltomarkdown"
	earmarkhttp "github.com/jkow/earmark/http"
	"github.com/jkow/earmark/rod"
	earmarkslog "github.com/jkow/earmark/slog"
	"github.com/jkow/earmark/sqlite"
	"github.com/jkow/earmark/trafilatura"
	"github.com/jkow/earmark/yaml"
)

// defaultRequestsPerSecond paces fetches per host during extraction.
const defaultRequestsPerSecond = 1.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Source catalog path. When the file does not exist the built-in
	// catalog is used.
	SourcesPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Catalog        *earmark.Catalog
	LibraryService earmark.LibraryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		SourcesPath: defaultSourcesPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("earmark"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'earmark --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set EARMARK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Load the source catalog
	m.Catalog, err = m.loadCatalog()
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set EARMARK_SOURCES to use a different catalog path\n")
		return err
	}

	logger := debugLogger(stderr)

	// The browser fetcher is only worth its startup cost when a command
	// explicitly asks for rendered pages.
	var fetcher earmark.Fetcher
	if (cmd == "search" && cli.Search.Render) || (cmd == "get" && cli.Get.Render) {
		browser, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = browser
	} else {
		fetcher = earmarkhttp.NewFetcher()
	}
	fetcher = earmarkslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	converter := htmltomarkdown.NewConverter()
	limiter := aggregate.NewHostLimiter(defaultRequestsPerSecond)

	selectorDriver := &aggregate.SelectorDriver{
		Fetcher:         fetcher,
		ResultExtractor: goquery.NewSearchExtractor(),
		DetailExtractor: &goquery.DetailExtractor{
			Converter: converter,
			Fallback:  trafilatura.NewDescriber(),
		},
		Limiter: limiter,
	}
	archiveDriver := archive.NewDriver(fetcher, archive.WithConverter(converter))

	m.LibraryService = sqlite.NewLibraryService(m.DB)

	deps.DB = m.DB
	deps.Catalog = m.Catalog
	deps.Library = m.LibraryService
	deps.Podcasts = gofeed.NewPodcastService(fetcher)
	deps.Metadata = googlebooks.NewService(earmarkhttp.NewFetcher(), googlebooks.WithAPIKey(os.Getenv("GOOGLE_BOOKS_API_KEY")))
	deps.Dispatcher = &aggregate.Dispatcher{
		Catalog: m.Catalog,
		Drivers: map[earmark.SourceKind]earmark.Driver{
			earmark.KindSelector: earmarkslog.NewLoggingDriver(selectorDriver, logger),
			earmark.KindArchive:  earmarkslog.NewLoggingDriver(archiveDriver, logger),
		},
	}

	return kongCtx.Run(deps)
}

// loadCatalog reads the sources file, falling back to the built-in
// catalog when no file exists at the configured path.
func (m *Main) loadCatalog() (*earmark.Catalog, error) {
	if _, err := os.Stat(m.SourcesPath); os.IsNotExist(err) {
		return defaultCatalog()
	}
	return yaml.NewLoader(goquery.NewValidator()).LoadFile(m.SourcesPath)
}

// defaultCatalog contains the sources that work without configuration.
func defaultCatalog() (*earmark.Catalog, error) {
	return earmark.NewCatalog([]*earmark.SourceDefinition{
		{
			Name:        "librivox",
			ContentType: earmark.ContentTypeAudiobook,
			Kind:        earmark.KindArchive,
		},
	})
}

// debugLogger returns a logger that writes to stderr when EARMARK_DEBUG
// is set and discards everything otherwise.
func debugLogger(stderr io.Writer) *slog.Logger {
	if os.Getenv("EARMARK_DEBUG") != "" {
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultDBPath() string {
	if path := os.Getenv("EARMARK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "earmark.db"
	}
	dir := filepath.Join(home, ".earmark")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "earmark.db")
}

func defaultSourcesPath() string {
	if path := os.Getenv("EARMARK_SOURCES"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sources.yaml"
	}
	return filepath.Join(home, ".earmark", "sources.yaml")
}
