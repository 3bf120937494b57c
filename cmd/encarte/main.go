package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/extract"
	"github.com/fwojciec/encarte/gemini"
	"github.com/fwojciec/encarte/goquery"
	"github.com/fwojciec/encarte/htmltomarkdown"
	enchttp "github.com/fwojciec/encarte/http"
	"github.com/fwojciec/encarte/ingest"
	"github.com/fwojciec/encarte/readability"
	"github.com/fwojciec/encarte/rod"
	encslog "github.com/fwojciec/encarte/slog"
	"github.com/fwojciec/encarte/sqlite"
	"github.com/fwojciec/encarte/trafilatura"
	"github.com/fwojciec/encarte/yaml"
	"google.golang.org/genai"
)

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

	// Optional taxonomy file replacing the built-in taxonomy.
	TaxonomyPath string

	// Minimum log level. Lowered to debug by --verbose.
	LogLevel slog.Level

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProductService encarte.ProductService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:       defaultDBPath(),
		TaxonomyPath: os.Getenv("ENCARTE_TAXONOMY"),
		LogLevel:     defaultLogLevel(),
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
		kong.Name("encarte"),
		kong.Description("Extract supermarket products from promotional flyers."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'encarte --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := m.LogLevel
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if cmd != "extract" {
		if m.ProductService == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set ENCARTE_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.ProductService = sqlite.NewProductService(m.DB)
		}
		deps.Products = encslog.NewLoggingProductService(m.ProductService, logger)
	}

	var flags *LoadFlags
	switch cmd {
	case "extract":
		flags = &cli.Extract.LoadFlags
	case "ingest":
		flags = &cli.Ingest.LoadFlags
	}
	if flags != nil {
		ing, closeFn, err := m.newIngester(ctx, flags, logger, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Ingester = ing
	}

	return kongCtx.Run(deps)
}

// newIngester wires the loading and extraction stack for extract and
// ingest. The returned func releases the fetcher.
func (m *Main) newIngester(ctx context.Context, flags *LoadFlags, logger *slog.Logger, stderr io.Writer) (*ingest.Ingester, func(), error) {
	taxonomy := encarte.DefaultTaxonomy()
	if m.TaxonomyPath != "" {
		t, err := yaml.ReadTaxonomyFile(m.TaxonomyPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Check the taxonomy file set by ENCARTE_TAXONOMY\n")
			return nil, nil, fmt.Errorf("failed to load taxonomy %q: %w", m.TaxonomyPath, err)
		}
		taxonomy = t
	}

	var fetcher encarte.Fetcher = enchttp.NewFetcher()
	if flags.Browser {
		f, err := rod.NewFetcher(rod.WithWaitSelector(goquery.DefaultPageSelector))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	}
	fetcher = encslog.NewLoggingFetcher(fetcher, logger)

	loader := &ingest.Loader{
		Fetcher: fetcher,
		HTML:    goquery.NewParser(goquery.WithConverter(htmltomarkdown.NewConverter())),
		Logger:  logger,
	}
	if flags.Clean {
		switch flags.Cleaner {
		case "readability":
			loader.Cleaner = readability.NewExtractor()
		default:
			loader.Cleaner = trafilatura.NewExtractor()
		}
	}

	ing := &ingest.Ingester{
		Loader: loader,
		Extractor: encslog.NewLoggingProductExtractor(
			extract.NewPipeline(extract.WithTaxonomy(taxonomy), extract.WithLogger(logger)),
			logger,
		),
		Taxonomy:    taxonomy,
		Limiter:     ingest.NewHostLimiter(1.0),
		Concurrency: flags.Concurrency,
		Logger:      logger,
	}

	if flags.Classify {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			_ = fetcher.Close()
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			_ = fetcher.Close()
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		ing.Classifier = gemini.NewClassifier(client, "")
	}

	return ing, func() { _ = fetcher.Close() }, nil
}

func defaultDBPath() string {
	if path := os.Getenv("ENCARTE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "encarte.db"
	}
	dir := filepath.Join(home, ".encarte")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "encarte.db")
}

// defaultLogLevel reads ENCARTE_LOG. Normal runs only show warnings so
// command output stays readable.
func defaultLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("ENCARTE_LOG"))); err != nil {
		return slog.LevelWarn
	}
	return level
}
