package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/ahocorasick"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/gemini"
	"github.com/fwojciec/harvest/goquery"
	"github.com/fwojciec/harvest/htmltomarkdown"
	harvesthttp "github.com/fwojciec/harvest/http"
	"github.com/fwojciec/harvest/readability"
	harvestslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/fwojciec/harvest/trafilatura"
	"github.com/fwojciec/harvest/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFiles are loaded into the environment before the config.
	EnvFiles []string

	// SQLite database backing the knowledge base.
	DB *sqlite.DB

	// Translator overrides the Gemini translator. Used by tests.
	Translator harvest.Translator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFiles: []string{".env.local", ".env"},
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Harvest articles from a listing page into a knowledge base and archive."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := yaml.LoadEnvFiles(m.EnvFiles...); err != nil {
		return err
	}

	cfg, err := yaml.LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	level, _ := yaml.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
		Logger: logger,
	}

	if cfg.Output.Database != "" {
		if dir := filepath.Dir(cfg.Output.Database); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		m.DB = sqlite.NewDB(cfg.Output.Database)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: use --db to choose a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cfg.Output.Database, err)
		}
		defer m.Close()

		kb := sqlite.NewKnowledgeBase(m.DB)
		if err := kb.Warm(ctx); err != nil {
			return fmt.Errorf("failed to load stored records: %w", err)
		}
		deps.Records = kb
	}

	if kongCtx.Command() != "records" {
		pipeline, closeFn, err := m.newPipeline(ctx, cfg, deps.Records, logger, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Pipeline = pipeline
	}

	return kongCtx.Run(deps)
}

// newPipeline wires the configured services into a crawl.Pipeline.
func (m *Main) newPipeline(ctx context.Context, cfg *yaml.Config, records harvest.RecordService, logger *slog.Logger, stderr io.Writer) (*crawl.Pipeline, func(), error) {
	fetcher := harvestslog.NewLoggingFetcher(
		harvesthttp.NewFetcher(
			harvesthttp.WithTimeout(cfg.Fetch.Timeout),
			harvesthttp.WithUserAgent(cfg.Fetch.UserAgent),
		),
		logger,
	)

	paywall := goquery.NewPaywallDetector(cfg.PaywallMarker)
	extractor := goquery.NewContentExtractor(
		goquery.WithTitleChain(cfg.TitleChain()),
		goquery.WithBodyChain(cfg.BodyChain()),
	)

	translator, err := m.translator(ctx, cfg, stderr)
	if err != nil {
		_ = fetcher.Close()
		return nil, nil, err
	}

	p := &crawl.Pipeline{
		Fetcher: fetcher,
		Links: goquery.NewListingParser(
			goquery.WithContainerSelector(cfg.ContainerSelector),
			goquery.WithListingPaywall(paywall),
		),
		Processor:   goquery.NewProcessor(paywall, extractor),
		Classifier:  ahocorasick.NewClassifier(cfg.Categories),
		Translator:  harvestslog.NewLoggingTranslator(translator, logger),
		Converter:   htmltomarkdown.NewConverter(),
		Metadata:    harvest.MetadataChain{trafilatura.NewExtractor(), readability.NewExtractor()},
		RateLimiter: crawl.NewIntervalLimiter(cfg.ArticleDelay),
		Logger:      logger,
		ListingURL:  cfg.ListingURL,
		PathPrefix:  cfg.PathPrefix,
		Concurrency: cfg.Concurrency,
		Retry:       cfg.RetryPolicy(),
	}

	if records != nil {
		p.KnowledgeBase = harvestslog.NewLoggingKnowledgeBase(records, logger)
	}

	var savers harvest.MultiSaver
	if cfg.Output.Archive != "" {
		savers = append(savers, fs.NewArchive(cfg.Output.Archive))
	}
	if cfg.Output.Markdown != "" {
		savers = append(savers, fs.NewMarkdownExport(cfg.Output.Markdown))
	}
	if len(savers) > 0 {
		p.Archive = savers
	}

	return p, func() { _ = fetcher.Close() }, nil
}

// translator returns the translation sink for the configuration. Without
// an API key, translation is disabled and articles keep their text.
func (m *Main) translator(ctx context.Context, cfg *yaml.Config, stderr io.Writer) (harvest.Translator, error) {
	if !cfg.Translation.Enabled {
		return harvest.NopTranslator{}, nil
	}
	if m.Translator != nil {
		return m.Translator, nil
	}
	if cfg.APIKey == "" {
		fmt.Fprintf(stderr, "%s not set, translation disabled. Get a key at https://aistudio.google.com/apikey\n", yaml.APIKeyEnv)
		return harvest.NopTranslator{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check that %s is valid\n", yaml.APIKeyEnv)
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewTranslator(client,
		gemini.WithModel(cfg.Translation.Model),
		gemini.WithTargetLanguage(cfg.Translation.TargetLanguage),
	), nil
}
