package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/simplifyx/scamguard/internal/aggregator"
	"github.com/simplifyx/scamguard/internal/alert"
	"github.com/simplifyx/scamguard/internal/classifier"
	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/database"
	"github.com/simplifyx/scamguard/internal/detector"
	"github.com/simplifyx/scamguard/internal/log"
	"github.com/simplifyx/scamguard/internal/model"
	"github.com/simplifyx/scamguard/internal/oracle"
	"github.com/simplifyx/scamguard/internal/page"
	"github.com/simplifyx/scamguard/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Analyze web pages for phishing and scam signals",
		Long: `Scan fetches one or more pages and scores them across all detectors:

- Suspicious TLDs and typosquatting of well-known domains
- Freshly registered domains
- Scam-pattern text content (keyword classification)
- Payment forms submitting to unexpected hosts

Examples:
  # Scan a single page
  scamguard scan https://example.xyz

  # Scan several pages concurrently
  scamguard scan https://a.example https://b.example https://c.example

  # Output a JSON report
  scamguard scan --json https://example.xyz

  # Write a Markdown report to a file
  scamguard scan --markdown -o report.md https://example.xyz

  # Use a custom threat lists file
  scamguard scan -l mylists.yaml https://example.xyz`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each page fetch")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent page scans")
	cmd.Flags().Int("threshold", config.DefaultRiskThreshold,
		"Risk score at which a page is flagged dangerous")

	// Threat lists file
	cmd.Flags().StringP("lists", "l", "",
		"Threat lists file path (default: lists.yaml in current or config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	cfg.RiskThreshold, err = cmd.Flags().GetInt("threshold")
	if err != nil {
		return nil, err
	}
	cfg.ListsFilePath, err = cmd.Flags().GetString("lists")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args
	return cfg, nil
}

// loadLists resolves the threat lists: an explicit file must exist, an
// implicit one falls back to the built-in defaults.
func loadLists(cfg *config.Config) (*config.Lists, error) {
	explicit := cfg.ListsFilePath != ""
	path := config.FindListsFile(cfg.ListsFilePath)

	if path == "" {
		if explicit {
			return nil, fmt.Errorf("threat lists file not found: %s", cfg.ListsFilePath)
		}
		return config.DefaultLists(), nil
	}

	data, err := config.LoadListsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load threat lists %s: %w", path, err)
	}
	return config.NewLists(data), nil
}

// scanEngine bundles the collaborators a one-shot scan needs.
type scanEngine struct {
	cfg        *config.Config
	aggregator *aggregator.Aggregator
	fetcher    *page.Fetcher
	content    detector.Detector
	formSubmit detector.Detector
	db         *database.ThreatDB
	logger     *slog.Logger
}

// newScanEngine wires the detectors, aggregator, and storage for a scan.
//
// All detectors run synchronously here: a one-shot scan wants a complete,
// deterministic report, not the live pipeline's eventual consistency.
func newScanEngine(cfg *config.Config, lists *config.Lists, db *database.ThreatDB, logger *slog.Logger) *scanEngine {
	ageOracle := oracle.New(
		oracle.NewSimulatedClient(config.DefaultRecentDomainDays),
		cfg.DomainAgeTTL,
	)
	textClassifier := classifier.New(lists.ScamKeywords(), cfg.ScamCutoff)

	dispatcher := alert.NewStandardDispatcher(
		alert.NewLogNotifier(logger),
		alert.NewChannelMessenger(16, logger),
		logger,
	)

	agg := aggregator.New(
		aggregator.NewMemStore(),
		dispatcher,
		cfg.RiskThreshold,
		aggregator.WithLogger(logger),
		aggregator.WithSyncDetectors(
			detector.NewURLStructure(lists, cfg.Weights),
			detector.NewDomainAge(ageOracle, cfg.Weights, logger),
		),
	)

	fetcher := page.NewFetcher(
		page.WithUserAgent(cfg.UserAgent),
		page.WithMaxBodySize(cfg.MaxBodySize),
	)

	return &scanEngine{
		cfg:        cfg,
		aggregator: agg,
		fetcher:    fetcher,
		content:    detector.NewContent(textClassifier, cfg.Weights, cfg.TextSampleSize, logger),
		formSubmit: detector.NewFormSubmit(lists, cfg.Weights),
		db:         db,
		logger:     logger,
	}
}

// scanOne runs the full detector suite against a single URL and returns
// the finished risk report.
func (e *scanEngine) scanOne(ctx context.Context, target string) (*model.RiskReport, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	pageID := uuid.NewString()
	e.aggregator.OnNavigationComplete(fetchCtx, pageID, target)
	defer e.aggregator.OnPageClosed(pageID)

	extraction, err := e.fetcher.Fetch(fetchCtx, target)
	if err != nil {
		// URL-level findings still stand; report what we have.
		e.logger.Warn("page fetch failed, scoring URL signals only",
			"url", target,
			"error", err,
		)
	} else {
		ev := &detector.Evidence{PageURL: target, Text: extraction.Text}
		findings := detector.Run(ctx, []detector.Detector{e.content}, ev, e.logger)
		e.aggregator.OnFindingsArrive(ctx, pageID, aggregator.SourceContent, findings)

		for _, form := range extraction.Forms {
			formEv := &detector.Evidence{PageURL: target, Form: &form}
			findings := detector.Run(ctx, []detector.Detector{e.formSubmit}, formEv, e.logger)
			e.aggregator.OnFindingsArrive(ctx, pageID, aggregator.SourceForm, findings)
		}
	}

	result, ok := e.aggregator.Report(pageID)
	if !ok {
		return nil, fmt.Errorf("risk state lost for %s", target)
	}

	if e.db != nil {
		if err := e.db.SaveRiskReport(ctx, result); err != nil {
			e.logger.Error("failed to archive report", "url", target, "error", err)
		}
	}
	return result, nil
}

// runScan executes the scan across all targets.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return errors.New("no targets provided (specify one or more URLs as arguments)")
	}
	for _, target := range cfg.Targets {
		u, err := url.Parse(target)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid URL %q (must include scheme and host)", target)
		}
	}

	lists, err := loadLists(cfg)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"threshold", cfg.RiskThreshold,
		"batch_size", cfg.BatchSize,
	)

	engine := newScanEngine(cfg, lists, db, logger)
	start := time.Now()

	var outputMu sync.Mutex
	emit := func(target string, result *model.RiskReport) {
		outputMu.Lock()
		defer outputMu.Unlock()
		if err := outputReport(cfg, result); err != nil {
			logger.Error("report output failed", "url", target, "error", err)
		}
	}

	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.BatchSize)
		for _, target := range cfg.Targets {
			g.Go(func() error {
				result, err := engine.scanOne(gctx, target)
				if err != nil {
					return err
				}
				emit(target, result)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, target := range cfg.Targets {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			result, err := engine.scanOne(ctx, target)
			if err != nil {
				logger.Error("scan failed", "url", target, "error", err)
				fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
				continue
			}
			emit(target, result)
		}
	}

	logger.Info("scan finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// outputReport writes the report in the requested format and destination.
func outputReport(cfg *config.Config, result *model.RiskReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output,
			report.WithPrettyPrint(),
			report.WithVersion(getVersion()),
		)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(result)
	return err
}
