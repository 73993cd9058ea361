package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/careerkit/profilescout/internal/analysis"
	"github.com/careerkit/profilescout/internal/config"
	"github.com/careerkit/profilescout/internal/discovery"
	"github.com/careerkit/profilescout/internal/extract"
	"github.com/careerkit/profilescout/internal/llm/gemini"
	"github.com/careerkit/profilescout/internal/report"
	"github.com/careerkit/profilescout/internal/search/tavily"
	"github.com/careerkit/profilescout/internal/version"
	"github.com/careerkit/profilescout/pkg/pipeline/redact"
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		usage(os.Stdout)
	case "version", "--version":
		fmt.Println(version.Current)
	case "discover":
		os.Exit(runDiscover(ctx, os.Args[2:]))
	case "analyze":
		os.Exit(runAnalyze(ctx, os.Args[2:]))
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runDiscover(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jobPath := fs.String("job", "", "Job description text file ('-' for stdin)")
	outputPath := fs.String("output", "", "Optional CSV file for the ranked profiles")
	configPath := fs.String("config", "", "Optional YAML config file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Overall run timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *jobPath == "" {
		_, _ = fmt.Fprintln(os.Stderr, "discover requires --job")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return configError(err)
	}

	jobDescription, err := readInput(*jobPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "read job description: %s\n", err)
		return 2
	}

	runCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	pipeline, err := buildPipeline(runCtx, cfg)
	if err != nil {
		return configError(err)
	}

	ranked, err := pipeline.Run(runCtx, jobDescription)
	if err != nil {
		return reportDiscoveryError(err)
	}

	if len(ranked.Profiles) == 0 {
		fmt.Println("The analysis filtered out all search results; no relevant profiles to show.")
		return 0
	}

	printProfiles(os.Stdout, ranked)

	if *outputPath != "" {
		if err := writeProfilesFile(*outputPath, ranked); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "write output: %s\n", err)
			return 1
		}
	}
	return 0
}

func runAnalyze(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	resumePath := fs.String("resume", "", "Resume file (.pdf, .docx, or .txt)")
	jobPath := fs.String("job", "", "Job description text file ('-' for stdin)")
	networking := fs.Bool("networking", false, "Also discover potential networking contacts")
	outputPath := fs.String("output", "", "Optional CSV file for ranked profiles (with --networking)")
	configPath := fs.String("config", "", "Optional YAML config file")
	timeout := fs.Duration("timeout", 10*time.Minute, "Overall run timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *resumePath == "" || *jobPath == "" {
		_, _ = fmt.Fprintln(os.Stderr, "analyze requires --resume and --job")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return configError(err)
	}

	resumeText, err := readResume(*resumePath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "read resume: %s\n", err)
		return 2
	}
	jobDescription, err := readInput(*jobPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "read job description: %s\n", err)
		return 2
	}

	runCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	llm, err := gemini.New(runCtx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		return configError(err)
	}
	analyzer := analysis.NewAnalyzer(llm)

	var (
		gapAnalysis string
		actionPlan  string
		ranked      discovery.RankedProfiles
		rankedErr   error
	)

	// The gap-analysis chain and profile discovery are independent; run
	// them concurrently when both are requested.
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		var err error
		if gapAnalysis, err = analyzer.GapAnalysis(gctx, resumeText, jobDescription); err != nil {
			return err
		}
		actionPlan, err = analyzer.ActionPlan(gctx, gapAnalysis)
		return err
	})
	if *networking {
		pipeline, err := buildPipeline(runCtx, cfg)
		if err != nil {
			return configError(err)
		}
		g.Go(func() error {
			// Discovery failures should not discard a finished gap
			// analysis; collected separately and reported after it.
			ranked, rankedErr = pipeline.Run(gctx, jobDescription)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "analysis failed: %s\n", redact.Secrets(err.Error()))
		return 1
	}

	fmt.Println("# Identified Gaps")
	fmt.Println()
	fmt.Println(gapAnalysis)
	fmt.Println()
	fmt.Println("# Action Plan")
	fmt.Println()
	fmt.Println(actionPlan)

	if !*networking {
		return 0
	}

	fmt.Println()
	fmt.Println("# Potential Networking Contacts")
	fmt.Println()
	if rankedErr != nil {
		return reportDiscoveryError(rankedErr)
	}
	if len(ranked.Profiles) == 0 {
		fmt.Println("The analysis filtered out all search results; no relevant profiles to show.")
		return 0
	}
	printProfiles(os.Stdout, ranked)

	if *outputPath != "" {
		if err := writeProfilesFile(*outputPath, ranked); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "write output: %s\n", err)
			return 1
		}
	}
	return 0
}

// buildPipeline wires the discovery stages to their live clients.
func buildPipeline(ctx context.Context, cfg config.Config) (*discovery.Pipeline, error) {
	llm, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	searcher, err := tavily.New(tavily.Config{
		APIKey:     cfg.Tavily.APIKey,
		BaseURL:    cfg.Tavily.BaseURL,
		MaxResults: cfg.Tavily.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	reporter := discovery.ReporterFunc(func(e discovery.Event) {
		detail := redact.Secrets(e.Detail)
		switch e.Status {
		case discovery.StatusWarning:
			logger.Printf("warn: [%s] %s", e.Stage, detail)
		case discovery.StatusNotice:
			logger.Printf("note: [%s] %s", e.Stage, detail)
		case discovery.StatusDone:
			logger.Printf("[%s] done: %s", e.Stage, detail)
		default:
			if detail == "" {
				logger.Printf("[%s] %s", e.Stage, e.Status)
			} else {
				logger.Printf("[%s] %s: %s", e.Stage, e.Status, detail)
			}
		}
	})

	return discovery.New(llm, searcher, llm, reporter, discovery.Options{
		Workers:        cfg.Search.Workers,
		MaxRetries:     cfg.Search.MaxRetries,
		RequestTimeout: cfg.Search.RequestTimeout.Std(),
		RateLimitRPS:   cfg.Search.RateLimitRPS,
	}), nil
}

// reportDiscoveryError maps the discovery error taxonomy to user-facing
// diagnostics. The "nothing found" outcomes are terminal but not failures.
func reportDiscoveryError(err error) int {
	switch {
	case errors.Is(err, discovery.ErrNoQueries):
		fmt.Println("Could not generate specific search queries from the job description.")
		return 0
	case errors.Is(err, discovery.ErrNoCandidates):
		fmt.Println("No potential profiles found via web search.")
		return 0
	default:
		var schemaErr *discovery.SchemaError
		if errors.As(err, &schemaErr) {
			_, _ = fmt.Fprintf(os.Stderr, "discovery failed: %s\n", redact.Secrets(schemaErr.Error()))
			return 1
		}
		_, _ = fmt.Fprintf(os.Stderr, "discovery failed: %s\n", redact.Secrets(err.Error()))
		return 1
	}
}

func printProfiles(w io.Writer, ranked discovery.RankedProfiles) {
	for i, p := range ranked.Profiles {
		_, _ = fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, p.URL, p.Justification)
	}
}

func writeProfilesFile(path string, ranked discovery.RankedProfiles) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteProfilesCSV(f, ranked); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readInput(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func readResume(path string) (string, error) {
	kind, err := extract.KindFromPath(path)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return extract.Text(kind, raw)
}

func configError(err error) int {
	_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", redact.Secrets(err.Error()))
	return 2
}

func usage(w *os.File) {
	_, _ = fmt.Fprintf(w, `profilescout: resume gap analysis and networking-contact discovery

Usage:
  profilescout <command> [flags]

Commands:
  discover  Find potential networking contacts for a job description
  analyze   Analyze a resume against a job description (add --networking for contacts)
  version   Print the version

Examples:
  profilescout discover --job jd.txt --output profiles.csv
  profilescout analyze --resume resume.pdf --job jd.txt --networking

Environment:
  GEMINI_API_KEY    Gemini API key (required)
  GEMINI_MODEL      Gemini model name (default gemini-2.5-flash)
  TAVILY_API_KEY    Tavily search API key (required for discovery)
  WORKERS           Search fan-out override (default: one per query, floor 5)
  MAX_RETRIES       Transient-failure retries per search call (default 2)
  REQUEST_TIMEOUT   Per-call timeout (default 30s)
  RATE_LIMIT_RPS    Global search rate limit, 0 disables

A .env file in the working directory is honored. A YAML config file can be
passed with --config; environment values win over file values.

`)
}
