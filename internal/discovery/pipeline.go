package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careerkit/profilescout/pkg/pipeline/worker"
)

// minSearchWorkers is the floor on search fan-out concurrency when the
// query list is short.
const minSearchWorkers = 5

type Options struct {
	// Workers overrides the search fan-out width. When <=0 the pipeline
	// uses one worker per query with a floor of minSearchWorkers.
	Workers int

	// MaxRetries bounds transient-failure retries per search call.
	MaxRetries int

	// RequestTimeout applies per search call.
	RequestTimeout time.Duration

	// RateLimitRPS caps total search requests per second. <=0 disables.
	RateLimitRPS float64
}

// Pipeline orchestrates the four discovery stages: structured extraction,
// query synthesis, concurrent search, and filter-and-rank. It holds no
// state between runs.
type Pipeline struct {
	extractor JobExtractor
	searcher  Searcher
	ranker    ProfileRanker
	reporter  Reporter
	opts      Options
}

func New(extractor JobExtractor, searcher Searcher, ranker ProfileRanker, reporter Reporter, opts Options) *Pipeline {
	if reporter == nil {
		reporter = NopReporter
	}
	return &Pipeline{
		extractor: extractor,
		searcher:  searcher,
		ranker:    ranker,
		reporter:  reporter,
		opts:      opts,
	}
}

// Run executes the full discovery flow for one job description and returns
// the ranked profiles. Failure modes are typed: *SchemaError from either
// model call, ErrNoQueries, ErrNoCandidates, or a cancelled context. An
// empty Profiles slice with a nil error means the model filtered every
// candidate out.
func (p *Pipeline) Run(ctx context.Context, jobDescription string) (RankedProfiles, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return RankedProfiles{}, fmt.Errorf("empty job description")
	}

	p.reporter.Report(Event{Stage: StageExtract, Status: StatusStarted})
	job, err := p.extractor.ExtractJob(ctx, jobDescription)
	if err != nil {
		return RankedProfiles{}, err
	}
	p.reporter.Report(Event{Stage: StageExtract, Status: StatusDone, Detail: job.PrimaryTitle + " at " + job.CompanyName})

	p.reporter.Report(Event{Stage: StageQueries, Status: StatusStarted})
	queries := BuildSearchQueries(job)
	if len(queries) == 0 {
		return RankedProfiles{}, ErrNoQueries
	}
	p.reporter.Report(Event{Stage: StageQueries, Status: StatusDone, Detail: fmt.Sprintf("%d queries", len(queries))})

	p.reporter.Report(Event{Stage: StageSearch, Status: StatusStarted, Detail: fmt.Sprintf("%d queries in parallel", len(queries))})
	aggregate, err := p.searchAll(ctx, queries)
	if err != nil {
		return RankedProfiles{}, err
	}
	if len(aggregate) == 0 {
		return RankedProfiles{}, ErrNoCandidates
	}
	p.reporter.Report(Event{Stage: StageSearch, Status: StatusDone, Detail: fmt.Sprintf("%d candidate snippets", len(aggregate))})

	p.reporter.Report(Event{Stage: StageRank, Status: StatusStarted})
	ranked, err := p.ranker.RankProfiles(ctx, job, FormatSearchResults(aggregate))
	if err != nil {
		return RankedProfiles{}, err
	}
	p.reporter.Report(Event{Stage: StageRank, Status: StatusDone, Detail: fmt.Sprintf("%d profiles", len(ranked.Profiles))})

	return ranked, nil
}

// searchAll fans the queries out over the worker pool and aggregates item
// results. A single query's failure is reported as a warning naming that
// query and excluded; sibling queries are unaffected. The aggregate is
// appended to only from the fan-in callback, which runs serially.
func (p *Pipeline) searchAll(ctx context.Context, queries []string) ([]SearchResultItem, error) {
	workers := p.opts.Workers
	if workers <= 0 {
		workers = len(queries)
		if workers < minSearchWorkers {
			workers = minSearchWorkers
		}
	}

	var aggregate []SearchResultItem
	_, err := worker.RunWithProgress(ctx, queries,
		func(reqCtx context.Context, query string) (SearchResponse, error) {
			return p.searcher.Search(reqCtx, query)
		},
		func(res worker.Result[string, SearchResponse]) error {
			if res.Err != nil {
				p.reporter.Report(Event{
					Stage:  StageSearch,
					Status: StatusWarning,
					Detail: fmt.Sprintf("query %q failed: %v", res.Input, res.Err),
				})
				return nil
			}
			switch res.Output.Kind {
			case KindItems:
				aggregate = append(aggregate, res.Output.Items...)
			case KindSummary:
				p.reporter.Report(Event{
					Stage:  StageSearch,
					Status: StatusNotice,
					Detail: fmt.Sprintf("query %q returned a summary instead of results, skipping", res.Input),
				})
			default:
				p.reporter.Report(Event{
					Stage:  StageSearch,
					Status: StatusWarning,
					Detail: fmt.Sprintf("query %q returned an unrecognized response shape, skipping", res.Input),
				})
			}
			return nil
		},
		worker.Options{
			Workers:        workers,
			MaxRetries:     p.opts.MaxRetries,
			RequestTimeout: p.opts.RequestTimeout,
			RateLimitRPS:   p.opts.RateLimitRPS,
		})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return aggregate, nil
}
