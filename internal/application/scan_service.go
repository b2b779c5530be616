package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/embercheck/embercheck/internal/domain"
	"github.com/embercheck/embercheck/internal/domain/match"
	"github.com/embercheck/embercheck/internal/domain/report"
)

// driver states; transitions only move forward. Cancellation jumps from
// scanning straight to done with partial reporter output flushed.
type driverState int

const (
	stateIdle driverState = iota
	stateScanning
	stateReporting
	stateDone
)

func (s driverState) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateReporting:
		return "reporting"
	case stateDone:
		return "done"
	default:
		return "idle"
	}
}

// ScanOptions are the per-invocation knobs; zero values defer to the
// target's .embercheck.yaml and the built-in defaults.
type ScanOptions struct {
	RulesPath   string
	Include     []string
	Exclude     []string
	Concurrency int
	FileTimeout time.Duration
}

// ScanService orchestrates the scan pipeline:
// load corpus -> walk target -> parse+match per file (bounded workers) -> report.
type ScanService struct {
	corpusLoader domain.CorpusLoader
	scanner      domain.TargetScanner
	parser       domain.SourceParser
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	history      domain.ScanHistory
	logger       *zap.Logger
}

func NewScanService(
	corpusLoader domain.CorpusLoader,
	scanner domain.TargetScanner,
	parser domain.SourceParser,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
	history domain.ScanHistory,
	logger *zap.Logger,
) *ScanService {
	return &ScanService{
		corpusLoader: corpusLoader,
		scanner:      scanner,
		parser:       parser,
		configLoader: configLoader,
		git:          git,
		history:      history,
		logger:       logger.Named("scan"),
	}
}

// fileResult is one worker's complete output for one file. Workers hand the
// sink whole batches, never partial records.
type fileResult struct {
	file     string
	matches  []ruleMatch
	skipped  *domain.SkippedFile
	analyzed bool
}

type ruleMatch struct {
	rule  domain.Rule
	spans []domain.Span
}

// Scan runs the full pipeline against rootPath. Per-file failures are
// recovered and listed in the report; the run always produces a report
// unless the corpus or the root walk fails. On context cancellation the
// partial report collected so far is flushed and returned.
func (s *ScanService) Scan(ctx context.Context, rootPath string, opts ScanOptions) (*domain.Report, error) {
	state := stateIdle

	// 0. Project config, overridden by explicit options.
	cfg, err := s.configLoader.Load(rootPath)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	include := opts.Include
	if len(include) == 0 {
		include = cfg.EffectiveInclude()
	}
	exclude := opts.Exclude
	if len(exclude) == 0 {
		exclude = cfg.Exclude
	}
	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	timeout := opts.FileTimeout
	if timeout == 0 {
		timeout = cfg.EffectiveFileTimeout()
	}

	// 1. Corpus (fatal on failure).
	corpus, err := s.corpusLoader.Load(opts.RulesPath)
	if err != nil {
		return nil, err
	}
	rules := activeRules(corpus, cfg)

	// 2. Target walk (fatal on failure: nothing to scan).
	scan, err := s.scanner.Scan(rootPath, include, exclude)
	if err != nil {
		return nil, fmt.Errorf("scanning target: %w", err)
	}

	state = stateScanning
	s.logger.Debug("state transition",
		zap.String("state", state.String()),
		zap.Int("files", len(scan.Files)),
		zap.Int("rules", len(rules)),
		zap.Int("concurrency", concurrency),
	)

	// 3. Parse + match, bounded worker pool. The sink only ever receives
	// complete per-file batches, so cancellation cannot corrupt it.
	var (
		mu      sync.Mutex
		results []fileResult
	)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, f := range scan.Files {
		if groupCtx.Err() != nil {
			break // stop dispatching promptly on cancellation
		}
		file := f
		g.Go(func() error {
			res := s.analyzeFile(groupCtx, scan.RootPath, file, rules, timeout)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	cancelled := ctx.Err() != nil

	// 4. Aggregate. Ordering is fixed by the reporter's final sort, never
	// by worker completion order.
	state = stateReporting
	s.logger.Debug("state transition", zap.String("state", state.String()))

	rep := report.New()
	result := &domain.Report{
		RootPath:  scan.RootPath,
		Timestamp: time.Now(),
	}

	for _, r := range results {
		if r.skipped != nil {
			result.Skipped = append(result.Skipped, *r.skipped)
			continue
		}
		if r.analyzed {
			result.FilesAnalyzed++
		}
		for _, m := range r.matches {
			rep.Add(m.rule, r.file, m.spans)
		}
	}

	result.Findings, result.Summary = rep.Finalize()
	result.SortSkipped()

	if hash, err := s.git.CommitHash(scan.RootPath); err == nil {
		result.CommitHash = hash
	}

	if !cancelled {
		entry := domain.ScanEntry{
			Timestamp:  result.Timestamp.Format(time.RFC3339),
			CommitHash: result.CommitHash,
			Findings:   result.Summary.Total(),
			Critical:   result.Summary.Critical,
		}
		if err := s.history.Save(scan.RootPath, entry); err != nil {
			s.logger.Debug("history not saved", zap.Error(err))
		}
	}

	state = stateDone
	s.logger.Debug("state transition",
		zap.String("state", state.String()),
		zap.Bool("cancelled", cancelled),
		zap.Int("findings", len(result.Findings)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// analyzeFile runs parse + match for one file under the per-file budget.
// Every failure mode maps to an explicit skip entry; none aborts the run.
func (s *ScanService) analyzeFile(
	ctx context.Context,
	rootPath, file string,
	rules []domain.Rule,
	timeout time.Duration,
) fileResult {
	res := fileResult{file: file}

	src, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(file)))
	if err != nil {
		s.logger.Warn("file unreadable", zap.String("file", file), zap.Error(err))
		res.skipped = &domain.SkippedFile{Path: file, Reason: domain.SkipUnreadable, Detail: err.Error()}
		return res
	}

	fileCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsed, err := s.parser.Parse(fileCtx, file, src)
	if err != nil {
		reason := domain.SkipUnparsable
		if errors.Is(err, context.DeadlineExceeded) || fileCtx.Err() != nil {
			reason = domain.SkipTimeout
		}
		s.logger.Warn("file not analyzed",
			zap.String("file", file),
			zap.String("reason", reason),
			zap.Error(err),
		)
		res.skipped = &domain.SkippedFile{Path: file, Reason: reason, Detail: err.Error()}
		return res
	}

	res.analyzed = true
	for _, rule := range rules {
		if spans := match.Match(rule, parsed); len(spans) > 0 {
			res.matches = append(res.matches, ruleMatch{rule: rule, spans: spans})
		}
	}
	return res
}

// activeRules returns the enforced rules minus those the target disabled.
func activeRules(corpus *domain.Corpus, cfg domain.ProjectConfig) []domain.Rule {
	var rules []domain.Rule
	for _, r := range corpus.Enforced() {
		if !cfg.IsDisabledRule(r.ID) {
			rules = append(rules, r)
		}
	}
	return rules
}
