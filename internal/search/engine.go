package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/harrison/kernelgrep/internal/logger"
	"github.com/harrison/kernelgrep/internal/pattern"
)

// DefaultMaxWorkers bounds the download pool when no width is configured.
const DefaultMaxWorkers = 10

// Fetcher is the archive access the engine needs; satisfied by
// mainline.Client.
type Fetcher interface {
	ListDirectories(ctx context.Context) ([]string, error)
	FetchChanges(ctx context.Context, dir string) (content string, ok bool, err error)
}

// Engine coordinates the concurrent search across all version directories.
type Engine struct {
	fetcher          Fetcher
	logger           logger.Logger
	maxWorkers       int
	progressInterval int
}

// NewEngine creates an Engine. maxWorkers <= 0 falls back to
// DefaultMaxWorkers; progressInterval <= 0 disables periodic progress lines.
func NewEngine(fetcher Fetcher, log logger.Logger, maxWorkers, progressInterval int) *Engine {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Engine{
		fetcher:          fetcher,
		logger:           log,
		maxWorkers:       maxWorkers,
		progressInterval: progressInterval,
	}
}

// dirResult carries one directory's outcome from a worker to the collector.
type dirResult struct {
	dir     string
	matches []Match
	err     error
}

// Run lists the version directories and searches each one's changes file for
// the patterns, using a bounded worker pool. Every failure is contained to
// its directory: a failed listing degenerates to an empty result, a failed
// fetch is logged and contributes nothing, and sibling tasks always run to
// completion. Run never returns an error.
func (e *Engine) Run(ctx context.Context, patterns pattern.Set) *ResultSet {
	results := NewResultSet()

	dirs, err := e.fetcher.ListDirectories(ctx)
	if err != nil {
		e.logger.LogError(fmt.Sprintf("Error fetching directories: %v", err))
		return results
	}
	e.logger.LogInfo(fmt.Sprintf("Found %d kernel directories", len(dirs)))
	if len(dirs) == 0 {
		return results
	}

	e.logger.LogInfo(fmt.Sprintf("Searching %d directories for patterns: %v", len(dirs), patterns.Raw()))

	maxWorkers := e.maxWorkers
	if maxWorkers > len(dirs) {
		maxWorkers = len(dirs)
	}

	semaphore := make(chan struct{}, maxWorkers)
	resultsCh := make(chan dirResult, len(dirs))

	var wg sync.WaitGroup
	for _, dir := range dirs {
		semaphore <- struct{}{}
		wg.Add(1)

		go func(dir string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			matches, err := e.searchDirectory(ctx, dir, patterns)
			resultsCh <- dirResult{dir: dir, matches: matches, err: err}
		}(dir)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	pb := logger.NewProgressBar(len(dirs), 10, false)
	processed := 0
	for r := range resultsCh {
		processed++
		pb.Increment()

		if r.err != nil {
			e.logger.LogWarn(fmt.Sprintf("Error processing %s: %v", r.dir, r.err))
		}
		results.Add(r.dir, r.matches)

		if e.progressInterval > 0 && processed%e.progressInterval == 0 {
			e.logger.LogInfo(fmt.Sprintf("Progress: %s directories", pb.Render()))
		}
	}

	e.logger.LogInfo(fmt.Sprintf("Search complete! Processed %d directories", processed))
	return results
}

// searchDirectory fetches one directory's changes file and greps it.
// A missing file (404) yields no matches and no error. Worker panics are
// converted to errors so one bad directory never takes down the run.
func (e *Engine) searchDirectory(ctx context.Context, dir string, patterns pattern.Set) (matches []Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches = nil
			err = fmt.Errorf("panic searching %s: %v", dir, r)
		}
	}()

	content, ok, err := e.fetcher.FetchChanges(ctx, dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return searchContent(content, patterns), nil
}

// searchContent greps the file content line by line. Each line is recorded at
// most once: the first pattern that matches claims it and the remaining
// patterns are skipped.
func searchContent(content string, patterns pattern.Set) []Match {
	var matches []Match
	for i, line := range strings.Split(content, "\n") {
		if _, ok := patterns.MatchLine(line); ok {
			matches = append(matches, Match{
				Line:   strings.TrimSpace(line),
				Number: i + 1,
			})
		}
	}
	return matches
}
