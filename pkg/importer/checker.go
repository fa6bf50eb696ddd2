package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// CheckResult is the outcome of checking one remote lexicon source.
type CheckResult struct {
	LexiconID string
	URL       string
	Status    int // 0 when the request failed
	// Stale is set when the server reports a Last-Modified later than the
	// last successful import of the lexicon.
	Stale bool
	Err   error
}

// Reachable reports whether the source answered with a 2xx or 3xx status.
func (r CheckResult) Reachable() bool {
	return r.Err == nil && r.Status >= 200 && r.Status < 400
}

// Checker watches the URLs that remote lexicons were imported from. Each
// pass records the HTTP status in the sources database and flags lexicons
// whose upstream file changed after the import.
type Checker struct {
	sources  *SourceDB
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

// NewChecker returns a Checker that runs a pass every interval.
func NewChecker(sources *SourceDB, logger *slog.Logger, interval time.Duration) *Checker {
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			// A moved source still counts as reachable; the import keeps its URL.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Run checks immediately and then after every interval, until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if _, err := c.CheckAll(ctx); err != nil && ctx.Err() == nil {
			c.logger.Error("lexicon source check failed", "error", err)
		}
		timer.Reset(c.interval)
	}
}

// CheckAll checks every lexicon imported from a URL and stores each status.
// Lexicons imported from local files are skipped.
func (c *Checker) CheckAll(ctx context.Context) ([]CheckResult, error) {
	sources, err := c.sources.ListSources()
	if err != nil {
		return nil, err
	}

	var results []CheckResult
	var stale, down int
	for _, src := range sources {
		if !src.IsRemote() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := c.Check(ctx, src)
		results = append(results, res)

		var msg string
		if res.Err != nil {
			msg = res.Err.Error()
		}
		if err := c.sources.UpdateCheck(src.LexiconID, res.Status, msg); err != nil {
			return results, err
		}

		switch {
		case !res.Reachable():
			down++
			c.logger.Warn("lexicon source unreachable", "lexicon", res.LexiconID, "url", res.URL, "status", res.Status, "error", msg)
		case res.Stale:
			stale++
			c.logger.Info("lexicon source changed since import", "lexicon", res.LexiconID, "url", res.URL)
		}
	}

	if len(results) > 0 {
		c.logger.Info("lexicon sources checked", "remote", len(results), "unreachable", down, "stale", stale)
	}
	return results, nil
}

// Check sends a HEAD request for src. Errors are reported in the result.
func (c *Checker) Check(ctx context.Context, src Source) CheckResult {
	res := CheckResult{LexiconID: src.LexiconID, URL: src.Source}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, src.Source, nil)
	if err != nil {
		res.Err = fmt.Errorf("lexicon %s: bad source URL: %w", src.LexiconID, err)
		return res
	}
	resp, err := c.client.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("lexicon %s: %w", src.LexiconID, err)
		return res
	}
	resp.Body.Close()

	res.Status = resp.StatusCode
	if src.ImportedAt != nil && resp.StatusCode == http.StatusOK {
		if mod, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
			res.Stale = mod.Unix() > *src.ImportedAt
		}
	}
	return res
}
