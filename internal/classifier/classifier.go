// Package classifier suggests a category for a transaction description.
//
// A keyword table always runs locally. When a remote zero-shot model is
// configured it runs alongside, and Arbitrate merges the two opinions. Remote
// failures are logged and treated as "no opinion".
package classifier

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lifetrack/internal/cache"
	"lifetrack/internal/metrics"
)

// Source tags which path produced a result.
type Source string

const (
	SourceLocalKeyword             Source = "local-keyword"
	SourceLocalDefault             Source = "local-default"
	SourceHuggingFace              Source = "hugging-face"
	SourceHybridLocal              Source = "hybrid-local"
	SourceHuggingFaceLowConfidence Source = "hugging-face-low-confidence"
)

const (
	// MinRemoteConfidence is the score at which a remote result wins outright.
	MinRemoteConfidence = 0.45

	hybridFactor        = 0.85
	lowConfidenceFactor = 0.8

	// DefaultTimeout bounds a single remote call.
	DefaultTimeout = 5 * time.Second

	cacheSize = 512
	cacheTTL  = time.Hour
)

// Result is a suggested category.
type Result struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// Remote is a zero-shot classification backend.
type Remote interface {
	Classify(ctx context.Context, description, txType string, labels []string) (Result, error)
}

// Arbitrate merges the local result with an optional remote one.
func Arbitrate(local Result, remote *Result) Result {
	if remote == nil {
		return local
	}
	if remote.Confidence >= MinRemoteConfidence {
		return Result{Category: remote.Category, Confidence: remote.Confidence, Source: SourceHuggingFace}
	}
	if local.Category != DefaultCategory {
		return Result{
			Category:   local.Category,
			Confidence: max(local.Confidence, remote.Confidence*hybridFactor),
			Source:     SourceHybridLocal,
		}
	}
	return Result{
		Category:   remote.Category,
		Confidence: remote.Confidence * lowConfidenceFactor,
		Source:     SourceHuggingFaceLowConfidence,
	}
}

// Classifier combines a keyword table with an optional remote model.
type Classifier struct {
	table   Table
	remote  Remote
	timeout time.Duration
	cache   *cache.LRU[Result]
	log     *zap.SugaredLogger
}

// New creates a Classifier. A nil remote restricts it to keyword matching.
func New(table Table, remote Remote, timeout time.Duration, log *zap.SugaredLogger) *Classifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Classifier{
		table:   table,
		remote:  remote,
		timeout: timeout,
		cache:   cache.NewLRU[Result](cacheSize, cacheTTL),
		log:     log,
	}
}

// Table returns the keyword table in use.
func (c *Classifier) Table() Table { return c.table }

// RemoteEnabled reports whether a remote model is configured.
func (c *Classifier) RemoteEnabled() bool { return c.remote != nil }

// Labels returns the candidate categories for txType.
func (c *Classifier) Labels(txType string) []string {
	return c.table.Labels(txType)
}

// Predict suggests a category for description. It never fails.
func (c *Classifier) Predict(ctx context.Context, description, txType string) Result {
	res := c.predict(ctx, description, ResolveType(txType))
	metrics.ClassifierPredictions.WithLabelValues(string(res.Source)).Inc()
	return res
}

func (c *Classifier) predict(ctx context.Context, description, txType string) Result {
	text := strings.TrimSpace(description)
	if text == "" {
		return Result{Category: DefaultCategory, Confidence: emptyConfidence, Source: SourceLocalDefault}
	}

	if c.remote == nil {
		return c.table.Match(text, txType)
	}

	key := txType + "|" + strings.ToLower(text)
	if cached, ok := c.cache.Get(key); ok {
		return Arbitrate(c.table.Match(text, txType), &cached)
	}

	var (
		local  Result
		remote *Result
	)

	var g errgroup.Group
	g.Go(func() error {
		rctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		r, err := c.remote.Classify(rctx, text, txType, c.table.Labels(txType))
		if err != nil {
			c.log.Warnw("remote categorization failed, using keyword match", "type", txType, "error", err)
			return nil
		}
		remote = &r
		return nil
	})
	local = c.table.Match(text, txType)
	_ = g.Wait()

	if remote != nil {
		c.cache.Set(key, *remote)
	}
	return Arbitrate(local, remote)
}
