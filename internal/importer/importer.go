package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maxbaydi/guide-for-china/internal/dsl"
)

// Mode selects how entries are mapped onto the store.
type Mode string

const (
	// ModeCharacters imports Chinese headwords with definitions and examples.
	ModeCharacters Mode = "characters"
	// ModePhrases imports Russian headwords as phrase-book entries.
	ModePhrases Mode = "phrases"
	// ModeExamples attaches Chinese phrases as examples of their characters.
	ModeExamples Mode = "examples"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeCharacters, ModePhrases, ModeExamples:
		return true
	}
	return false
}

// Config holds importer settings.
type Config struct {
	Mode          Mode
	BatchSize     int
	ProgressEvery int
	// Limit stops the run after this many entries. Zero means no limit.
	Limit  int
	DryRun bool
	// Source tags imported examples.
	Source string
}

// Stats holds the running counters of one run.
type Stats struct {
	Entries           int
	Skipped           int
	CharactersCreated int
	CharactersExisted int
	Definitions       int
	Examples          int
	Phrases           int
	PhrasesSkipped    int
	Updated           int
	Errors            int
	Interrupted       bool
	Elapsed           time.Duration
}

// Importer consumes an entry stream and writes it in batches.
type Importer struct {
	log     *slog.Logger
	chars   CharacterStore
	phrases PhraseStore
	tx      txManager
	cfg     Config
}

// New creates an Importer. Zero sizes fall back to 500 entries per batch and
// a progress line every 10000 entries.
func New(log *slog.Logger, chars CharacterStore, phrases PhraseStore, cfg Config) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 10000
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeCharacters
	}
	return &Importer{
		log:     log.With("component", "importer", "mode", string(cfg.Mode)),
		chars:   chars,
		phrases: phrases,
		cfg:     cfg,
	}
}

// SetTxManager makes the per-batch bulk inserts of a character import atomic.
func (im *Importer) SetTxManager(tx txManager) {
	im.tx = tx
}

// Import reads src to the end, or until ctx is done or the limit is reached,
// and writes every batch. Per-entry failures are counted in Stats.Errors;
// only a source read failure aborts the run.
func (im *Importer) Import(ctx context.Context, src EntrySource) (Stats, error) {
	if !im.cfg.Mode.IsValid() {
		return Stats{}, fmt.Errorf("unknown import mode %q", im.cfg.Mode)
	}

	var flush func(ctx context.Context, batch []dsl.Entry, stats *Stats)
	switch im.cfg.Mode {
	case ModeCharacters:
		flush = im.writeCharacters
	case ModePhrases:
		flush = im.writePhrases
	case ModeExamples:
		flush = im.writeExamples
	}
	if im.cfg.DryRun {
		flush = func(context.Context, []dsl.Entry, *Stats) {}
	}

	return im.run(ctx, src, flush)
}

// run pulls entries in batches and hands each full batch to flush. Entries
// already pulled when ctx ends are still written.
func (im *Importer) run(ctx context.Context, src EntrySource, flush func(ctx context.Context, batch []dsl.Entry, stats *Stats)) (Stats, error) {
	var stats Stats
	start := time.Now()
	lastProgress := start
	batch := make([]dsl.Entry, 0, im.cfg.BatchSize)

	for {
		if ctx.Err() != nil {
			stats.Interrupted = true
			break
		}
		if im.cfg.Limit > 0 && stats.Entries >= im.cfg.Limit {
			break
		}
		if !src.Scan() {
			break
		}

		batch = append(batch, src.Entry())
		stats.Entries++

		if len(batch) == im.cfg.BatchSize {
			flush(ctx, batch, &stats)
			batch = batch[:0]
		}

		if stats.Entries%im.cfg.ProgressEvery == 0 {
			now := time.Now()
			im.log.InfoContext(ctx, "import progress",
				slog.Int("entries", stats.Entries),
				slog.Int("errors", stats.Errors),
				slog.Float64("entries_per_sec", float64(im.cfg.ProgressEvery)/now.Sub(lastProgress).Seconds()),
			)
			lastProgress = now
		}
	}

	if len(batch) > 0 {
		flush(context.WithoutCancel(ctx), batch, &stats)
	}
	stats.Elapsed = time.Since(start)

	if err := src.Err(); err != nil {
		return stats, fmt.Errorf("read source: %w", err)
	}

	im.log.InfoContext(ctx, "import finished",
		slog.Int("entries", stats.Entries),
		slog.Int("errors", stats.Errors),
		slog.Bool("interrupted", stats.Interrupted),
		slog.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

// inTx runs fn inside a transaction when a TxManager is set.
func (im *Importer) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if im.tx == nil {
		return fn(ctx)
	}
	return im.tx.RunInTx(ctx, fn)
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
