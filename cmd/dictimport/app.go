package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres/character"
	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres/phrase"
	"github.com/maxbaydi/guide-for-china/internal/app"
	"github.com/maxbaydi/guide-for-china/internal/config"
	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/importer"
)

// Compile-time interface assertions.
var (
	_ importer.CharacterStore = (*character.Repo)(nil)
	_ importer.PhraseStore    = (*phrase.Repo)(nil)
	_ importer.EntrySource    = (*dsl.Scanner)(nil)
)

const defaultMaxLineSize = 16 << 20

var errMissingFile = errors.New("missing dictionary file argument")

var (
	batchSizeFlag = &cli.IntFlag{
		Name:  "batch-size",
		Usage: "entries per database batch (default from config)",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "stop after `N` entries (0 = no limit)",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "stop reading after `DURATION` (0 = no limit)",
	}
	dryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "parse the file without writing to the database",
	}
	noProgressFlag = &cli.BoolFlag{
		Name:  "no-progress",
		Usage: "do not draw a progress bar",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "dictimport",
		Usage:   "Import DSL/BKRS dictionaries into the Chinese-Russian dictionary.",
		Version: app.BuildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read settings from `FILE` (default ./config.yaml when present)",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "import entries from a DSL file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "what to import: characters, phrases or examples",
						Value: string(importer.ModeCharacters),
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "source tag stored on imported examples (default from config)",
					},
					batchSizeFlag, limitFlag, timeoutFlag, dryRunFlag, noProgressFlag,
				},
				Action: importAction,
			},
			{
				Name:      "update-pinyin",
				Usage:     "backfill pinyin of existing characters from a DSL file",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{batchSizeFlag, limitFlag, timeoutFlag, dryRunFlag, noProgressFlag},
				Action:    updatePinyinAction,
			},
			{
				Name:      "validate",
				Usage:     "parse a DSL file and print what an import would write",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-line-size",
						Usage: "longest accepted line in `BYTES`",
						Value: defaultMaxLineSize,
					},
					noProgressFlag,
				},
				Action: validateAction,
			},
		},
	}
}

func importAction(c *cli.Context) error {
	mode := importer.Mode(c.String("mode"))
	if !mode.IsValid() {
		return fmt.Errorf("unknown mode %q", mode)
	}

	return withImporter(c, mode, func(ctx context.Context, im *importer.Importer, src importer.EntrySource) (importer.Stats, error) {
		return im.Import(ctx, src)
	})
}

func updatePinyinAction(c *cli.Context) error {
	return withImporter(c, importer.ModeCharacters, func(ctx context.Context, im *importer.Importer, src importer.EntrySource) (importer.Stats, error) {
		return im.UpdatePinyin(ctx, src)
	})
}

func validateAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errMissingFile
	}

	source, bar, err := openSource(path, c.Bool("no-progress"))
	if err != nil {
		return err
	}
	defer source.Close()

	scanner := dsl.NewScanner(source, dsl.WithMaxLineSize(c.Int("max-line-size")))
	report, err := importer.Validate(c.Context, scanner)
	finishProgress(bar)
	if err != nil {
		return err
	}

	printMetadata(os.Stdout, scanner.Metadata())
	printReport(os.Stdout, report)
	return nil
}

type runFunc func(ctx context.Context, im *importer.Importer, src importer.EntrySource) (importer.Stats, error)

// withImporter loads configuration, connects to the database unless this is
// a dry run, and runs fn over the scanned file.
func withImporter(c *cli.Context, mode importer.Mode, fn runFunc) error {
	path := c.Args().First()
	if path == "" {
		return errMissingFile
	}

	cfg, err := config.LoadPath(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Database.ApplicationName += "-import"
	logger := app.NewLogger(cfg.Log)

	ctx := c.Context
	if d := c.Duration("timeout"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	importCfg := importer.Config{
		Mode:          mode,
		BatchSize:     cfg.Import.BatchSize,
		ProgressEvery: cfg.Import.ProgressEvery,
		Limit:         c.Int("limit"),
		DryRun:        c.Bool("dry-run"),
		Source:        cfg.Import.Source,
	}
	if n := c.Int("batch-size"); n > 0 {
		importCfg.BatchSize = n
	}
	if s := c.String("source"); s != "" {
		importCfg.Source = s
	}

	var im *importer.Importer
	if importCfg.DryRun {
		im = importer.New(logger, nil, nil, importCfg)
	} else {
		// Connecting must not be cut short by the run timeout.
		pool, err := postgres.NewPool(context.WithoutCancel(ctx), cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		im = importer.New(logger, character.New(pool), phrase.New(pool), importCfg)
		im.SetTxManager(postgres.NewTxManager(pool))
	}

	source, bar, err := openSource(path, c.Bool("no-progress"))
	if err != nil {
		return err
	}
	defer source.Close()

	scanner := dsl.NewScanner(source, dsl.WithMaxLineSize(cfg.Import.MaxLineSize))
	logger.Info("import started",
		slog.String("file", path),
		slog.String("mode", string(mode)),
		slog.Int("batch_size", importCfg.BatchSize),
		slog.Bool("dry_run", importCfg.DryRun),
	)

	stats, err := fn(ctx, im, scanner)
	finishProgress(bar)
	printStats(os.Stdout, stats)
	if err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logger.Warn("import stopped by timeout", slog.Duration("timeout", c.Duration("timeout")))
	}
	return nil
}

// openSource opens path with a byte-level progress bar on stderr.
func openSource(path string, noProgress bool) (*dsl.Source, *progressbar.ProgressBar, error) {
	if noProgress {
		source, err := dsl.Open(path)
		return source, nil, err
	}

	size := int64(-1)
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	bar := newProgressBar(size)

	source, err := dsl.Open(path, dsl.WithProgress(bar))
	if err != nil {
		return nil, nil, err
	}
	if source.Size() < 0 {
		// Decompressed size of a dictzip file is unknown up front.
		bar.ChangeMax64(-1)
	}
	return source, bar, nil
}

func newProgressBar(size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription("reading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		progressbar.OptionSpinnerType(14),
	)
}

func finishProgress(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
