package importer

import (
	"context"
	"log/slog"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

// UpdatePinyin re-reads a source and backfills pinyin onto existing
// characters. A present value is never replaced by an empty one.
func (im *Importer) UpdatePinyin(ctx context.Context, src EntrySource) (Stats, error) {
	flush := im.writePinyin
	if im.cfg.DryRun {
		flush = func(_ context.Context, batch []dsl.Entry, stats *Stats) {
			for _, e := range batch {
				if e.Simplified == "" || e.Pinyin == "" {
					stats.Skipped++
				}
			}
		}
	}
	return im.run(ctx, src, flush)
}

func (im *Importer) writePinyin(ctx context.Context, batch []dsl.Entry, stats *Stats) {
	updates := make([]domain.PinyinUpdate, 0, len(batch))
	for _, e := range batch {
		if e.Simplified == "" || e.Pinyin == "" {
			stats.Skipped++
			continue
		}
		updates = append(updates, domain.PinyinUpdate{
			Simplified:  e.Simplified,
			Pinyin:      e.Pinyin,
			PinyinPlain: lang.NormalizePinyin(e.Pinyin),
		})
	}
	if len(updates) == 0 {
		return
	}

	n, err := im.chars.BulkUpdatePinyin(ctx, updates)
	if err != nil {
		stats.Errors++
		im.log.WarnContext(ctx, "update pinyin failed",
			slog.Int("updates", len(updates)),
			slog.String("error", err.Error()),
		)
		return
	}
	stats.Updated += n
}
