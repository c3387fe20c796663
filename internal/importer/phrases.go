package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

// phraseSeparator joins the Chinese runs found in one entry.
const phraseSeparator = ", "

// writePhrases stores every entry as a phrase: the headword is the Russian
// side, the Chinese runs of its content are the Chinese side. Pairs already
// stored are skipped.
func (im *Importer) writePhrases(ctx context.Context, batch []dsl.Entry, stats *Stats) {
	type pairKey struct{ russian, chinese string }

	seen := make(map[pairKey]struct{}, len(batch))
	phrases := make([]domain.Phrase, 0, len(batch))
	for _, e := range batch {
		p, ok := phraseOf(e)
		if !ok {
			stats.PhrasesSkipped++
			continue
		}
		k := pairKey{p.Russian, p.Chinese}
		if _, dup := seen[k]; dup {
			stats.PhrasesSkipped++
			continue
		}
		seen[k] = struct{}{}
		phrases = append(phrases, p)
	}
	if len(phrases) == 0 {
		return
	}

	inserted, err := im.phrases.BulkInsert(ctx, phrases)
	if err == nil {
		stats.Phrases += inserted
		stats.PhrasesSkipped += len(phrases) - inserted
		return
	}
	if len(phrases) == 1 {
		im.phraseFailed(ctx, phrases[0], err, stats)
		return
	}

	im.log.WarnContext(ctx, "bulk insert phrases failed, retrying per phrase",
		slog.Int("phrases", len(phrases)),
		slog.String("error", err.Error()),
	)
	for _, p := range phrases {
		n, err := im.phrases.BulkInsert(ctx, []domain.Phrase{p})
		if err != nil {
			im.phraseFailed(ctx, p, err, stats)
			continue
		}
		stats.Phrases += n
		stats.PhrasesSkipped += 1 - n
	}
}

func (im *Importer) phraseFailed(ctx context.Context, p domain.Phrase, err error, stats *Stats) {
	stats.Errors++
	im.log.WarnContext(ctx, "insert phrase failed",
		slog.String("russian", p.Russian),
		slog.String("error", err.Error()),
	)
}

func phraseOf(e dsl.Entry) (domain.Phrase, bool) {
	russian := strings.TrimSpace(e.Headword)
	chinese := strings.Join(lang.CJKRuns(e.Content), phraseSeparator)
	if russian == "" || chinese == "" {
		return domain.Phrase{}, false
	}
	return domain.Phrase{
		Russian: russian,
		Chinese: chinese,
		Pinyin:  strOrNil(transliterate(chinese)),
	}, true
}
