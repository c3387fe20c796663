package importer

import (
	"context"
	"log/slog"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

// writeCharacters finds or creates the character of every entry, then
// inserts the batch's definitions and examples in bulk.
func (im *Importer) writeCharacters(ctx context.Context, batch []dsl.Entry, stats *Stats) {
	rows := make([]entryRows, 0, len(batch))
	for _, e := range batch {
		if e.Simplified == "" {
			stats.Skipped++
			continue
		}

		id, created, err := im.chars.Upsert(ctx, characterUpsert(e))
		if err != nil {
			stats.Errors++
			im.log.WarnContext(ctx, "upsert character failed",
				slog.String("headword", e.Headword),
				slog.String("error", err.Error()),
			)
			continue
		}
		if created {
			stats.CharactersCreated++
		} else {
			stats.CharactersExisted++
		}

		r := entryRows{headword: e.Headword}
		for _, d := range e.Definitions {
			r.defs = append(r.defs, domain.Definition{
				CharacterID:  id,
				Translation:  d.Translation,
				PartOfSpeech: strOrNil(d.PartOfSpeech),
				Context:      strOrNil(d.Context),
				Order:        d.Order,
			})
		}
		for _, ex := range e.Examples {
			r.examples = append(r.examples, domain.Example{
				CharacterID: id,
				Chinese:     ex.Chinese,
				Russian:     ex.Russian,
				Source:      strOrNil(im.cfg.Source),
			})
		}
		rows = append(rows, r)
	}

	im.insertRows(ctx, rows, stats)
}

// entryRows are the definitions and examples produced by one source entry.
type entryRows struct {
	headword string
	defs     []domain.Definition
	examples []domain.Example
}

func (r entryRows) empty() bool {
	return len(r.defs) == 0 && len(r.examples) == 0
}

// insertRows writes the rows of a whole batch in one transaction. When the
// batch is rejected each entry is retried in its own transaction, so a bad
// row loses only the entry it came from.
func (im *Importer) insertRows(ctx context.Context, rows []entryRows, stats *Stats) {
	var all entryRows
	entries := 0
	for _, r := range rows {
		if r.empty() {
			continue
		}
		entries++
		all.defs = append(all.defs, r.defs...)
		all.examples = append(all.examples, r.examples...)
	}
	if entries == 0 {
		return
	}

	nDefs, nExamples, err := im.insertEntry(ctx, all)
	if err == nil {
		stats.Definitions += nDefs
		stats.Examples += nExamples
		return
	}
	if entries > 1 {
		im.log.WarnContext(ctx, "bulk insert failed, retrying per entry",
			slog.Int("entries", entries),
			slog.String("error", err.Error()),
		)
	}

	for _, r := range rows {
		if r.empty() {
			continue
		}
		if entries > 1 {
			nDefs, nExamples, err = im.insertEntry(ctx, r)
		}
		if err != nil {
			stats.Errors++
			im.log.WarnContext(ctx, "insert definitions and examples failed",
				slog.String("headword", r.headword),
				slog.Int("definitions", len(r.defs)),
				slog.Int("examples", len(r.examples)),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.Definitions += nDefs
		stats.Examples += nExamples
	}
}

// insertEntry writes definitions then examples in one transaction.
func (im *Importer) insertEntry(ctx context.Context, r entryRows) (defs, examples int, err error) {
	err = im.inTx(ctx, func(ctx context.Context) error {
		if len(r.defs) > 0 {
			n, err := im.chars.BulkInsertDefinitions(ctx, r.defs)
			if err != nil {
				return err
			}
			defs = n
		}
		if len(r.examples) > 0 {
			n, err := im.chars.BulkInsertExamples(ctx, r.examples)
			if err != nil {
				return err
			}
			examples = n
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return defs, examples, nil
}

// characterUpsert maps an entry onto the character row. Without pinyin the
// searchable pinyin_plain is transliterated from the headword.
func characterUpsert(e dsl.Entry) domain.CharacterUpsert {
	c := domain.CharacterUpsert{
		Simplified:  e.Simplified,
		Traditional: strOrNil(e.Traditional),
		Pinyin:      strOrNil(e.Pinyin),
	}
	if e.Pinyin != "" {
		c.PinyinPlain = strOrNil(lang.NormalizePinyin(e.Pinyin))
	} else {
		c.PinyinPlain = strOrNil(transliterate(e.Simplified))
	}
	return c
}

// transliterate returns the toneless pinyin of s, or "" when s has nothing
// that converts.
func transliterate(s string) string {
	out := lang.ChineseToPinyin(s)
	if out == s || lang.ContainsCJK(out) {
		return ""
	}
	return out
}
