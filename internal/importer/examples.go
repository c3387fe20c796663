package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

// writeExamples attaches every entry, a Chinese phrase with its Russian
// translation, as an example of each character it contains. The characters
// of the whole batch are resolved with one lookup.
func (im *Importer) writeExamples(ctx context.Context, batch []dsl.Entry, stats *Stats) {
	seen := make(map[string]struct{})
	var glyphs []string
	for _, e := range batch {
		for _, r := range e.Simplified {
			g := string(r)
			if _, ok := seen[g]; ok || !lang.IsCJK(r) {
				continue
			}
			seen[g] = struct{}{}
			glyphs = append(glyphs, g)
		}
	}
	if len(glyphs) == 0 {
		stats.Skipped += len(batch)
		return
	}

	ids, err := im.chars.GetIDsBySimplified(ctx, glyphs)
	if err != nil {
		stats.Errors++
		im.log.WarnContext(ctx, "resolve example characters failed",
			slog.Int("characters", len(glyphs)),
			slog.String("error", err.Error()),
		)
		return
	}

	rows := make([]entryRows, 0, len(batch))
	for _, e := range batch {
		russian := exampleTranslation(e)
		if e.Simplified == "" || russian == "" {
			stats.Skipped++
			continue
		}

		rows = append(rows, entryRows{headword: e.Simplified})
		row := &rows[len(rows)-1]
		attached := make(map[string]struct{})
		for _, r := range e.Simplified {
			g := string(r)
			id, ok := ids[g]
			if !ok {
				continue
			}
			if _, dup := attached[g]; dup {
				continue
			}
			attached[g] = struct{}{}
			row.examples = append(row.examples, domain.Example{
				CharacterID: id,
				Chinese:     e.Simplified,
				Pinyin:      strOrNil(e.Pinyin),
				Russian:     russian,
				Source:      strOrNil(im.cfg.Source),
			})
		}
		if len(attached) == 0 {
			stats.Skipped++
		}
	}

	im.insertRows(ctx, rows, stats)
}

// exampleTranslation joins the entry's definitions into one Russian line.
func exampleTranslation(e dsl.Entry) string {
	parts := make([]string, 0, len(e.Definitions))
	for _, d := range e.Definitions {
		if t := strings.TrimSpace(d.Translation); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "; ")
}
