package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rodaine/table"

	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/importer"
)

// printStats prints the final statistics block of an import run.
func printStats(w io.Writer, s importer.Stats) {
	tbl := table.New("Metric", "Value").WithWriter(w)
	tbl.AddRow("entries read", s.Entries)
	tbl.AddRow("skipped", s.Skipped)
	tbl.AddRow("characters created", s.CharactersCreated)
	tbl.AddRow("characters existing", s.CharactersExisted)
	tbl.AddRow("definitions", s.Definitions)
	tbl.AddRow("examples", s.Examples)
	tbl.AddRow("phrases", s.Phrases)
	tbl.AddRow("phrases skipped", s.PhrasesSkipped)
	tbl.AddRow("pinyin updated", s.Updated)
	tbl.AddRow("errors", s.Errors)
	tbl.AddRow("interrupted", s.Interrupted)
	tbl.AddRow("elapsed", s.Elapsed.Round(time.Millisecond))
	if secs := s.Elapsed.Seconds(); secs > 0 {
		tbl.AddRow("entries/sec", fmt.Sprintf("%.0f", float64(s.Entries)/secs))
	}
	tbl.Print()
}

func printReport(w io.Writer, r importer.Report) {
	tbl := table.New("Metric", "Value").WithWriter(w)
	tbl.AddRow("entries", r.Entries)
	tbl.AddRow("missing simplified", r.MissingSimplified)
	tbl.AddRow("missing pinyin", r.MissingPinyin)
	tbl.AddRow("without definitions", r.WithoutDefinitions)
	tbl.AddRow("definitions", r.Definitions)
	tbl.AddRow("examples", r.Examples)
	tbl.Print()
}

func printMetadata(w io.Writer, m dsl.Metadata) {
	tbl := table.New("Header", "Value").WithWriter(w)
	tbl.AddRow("NAME", m.Name)
	tbl.AddRow("INDEX_LANGUAGE", m.IndexLanguage)
	tbl.AddRow("CONTENTS_LANGUAGE", m.ContentsLanguage)

	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tbl.AddRow(k, m.Extra[k])
	}
	tbl.Print()
	fmt.Fprintln(w)
}
