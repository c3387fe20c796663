package importer

import (
	"context"
	"fmt"
)

// Report summarizes a source without touching the store.
type Report struct {
	Entries            int
	MissingSimplified  int
	MissingPinyin      int
	WithoutDefinitions int
	Definitions        int
	Examples           int
}

// Validate parses src to the end and counts what an import would write.
func Validate(ctx context.Context, src EntrySource) (Report, error) {
	var r Report
	for src.Scan() {
		if err := ctx.Err(); err != nil {
			return r, err
		}

		e := src.Entry()
		r.Entries++
		if e.Simplified == "" {
			r.MissingSimplified++
		}
		if e.Pinyin == "" {
			r.MissingPinyin++
		}
		if len(e.Definitions) == 0 {
			r.WithoutDefinitions++
		}
		r.Definitions += len(e.Definitions)
		r.Examples += len(e.Examples)
	}
	if err := src.Err(); err != nil {
		return r, fmt.Errorf("read source: %w", err)
	}
	return r, nil
}
