// Package dsl reads Lingvo DSL / BKRS dictionary sources as a stream of
// structured entries.
package dsl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	defaultMaxLineSize = 16 << 20 // 16 MiB
	bom                = "\uFEFF"
)

// Metadata holds the #DIRECTIVE "value" lines of the file header.
type Metadata struct {
	Name             string
	IndexLanguage    string
	ContentsLanguage string
	Extra            map[string]string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxLineSize bounds the length of a single source line.
func WithMaxLineSize(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxLineSize = n
		}
	}
}

// WithMarkup replaces the tag extractor used to parse entries.
func WithMarkup(m Markup) Option {
	return func(s *Scanner) {
		if m != nil {
			s.parser = NewParser(m)
		}
	}
}

// Scanner pulls entries one at a time from a DSL source, holding at most one
// entry in memory. Use it like bufio.Scanner:
//
//	sc := dsl.NewScanner(r)
//	for sc.Scan() {
//		e := sc.Entry()
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	lines       *bufio.Scanner
	parser      *Parser
	maxLineSize int

	meta     Metadata
	line     int
	inHeader bool
	done     bool
	err      error

	// open entry
	headword   string
	hasEntry   bool
	content    []string
	pinyinLine string
	sawContent bool

	entry Entry
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader, opts ...Option) *Scanner {
	s := &Scanner{
		parser:      defaultParser,
		maxLineSize: defaultMaxLineSize,
		inHeader:    true,
		meta:        Metadata{Extra: make(map[string]string)},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lines = bufio.NewScanner(r)
	s.lines.Buffer(make([]byte, 0, min(64*1024, s.maxLineSize)), s.maxLineSize)
	return s
}

// Scan advances to the next entry. It returns false at the end of the input
// or on a read error, which Err reports.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	for s.lines.Scan() {
		s.line++
		text := strings.TrimRight(s.lines.Text(), "\r")
		if s.line == 1 {
			text = strings.TrimPrefix(text, bom)
		}

		if s.inHeader {
			if strings.HasPrefix(text, "#") {
				s.directive(text)
				continue
			}
			s.inHeader = false
			if strings.TrimSpace(text) == "" {
				continue
			}
		}

		if strings.TrimSpace(text) == "" {
			if s.hasEntry {
				s.emit()
				return true
			}
			continue
		}

		if text[0] == ' ' || text[0] == '\t' {
			s.addContent(strings.TrimSpace(text))
			continue
		}

		// A new headword closes the previous entry.
		if s.hasEntry {
			s.emit()
			s.open(text)
			return true
		}
		s.open(text)
	}

	s.done = true
	if err := s.lines.Err(); err != nil {
		s.err = fmt.Errorf("dsl: read line %d: %w", s.line+1, err)
		return false
	}
	if s.hasEntry {
		s.emit()
		return true
	}
	return false
}

// Entry returns the entry produced by the last successful Scan.
func (s *Scanner) Entry() Entry { return s.entry }

// Metadata returns the header directives read so far.
func (s *Scanner) Metadata() Metadata { return s.meta }

// Err returns the first read error.
func (s *Scanner) Err() error { return s.err }

// Line returns the number of source lines consumed.
func (s *Scanner) Line() int { return s.line }

func (s *Scanner) open(headword string) {
	s.headword = strings.TrimSpace(headword)
	s.hasEntry = true
	s.content = s.content[:0]
	s.pinyinLine = ""
	s.sawContent = false
}

func (s *Scanner) addContent(line string) {
	if !s.hasEntry {
		return
	}
	first := !s.sawContent
	s.sawContent = true
	if first && IsPinyinLine(line) {
		s.pinyinLine = line
		return
	}
	s.content = append(s.content, line)
}

func (s *Scanner) emit() {
	s.entry = s.parser.ParseEntry(s.headword, strings.Join(s.content, "\n"), s.pinyinLine)
	s.hasEntry = false
}

func (s *Scanner) directive(line string) {
	body := strings.TrimPrefix(line, "#")
	key, value := body, ""
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		key, value = body[:i], body[i+1:]
	}
	key = strings.ToUpper(strings.TrimSpace(key))
	value = strings.Trim(strings.TrimSpace(value), `"`)

	switch key {
	case "":
		return
	case "NAME":
		s.meta.Name = value
	case "INDEX_LANGUAGE":
		s.meta.IndexLanguage = value
	case "CONTENTS_LANGUAGE":
		s.meta.ContentsLanguage = value
	default:
		s.meta.Extra[key] = value
	}
}
