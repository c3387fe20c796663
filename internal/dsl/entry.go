package dsl

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/maxbaydi/guide-for-china/internal/lang"
)

// Entry is one dictionary record reconstructed from the source.
type Entry struct {
	Headword    string
	Simplified  string
	Traditional string
	Pinyin      string
	Definitions []Definition
	Examples    []Example
	// Content holds the raw content lines joined by newlines.
	Content string
}

// Definition is one translation parsed from an [mN] block.
type Definition struct {
	Translation  string
	PartOfSpeech string
	Context      string
	Order        int
}

// Example is one "chinese - russian" pair parsed from an [ex] segment.
type Example struct {
	Chinese string
	Russian string
}

const exampleDelimiter = " - "

var (
	// simplified（traditional） with full-width or ASCII parentheses.
	reHeadwordForms = regexp.MustCompile(`^(.+?)\s*[（(](.+?)[）)]\s*$`)
	reParenthetical = regexp.MustCompile(`[（(]([^（()）]+)[）)]`)
)

// Parser turns raw entry text into an Entry.
type Parser struct {
	markup Markup
}

// NewParser returns a Parser that extracts tags with m.
func NewParser(m Markup) *Parser {
	if m == nil {
		m = NewRegexpMarkup()
	}
	return &Parser{markup: m}
}

var defaultParser = NewParser(nil)

// ParseEntry parses an entry with the default regexp markup.
func ParseEntry(headword, content, pinyinLine string) Entry {
	return defaultParser.ParseEntry(headword, content, pinyinLine)
}

// ParseEntry never fails: markup that does not match is stripped as plain text.
func (p *Parser) ParseEntry(headword, content, pinyinLine string) Entry {
	headword = strings.TrimSpace(headword)
	e := Entry{
		Headword: headword,
		Content:  content,
	}
	e.Simplified, e.Traditional = splitHeadword(headword)
	e.Pinyin = p.resolvePinyin(headword, content, pinyinLine)
	e.Definitions = p.definitions(content)
	e.Examples = p.examples(content)
	return e
}

func splitHeadword(headword string) (simplified, traditional string) {
	if m := reHeadwordForms.FindStringSubmatch(headword); m != nil {
		simplified = lang.FilterCJK(m[1])
		traditional = lang.FilterCJK(m[2])
		if simplified != "" {
			return simplified, traditional
		}
	}
	return lang.FilterCJK(headword), ""
}

// resolvePinyin prefers the dedicated pinyin line, then a [t] tag or a pinyin
// parenthetical in the headword, then the same in the content.
func (p *Parser) resolvePinyin(headword, content, pinyinLine string) string {
	if s := collapseSpaces(pinyinLine); s != "" {
		return s
	}
	if s := p.inlinePinyin(headword); s != "" {
		return s
	}
	return p.inlinePinyin(content)
}

func (p *Parser) inlinePinyin(text string) string {
	if t, ok := p.markup.Tagged(text, "t"); ok {
		if s := collapseSpaces(p.markup.Strip(t)); s != "" {
			return s
		}
	}
	for _, m := range reParenthetical.FindAllStringSubmatch(text, -1) {
		if IsPinyinLine(m[1]) {
			return collapseSpaces(m[1])
		}
	}
	return ""
}

func (p *Parser) definitions(content string) []Definition {
	blocks := p.markup.Meanings(content)
	if blocks == nil {
		return p.plainDefinitions(content)
	}

	var defs []Definition
	for _, block := range blocks {
		block = p.markup.RemoveExamples(block)
		translation := collapseSpaces(p.markup.Strip(block))
		if translation == "" {
			continue
		}
		d := Definition{Translation: translation, Order: len(defs)}
		if pos, ok := p.markup.Tagged(block, "i"); ok {
			d.PartOfSpeech = collapseSpaces(p.markup.Strip(pos))
		}
		if ctx, ok := p.markup.Tagged(block, "c"); ok {
			d.Context = collapseSpaces(p.markup.Strip(ctx))
		}
		defs = append(defs, d)
	}
	return defs
}

// plainDefinitions treats every non-empty content line as a translation when
// the entry has no [mN] blocks.
func (p *Parser) plainDefinitions(content string) []Definition {
	var defs []Definition
	for _, line := range strings.Split(p.markup.RemoveExamples(content), "\n") {
		translation := collapseSpaces(p.markup.Strip(line))
		if translation == "" {
			continue
		}
		defs = append(defs, Definition{Translation: translation, Order: len(defs)})
	}
	return defs
}

func (p *Parser) examples(content string) []Example {
	var out []Example
	for _, block := range p.markup.ExampleBlocks(content) {
		for _, seg := range p.markup.ExampleSegments(block) {
			if ex, ok := splitExample(p.markup.Strip(seg)); ok {
				out = append(out, ex)
			}
		}
	}
	return out
}

func splitExample(seg string) (Example, bool) {
	chinese, russian, ok := strings.Cut(seg, exampleDelimiter)
	if !ok {
		return Example{}, false
	}
	ex := Example{
		Chinese: strings.TrimSpace(chinese),
		Russian: strings.TrimSpace(russian),
	}
	if ex.Chinese == "" || ex.Russian == "" {
		return Example{}, false
	}
	return ex, true
}

// IsPinyinLine reports whether s holds only Latin letters with diacritics,
// digits, spaces, commas and apostrophes. Any CJK or markup disqualifies it.
// An English gloss passes too; the scanner only asks for the first content line.
func IsPinyinLine(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	letters := 0
	for _, r := range s {
		switch {
		case lang.IsLatin(r) || unicode.Is(unicode.Latin, r):
			letters++
		case unicode.Is(unicode.Mn, r), unicode.IsDigit(r), unicode.IsSpace(r):
		case r == ',' || r == '\'' || r == '’':
		default:
			return false
		}
	}
	return letters > 0
}
