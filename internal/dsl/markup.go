package dsl

import (
	"regexp"
	"strings"
	"sync"
)

// Markup extracts and strips the bracket tags of DSL content.
// Unclosed tags never match; their text is left for Strip.
type Markup interface {
	// Meanings returns the inner text of each [mN]...[/m] block in order.
	Meanings(content string) []string
	// ExampleBlocks returns the inner text of each [*]...[/*] block in order.
	ExampleBlocks(content string) []string
	// ExampleSegments returns the inner text of each [ex]...[/ex] segment in order.
	ExampleSegments(block string) []string
	// Tagged returns the inner text of the first [tag]...[/tag] pair.
	Tagged(text, tag string) (string, bool)
	// RemoveExamples deletes [*]...[/*] and [ex]...[/ex] blocks with their text.
	RemoveExamples(text string) string
	// Strip removes every remaining tag and keeps the text between them.
	Strip(text string) string
}

var (
	reMeaning      = regexp.MustCompile(`(?s)\[m\d*\](.*?)\[/m\]`)
	reExampleBlock = regexp.MustCompile(`(?s)\[\*\](.*?)\[/\*\]`)
	reExampleSeg   = regexp.MustCompile(`(?s)\[ex\](.*?)\[/ex\]`)
	reAnyTag       = regexp.MustCompile(`\[/?(?:\*|[a-zA-Z][a-zA-Z0-9]*)(?:\s[^\]]*)?\]`)
)

// RegexpMarkup implements Markup with non-greedy regular expressions.
type RegexpMarkup struct {
	mu   sync.RWMutex
	tags map[string]*regexp.Regexp
}

// NewRegexpMarkup returns a RegexpMarkup with the common tags precompiled.
func NewRegexpMarkup() *RegexpMarkup {
	m := &RegexpMarkup{tags: make(map[string]*regexp.Regexp)}
	for _, tag := range []string{"i", "c", "p", "t"} {
		m.tags[tag] = compileTag(tag)
	}
	return m
}

func compileTag(tag string) *regexp.Regexp {
	q := regexp.QuoteMeta(tag)
	return regexp.MustCompile(`(?s)\[` + q + `(?:\s[^\]]*)?\](.*?)\[/` + q + `\]`)
}

func (m *RegexpMarkup) tagRegexp(tag string) *regexp.Regexp {
	m.mu.RLock()
	re, ok := m.tags[tag]
	m.mu.RUnlock()
	if ok {
		return re
	}

	re = compileTag(tag)
	m.mu.Lock()
	m.tags[tag] = re
	m.mu.Unlock()
	return re
}

func (m *RegexpMarkup) Meanings(content string) []string {
	return submatches(reMeaning, content)
}

func (m *RegexpMarkup) ExampleBlocks(content string) []string {
	return submatches(reExampleBlock, content)
}

func (m *RegexpMarkup) ExampleSegments(block string) []string {
	return submatches(reExampleSeg, block)
}

func (m *RegexpMarkup) Tagged(text, tag string) (string, bool) {
	sm := m.tagRegexp(tag).FindStringSubmatch(text)
	if sm == nil {
		return "", false
	}
	return sm[1], true
}

func (m *RegexpMarkup) RemoveExamples(text string) string {
	text = reExampleBlock.ReplaceAllString(text, " ")
	return reExampleSeg.ReplaceAllString(text, " ")
}

func (m *RegexpMarkup) Strip(text string) string {
	return reAnyTag.ReplaceAllString(text, "")
}

func submatches(re *regexp.Regexp, s string) []string {
	all := re.FindAllStringSubmatch(s, -1)
	if len(all) == 0 {
		return nil
	}
	out := make([]string, 0, len(all))
	for _, sm := range all {
		out = append(out, sm[1])
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
