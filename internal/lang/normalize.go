package lang

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

var umlautReplacer = strings.NewReplacer(
	"ü", "v", "ǖ", "v", "ǘ", "v", "ǚ", "v", "ǜ", "v",
)

func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

// Normalizer canonicalizes text of one input type.
type Normalizer func(string) string

var normalizers = map[domain.InputType]Normalizer{
	domain.InputChinese: NormalizeChinese,
	domain.InputPinyin:  NormalizePinyin,
	domain.InputRussian: NormalizeRussian,
}

func init() {
	normalizers[domain.InputMixed] = func(s string) string { return NormalizeQuery(s) }
}

// NormalizerFor returns the normalizer for t. Unknown types get NormalizeQuery.
func NormalizerFor(t domain.InputType) Normalizer {
	if n, ok := normalizers[t]; ok {
		return n
	}
	return func(s string) string { return NormalizeQuery(s) }
}

// NormalizeChinese removes all whitespace.
func NormalizeChinese(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// NormalizePinyin lowercases, maps ü to v, strips tone marks and tone digits
// and collapses whitespace. The ü mapping runs before NFD decomposition so
// the composed forms are still recognizable.
func NormalizePinyin(s string) string {
	s = strings.ToLower(s)
	s = umlautReplacer.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	s = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
	return collapseSpaces(s)
}

// NormalizeRussian lowercases (ё is kept) and collapses whitespace.
func NormalizeRussian(s string) string {
	return collapseSpaces(strings.ToLower(s))
}

// NormalizeQuery normalizes s as t when given, otherwise detects the type:
// any CJK means Chinese, any Cyrillic means Russian, anything else is pinyin.
func NormalizeQuery(s string, t ...domain.InputType) string {
	if len(t) > 0 && t[0] != domain.InputMixed {
		if n, ok := normalizers[t[0]]; ok {
			return n(s)
		}
	}
	switch {
	case ContainsCJK(s):
		return NormalizeChinese(s)
	case ContainsCyrillic(s):
		return NormalizeRussian(s)
	default:
		return NormalizePinyin(s)
	}
}

var pinyinArgs = pinyin.NewArgs()

// ChineseToPinyin transliterates the Chinese characters of s into toneless,
// normalized pinyin. When nothing can be transliterated s is returned as is.
func ChineseToPinyin(s string) (out string) {
	defer func() {
		if recover() != nil {
			out = s
		}
	}()

	syllables := pinyin.LazyPinyin(s, pinyinArgs)
	if len(syllables) == 0 {
		return s
	}
	return NormalizePinyin(strings.Join(syllables, " "))
}

// SanitizeQuery keeps letters, digits and whitespace and collapses whitespace.
func SanitizeQuery(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
