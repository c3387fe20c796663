// Package lang classifies query scripts and canonicalizes Chinese, pinyin and
// Russian text for search and storage.
package lang

import (
	"strings"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

// toneVowels are pinyin vowels carrying a tone mark; they count as Latin.
const toneVowels = "āáǎàēéěèīíǐìōóǒòūúǔùǖǘǚǜĀÁǍÀĒÉĚÈĪÍǏÌŌÓǑÒŪÚǓÙǕǗǙǛ"

// IsCJK reports whether r is a CJK unified ideograph (main block or extension A).
func IsCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF)
}

// IsLatin reports whether r is an ASCII letter, ü/Ü or a tone-marked pinyin vowel.
func IsLatin(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == 'ü' || r == 'Ü':
		return true
	}
	return r > 0x7F && strings.ContainsRune(toneVowels, r)
}

// IsCyrillic reports whether r is a Russian letter, including ё/Ё.
func IsCyrillic(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'ё' || r == 'Ё'
}

// Classify tags a query by the scripts it contains. A query with no
// classifiable characters, or with more than one script, is Mixed.
func Classify(query string) domain.InputType {
	var cjk, latin, cyrillic int
	for _, r := range query {
		switch {
		case IsCJK(r):
			cjk++
		case IsLatin(r):
			latin++
		case IsCyrillic(r):
			cyrillic++
		}
	}

	present := 0
	result := domain.InputMixed
	if cjk > 0 {
		present++
		result = domain.InputChinese
	}
	if latin > 0 {
		present++
		result = domain.InputPinyin
	}
	if cyrillic > 0 {
		present++
		result = domain.InputRussian
	}
	if present != 1 {
		return domain.InputMixed
	}
	return result
}

// ContainsCJK reports whether s has at least one CJK ideograph.
func ContainsCJK(s string) bool {
	return strings.IndexFunc(s, IsCJK) >= 0
}

// ContainsCyrillic reports whether s has at least one Russian letter.
func ContainsCyrillic(s string) bool {
	return strings.IndexFunc(s, IsCyrillic) >= 0
}

// FilterCJK keeps only the CJK ideographs of s.
func FilterCJK(s string) string {
	var b strings.Builder
	for _, r := range s {
		if IsCJK(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CJKRuns returns the maximal runs of consecutive CJK ideographs in s.
func CJKRuns(s string) []string {
	var (
		runs []string
		b    strings.Builder
	)
	for _, r := range s {
		if IsCJK(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			runs = append(runs, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		runs = append(runs, b.String())
	}
	return runs
}
