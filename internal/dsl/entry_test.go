package dsl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		headword   string
		content    string
		pinyinLine string
		expected   Entry
	}{
		"simplified and traditional": {
			headword:   "学习（學習）",
			content:    "[m1][i]гл.[/i] учиться[/m]",
			pinyinLine: "xuéxí",
			expected: Entry{
				Headword:    "学习（學習）",
				Simplified:  "学习",
				Traditional: "學習",
				Pinyin:      "xuéxí",
				Definitions: []Definition{
					{Translation: "гл. учиться", PartOfSpeech: "гл.", Order: 0},
				},
				Content: "[m1][i]гл.[/i] учиться[/m]",
			},
		},
		"ascii parentheses": {
			headword: "汉字(漢字)",
			content:  "[m1]иероглиф[/m]",
			expected: Entry{
				Headword:    "汉字(漢字)",
				Simplified:  "汉字",
				Traditional: "漢字",
				Definitions: []Definition{{Translation: "иероглиф"}},
				Content:     "[m1]иероглиф[/m]",
			},
		},
		"pinyin parenthetical in headword": {
			headword: "你好 (nǐhǎo)",
			content:  "[m1]здравствуйте[/m]",
			expected: Entry{
				Headword:    "你好 (nǐhǎo)",
				Simplified:  "你好",
				Pinyin:      "nǐhǎo",
				Definitions: []Definition{{Translation: "здравствуйте"}},
				Content:     "[m1]здравствуйте[/m]",
			},
		},
		"tagged pinyin in content": {
			headword: "好",
			content:  "[m1][t]hǎo[/t][/m]\n[m1][c]разг.[/c] хороший[/m]",
			expected: Entry{
				Headword:   "好",
				Simplified: "好",
				Pinyin:     "hǎo",
				Definitions: []Definition{
					{Translation: "hǎo", Order: 0},
					{Translation: "разг. хороший", Context: "разг.", Order: 1},
				},
				Content: "[m1][t]hǎo[/t][/m]\n[m1][c]разг.[/c] хороший[/m]",
			},
		},
		"headword without cjk": {
			headword: "abc",
			content:  "[m1]латиница[/m]",
			expected: Entry{
				Headword:    "abc",
				Definitions: []Definition{{Translation: "латиница"}},
				Content:     "[m1]латиница[/m]",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := ParseEntry(test.headword, test.content, test.pinyinLine)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("ParseEntry (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseEntry_StripsTags(t *testing.T) {
	t.Parallel()

	e := ParseEntry("学", "[m1][p]устар.[/p] 从来没有[/m]", "")
	if len(e.Definitions) != 1 {
		t.Fatalf("len(Definitions) = %d, want 1", len(e.Definitions))
	}
	tr := e.Definitions[0].Translation
	if strings.Contains(tr, "[p]") || strings.Contains(tr, "[/p]") {
		t.Errorf("translation %q still contains tags", tr)
	}
	if tr != "устар. 从来没有" {
		t.Errorf("translation = %q", tr)
	}
}

func TestParseEntry_Examples(t *testing.T) {
	t.Parallel()

	e := ParseEntry("学习", "[m1]учиться[/m][m2][*][ex]我在学习。 - Я учусь.[/ex][/*][/m]", "")

	expected := []Example{{Chinese: "我在学习。", Russian: "Я учусь."}}
	if diff := cmp.Diff(expected, e.Examples); diff != "" {
		t.Errorf("Examples (-want, +got):\n%s", diff)
	}
	// the example-only block yields no definition
	if diff := cmp.Diff([]Definition{{Translation: "учиться"}}, e.Definitions); diff != "" {
		t.Errorf("Definitions (-want, +got):\n%s", diff)
	}
}

func TestParseEntry_ExampleSegments(t *testing.T) {
	t.Parallel()

	content := "[m1]делать[/m]\n" +
		"[m2][*][ex]做饭 - готовить - варить[/ex][ex]没有分隔符[/ex][ex] - пусто[/ex][/*][/m]"
	e := ParseEntry("做", content, "")

	expected := []Example{{Chinese: "做饭", Russian: "готовить - варить"}}
	if diff := cmp.Diff(expected, e.Examples); diff != "" {
		t.Errorf("Examples (-want, +got):\n%s", diff)
	}
}

func TestParseEntry_MalformedMarkup(t *testing.T) {
	t.Parallel()

	// [m1] is never closed, so the content falls back to plain lines.
	e := ParseEntry("坏", "[m1][b]плохой", "")
	if diff := cmp.Diff([]Definition{{Translation: "плохой"}}, e.Definitions); diff != "" {
		t.Errorf("Definitions (-want, +got):\n%s", diff)
	}
}

func TestParseEntry_PlainLines(t *testing.T) {
	t.Parallel()

	e := ParseEntry("书", "книга\n\n[i]сокр.[/i] письмо", "")
	expected := []Definition{
		{Translation: "книга", Order: 0},
		{Translation: "сокр. письмо", Order: 1},
	}
	if diff := cmp.Diff(expected, e.Definitions); diff != "" {
		t.Errorf("Definitions (-want, +got):\n%s", diff)
	}
}

func TestIsPinyinLine(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"xuéxí":           true,
		"nǐ hǎo":          true,
		"xi'an, xī'ān":    true,
		"zhong1 guo2":     true,
		"lǜ":              true,
		"":                false,
		"123":             false,
		"[m1]учиться[/m]": false,
		"学习":              false,
		"учиться":         false,
	}
	for in, want := range tests {
		if got := IsPinyinLine(in); got != want {
			t.Errorf("IsPinyinLine(%q) = %v, want %v", in, got, want)
		}
	}
}
