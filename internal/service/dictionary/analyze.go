package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

// AnalyzeText resolves every Chinese character of text to its dictionary
// entry. Positions are character indices into text; other characters are
// skipped. All distinct characters are looked up in one query. Store failures
// degrade to an empty result; only invalid input is returned as an error.
func (s *Service) AnalyzeText(ctx context.Context, text string) ([]domain.CharacterAnalysis, error) {
	if err := s.validateAnalyzeText(text); err != nil {
		return nil, err
	}

	out, err := cached(s, OpAnalysis, func() ([]domain.CharacterAnalysis, error) {
		set := distinctCJK(text)
		if len(set) == 0 {
			return []domain.CharacterAnalysis{}, nil
		}

		chars, err := s.characters.GetBySimplifiedSet(ctx, set)
		if err != nil {
			return nil, fmt.Errorf("analyze text: %w", err)
		}
		if err := s.hydrate(ctx, chars); err != nil {
			return nil, fmt.Errorf("analyze text: %w", err)
		}

		bySimplified := make(map[string]*domain.Character, len(chars))
		for i := range chars {
			bySimplified[chars[i].Simplified] = &chars[i]
		}

		out := make([]domain.CharacterAnalysis, 0, utf8.RuneCountInString(text))
		pos := 0
		for _, r := range text {
			if lang.IsCJK(r) {
				details := bySimplified[string(r)]
				out = append(out, domain.CharacterAnalysis{
					Character: string(r),
					Position:  pos,
					Found:     details != nil,
					Details:   details,
				})
			}
			pos++
		}
		return out, nil
	}, text)
	if err != nil {
		s.log.ErrorContext(ctx, "analyze text failed",
			slog.Int("length", utf8.RuneCountInString(text)),
			slog.String("error", err.Error()),
		)
		return []domain.CharacterAnalysis{}, nil
	}
	return out, nil
}

func (s *Service) validateAnalyzeText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text", "required")
	}
	if utf8.RuneCountInString(text) > s.cfg.AnalyzeMaxChars {
		return domain.NewValidationError("text", "too long (max "+strconv.Itoa(s.cfg.AnalyzeMaxChars)+")")
	}
	return nil
}

// distinctCJK returns the distinct CJK characters of text in order of first
// appearance.
func distinctCJK(text string) []string {
	seen := make(map[rune]struct{})
	var set []string
	for _, r := range text {
		if !lang.IsCJK(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		set = append(set, string(r))
	}
	return set
}
