package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

// UniqueHan returns a string of n CJK ideographs unlikely to collide with
// other tests sharing the database. Characters come from extension A.
func UniqueHan(n int) string {
	id := uuid.New()
	runes := make([]rune, n)
	for i := range runes {
		// 0x3400..0x4DBF holds 6592 code points.
		v := (int(id[(2*i)%16])<<8 | int(id[(2*i+1)%16])) % 6592
		runes[i] = rune(0x3400 + v)
	}
	return string(runes)
}

// SeedCharacter inserts a character with the given simplified form and optional
// attributes taken from c (ID and CreatedAt are filled in).
func SeedCharacter(t *testing.T, pool *pgxpool.Pool, c domain.Character) domain.Character {
	t.Helper()
	ctx := context.Background()

	var pinyinPlain *string
	if c.Pinyin != nil {
		p := *c.Pinyin
		pinyinPlain = &p
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO characters (simplified, traditional, pinyin, pinyin_plain, hsk_level, frequency)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		c.Simplified, c.Traditional, c.Pinyin, pinyinPlain, c.HSKLevel, c.Frequency,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedCharacter %q: %v", c.Simplified, err)
	}
	return c
}

// SeedDefinition attaches a definition to a character.
func SeedDefinition(t *testing.T, pool *pgxpool.Pool, characterID uuid.UUID, translation string, order int) domain.Definition {
	t.Helper()

	d := domain.Definition{CharacterID: characterID, Translation: translation, Order: order}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO definitions (character_id, translation, sort_order)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		characterID, translation, order,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedDefinition: %v", err)
	}
	return d
}

// SeedExample attaches an example to a character.
func SeedExample(t *testing.T, pool *pgxpool.Pool, characterID uuid.UUID, chinese, russian string) domain.Example {
	t.Helper()

	e := domain.Example{CharacterID: characterID, Chinese: chinese, Russian: russian}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO examples (character_id, chinese, russian)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		characterID, chinese, russian,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedExample: %v", err)
	}
	return e
}

// SeedPhrase inserts a phrase-book entry.
func SeedPhrase(t *testing.T, pool *pgxpool.Pool, russian, chinese string) domain.Phrase {
	t.Helper()

	p := domain.Phrase{Russian: russian, Chinese: chinese}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO phrases (russian, chinese)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		russian, chinese,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedPhrase: %v", err)
	}
	return p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
