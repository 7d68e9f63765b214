package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/typingtutor/backend/logger"
)

// SeedFixture mirrors the TOML layout of a catalog fixture file.
type SeedFixture struct {
	Centers   []SeedCenter   `toml:"centers"`
	Languages []SeedLanguage `toml:"languages"`
	Levels    []SeedLevel    `toml:"levels"`
	Durations []SeedDuration `toml:"durations"`
	Texts     []SeedText     `toml:"texts"`
}

type SeedCenter struct {
	Name string `toml:"name"`
}

type SeedLanguage struct {
	Name string `toml:"name"`
}

type SeedLevel struct {
	Name string `toml:"name"`
}

type SeedDuration struct {
	Seconds int `toml:"seconds"`
}

type SeedText struct {
	Language string `toml:"language"`
	Level    string `toml:"level"`
	Title    string `toml:"title"`
	Content  string `toml:"content"`
}

// SeedFromFile loads a TOML catalog fixture and upserts its contents.
func (s *CatalogSrvc) SeedFromFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog fixture: %w", err)
	}
	return s.Seed(ctx, content)
}

// Seed parses a TOML fixture and upserts centers, languages, levels,
// durations and texts. Texts reference languages and levels by name.
func (s *CatalogSrvc) Seed(ctx context.Context, tomlContent []byte) error {
	var fixture SeedFixture
	if err := toml.Unmarshal(tomlContent, &fixture); err != nil {
		return fmt.Errorf("failed to parse catalog fixture: %w", err)
	}

	for _, c := range fixture.Centers {
		if _, err := s.repo.InsertCenter(ctx, c.Name); err != nil {
			return fmt.Errorf("failed to seed center %q: %w", c.Name, err)
		}
	}

	languageIDs := map[string]int64{}
	for _, l := range fixture.Languages {
		id, err := s.repo.InsertLanguage(ctx, l.Name)
		if err != nil {
			return fmt.Errorf("failed to seed language %q: %w", l.Name, err)
		}
		languageIDs[l.Name] = id
	}

	levelIDs := map[string]int64{}
	for _, l := range fixture.Levels {
		id, err := s.repo.InsertLevel(ctx, l.Name)
		if err != nil {
			return fmt.Errorf("failed to seed level %q: %w", l.Name, err)
		}
		levelIDs[l.Name] = id
	}

	for _, d := range fixture.Durations {
		if _, err := s.repo.InsertDuration(ctx, d.Seconds); err != nil {
			return fmt.Errorf("failed to seed duration %d: %w", d.Seconds, err)
		}
	}

	for _, t := range fixture.Texts {
		languageID, ok := languageIDs[t.Language]
		if !ok {
			return fmt.Errorf("text %q references unknown language %q", t.Title, t.Language)
		}
		levelID, ok := levelIDs[t.Level]
		if !ok {
			return fmt.Errorf("text %q references unknown level %q", t.Title, t.Level)
		}
		text := Text{
			LanguageID: languageID,
			LevelID:    &levelID,
			Title:      t.Title,
			Content:    t.Content,
		}
		if _, err := s.repo.InsertText(ctx, text); err != nil {
			return fmt.Errorf("failed to seed text %q: %w", t.Title, err)
		}
	}

	logger.FromContext(ctx).Info("catalog seeded",
		"centers", len(fixture.Centers),
		"languages", len(fixture.Languages),
		"levels", len(fixture.Levels),
		"durations", len(fixture.Durations),
		"texts", len(fixture.Texts))

	return nil
}
