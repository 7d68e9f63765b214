package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/srvcerror"
)

// memRepo is an in-memory catalog repository for service tests.
type memRepo struct {
	centers   []catalog.Center
	languages []catalog.Language
	levels    []catalog.Level
	durations []catalog.Duration
	texts     []catalog.Text
	nextID    int64
}

func (m *memRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memRepo) ListCenters(ctx context.Context) ([]catalog.Center, error) {
	return m.centers, nil
}

func (m *memRepo) GetCenter(ctx context.Context, id int64) (catalog.Center, error) {
	for _, c := range m.centers {
		if c.ID == id {
			return c, nil
		}
	}
	return catalog.Center{}, catalog.ErrRowNotFound
}

func (m *memRepo) ListLanguages(ctx context.Context) ([]catalog.Language, error) {
	return m.languages, nil
}

func (m *memRepo) GetLanguage(ctx context.Context, id int64) (catalog.Language, error) {
	for _, l := range m.languages {
		if l.ID == id {
			return l, nil
		}
	}
	return catalog.Language{}, catalog.ErrRowNotFound
}

func (m *memRepo) ListLevels(ctx context.Context) ([]catalog.Level, error) {
	return m.levels, nil
}

func (m *memRepo) GetLevel(ctx context.Context, id int64) (catalog.Level, error) {
	for _, l := range m.levels {
		if l.ID == id {
			return l, nil
		}
	}
	return catalog.Level{}, catalog.ErrRowNotFound
}

func (m *memRepo) ListDurations(ctx context.Context) ([]catalog.Duration, error) {
	return m.durations, nil
}

func (m *memRepo) GetDurationByID(ctx context.Context, id int64) (catalog.Duration, error) {
	for _, d := range m.durations {
		if d.ID == id {
			return d, nil
		}
	}
	return catalog.Duration{}, catalog.ErrRowNotFound
}

func (m *memRepo) GetDurationBySeconds(ctx context.Context, seconds int) (catalog.Duration, error) {
	for _, d := range m.durations {
		if d.Seconds == seconds {
			return d, nil
		}
	}
	return catalog.Duration{}, catalog.ErrRowNotFound
}

func (m *memRepo) ListTexts(ctx context.Context, languageID, levelID int64) ([]catalog.Text, error) {
	var res []catalog.Text
	for _, t := range m.texts {
		if t.LanguageID == languageID && t.LevelID != nil && *t.LevelID == levelID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (m *memRepo) InsertCenter(ctx context.Context, name string) (int64, error) {
	for _, c := range m.centers {
		if c.Name == name {
			return c.ID, nil
		}
	}
	c := catalog.Center{ID: m.id(), Name: name}
	m.centers = append(m.centers, c)
	return c.ID, nil
}

func (m *memRepo) InsertLanguage(ctx context.Context, name string) (int64, error) {
	for _, l := range m.languages {
		if l.Name == name {
			return l.ID, nil
		}
	}
	l := catalog.Language{ID: m.id(), Name: name}
	m.languages = append(m.languages, l)
	return l.ID, nil
}

func (m *memRepo) InsertLevel(ctx context.Context, name string) (int64, error) {
	for _, l := range m.levels {
		if l.Name == name {
			return l.ID, nil
		}
	}
	l := catalog.Level{ID: m.id(), Name: name}
	m.levels = append(m.levels, l)
	return l.ID, nil
}

func (m *memRepo) InsertDuration(ctx context.Context, seconds int) (int64, error) {
	for _, d := range m.durations {
		if d.Seconds == seconds {
			return d.ID, nil
		}
	}
	d := catalog.Duration{ID: m.id(), Seconds: seconds}
	m.durations = append(m.durations, d)
	return d.ID, nil
}

func (m *memRepo) InsertText(ctx context.Context, t catalog.Text) (int64, error) {
	t.ID = m.id()
	m.texts = append(m.texts, t)
	return t.ID, nil
}

const fixture = `
[[centers]]
name = "Downtown"

[[centers]]
name = "Northside"

[[languages]]
name = "English"

[[levels]]
name = "Easy"

[[levels]]
name = "Hard"

[[durations]]
seconds = 60

[[durations]]
seconds = 180

[[texts]]
language = "English"
level = "Easy"
title = "Warmup"
content = "the quick brown fox jumps over the lazy dog"

[[texts]]
language = "English"
level = "Easy"
title = "Warmup 2"
content = "pack my box with five dozen liquor jugs"
`

func TestSeedAndLookups(t *testing.T) {
	repo := &memRepo{}
	srvc := catalog.NewCatalogSrvc(repo)
	ctx := context.Background()

	err := srvc.Seed(ctx, []byte(fixture))
	require.NoError(t, err)

	centers, err := srvc.ListCenters(ctx)
	require.NoError(t, err)
	require.Len(t, centers, 2)

	languages, err := srvc.ListLanguages(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 1)

	durations, err := srvc.ListDurations(ctx)
	require.NoError(t, err)
	require.Len(t, durations, 2)

	d, err := srvc.GetDurationBySeconds(ctx, 60)
	require.NoError(t, err)
	require.Equal(t, 60, d.Seconds)

	_, err = srvc.GetDurationBySeconds(ctx, 45)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	require.Equal(t, catalog.ErrCodeDurationNotFound, srvcErr.ErrorCode())
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := &memRepo{}
	srvc := catalog.NewCatalogSrvc(repo)
	ctx := context.Background()

	require.NoError(t, srvc.Seed(ctx, []byte(fixture)))
	require.NoError(t, srvc.Seed(ctx, []byte(fixture)))

	centers, err := srvc.ListCenters(ctx)
	require.NoError(t, err)
	require.Len(t, centers, 2)
}

func TestSeedRejectsUnknownLanguageRef(t *testing.T) {
	repo := &memRepo{}
	srvc := catalog.NewCatalogSrvc(repo)

	bad := `
[[texts]]
language = "Klingon"
level = "Easy"
title = "x"
content = "y"
`
	err := srvc.Seed(context.Background(), []byte(bad))
	require.Error(t, err)
}

func TestRandomText(t *testing.T) {
	repo := &memRepo{}
	srvc := catalog.NewCatalogSrvc(repo)
	ctx := context.Background()
	require.NoError(t, srvc.Seed(ctx, []byte(fixture)))

	lang, err := srvc.ListLanguages(ctx)
	require.NoError(t, err)
	levels, err := srvc.ListLevels(ctx)
	require.NoError(t, err)

	var easy catalog.Level
	for _, l := range levels {
		if l.Name == "Easy" {
			easy = l
		}
	}

	text, err := srvc.RandomText(ctx, lang[0].ID, easy.ID)
	require.NoError(t, err)
	require.NotEmpty(t, text.Content)

	var hard catalog.Level
	for _, l := range levels {
		if l.Name == "Hard" {
			hard = l
		}
	}
	_, err = srvc.RandomText(ctx, lang[0].ID, hard.ID)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	require.Equal(t, catalog.ErrCodeNoTextAvailable, srvcErr.ErrorCode())
}
