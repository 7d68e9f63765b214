// Package catalog holds the typing configuration reference data:
// practice centers, languages, difficulty levels, session durations
// and the typing texts themselves.
package catalog

import (
	"context"
	"errors"
	"math/rand"
)

// Repo is the persistence contract of the catalog service.
type Repo interface {
	ListCenters(ctx context.Context) ([]Center, error)
	GetCenter(ctx context.Context, id int64) (Center, error)
	ListLanguages(ctx context.Context) ([]Language, error)
	GetLanguage(ctx context.Context, id int64) (Language, error)
	ListLevels(ctx context.Context) ([]Level, error)
	GetLevel(ctx context.Context, id int64) (Level, error)
	ListDurations(ctx context.Context) ([]Duration, error)
	GetDurationByID(ctx context.Context, id int64) (Duration, error)
	GetDurationBySeconds(ctx context.Context, seconds int) (Duration, error)
	ListTexts(ctx context.Context, languageID, levelID int64) ([]Text, error)

	InsertCenter(ctx context.Context, name string) (int64, error)
	InsertLanguage(ctx context.Context, name string) (int64, error)
	InsertLevel(ctx context.Context, name string) (int64, error)
	InsertDuration(ctx context.Context, seconds int) (int64, error)
	InsertText(ctx context.Context, t Text) (int64, error)
}

// ErrRowNotFound is the repository-level miss sentinel.
var ErrRowNotFound = errors.New("catalog row not found")

type CatalogSrvc struct {
	repo Repo
}

func NewCatalogSrvc(repo Repo) *CatalogSrvc {
	return &CatalogSrvc{repo: repo}
}

func (s *CatalogSrvc) ListCenters(ctx context.Context) ([]Center, error) {
	centers, err := s.repo.ListCenters(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return centers, nil
}

func (s *CatalogSrvc) GetCenter(ctx context.Context, id int64) (Center, error) {
	center, err := s.repo.GetCenter(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Center{}, newErrCenterNotFound()
		}
		return Center{}, newErrInternalSE().SetDebug(err)
	}
	return center, nil
}

func (s *CatalogSrvc) ListLanguages(ctx context.Context) ([]Language, error) {
	languages, err := s.repo.ListLanguages(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return languages, nil
}

func (s *CatalogSrvc) GetLanguage(ctx context.Context, id int64) (Language, error) {
	language, err := s.repo.GetLanguage(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Language{}, newErrLanguageNotFound()
		}
		return Language{}, newErrInternalSE().SetDebug(err)
	}
	return language, nil
}

func (s *CatalogSrvc) ListLevels(ctx context.Context) ([]Level, error) {
	levels, err := s.repo.ListLevels(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return levels, nil
}

func (s *CatalogSrvc) GetLevel(ctx context.Context, id int64) (Level, error) {
	level, err := s.repo.GetLevel(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Level{}, newErrLevelNotFound()
		}
		return Level{}, newErrInternalSE().SetDebug(err)
	}
	return level, nil
}

func (s *CatalogSrvc) ListDurations(ctx context.Context) ([]Duration, error) {
	durations, err := s.repo.ListDurations(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return durations, nil
}

func (s *CatalogSrvc) GetDurationByID(ctx context.Context, id int64) (Duration, error) {
	duration, err := s.repo.GetDurationByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Duration{}, newErrDurationNotFound()
		}
		return Duration{}, newErrInternalSE().SetDebug(err)
	}
	return duration, nil
}

func (s *CatalogSrvc) GetDurationBySeconds(ctx context.Context, seconds int) (Duration, error) {
	duration, err := s.repo.GetDurationBySeconds(ctx, seconds)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Duration{}, newErrDurationNotFound()
		}
		return Duration{}, newErrInternalSE().SetDebug(err)
	}
	return duration, nil
}

// RandomText picks one of the texts configured for the given language
// and level, uniformly at random.
func (s *CatalogSrvc) RandomText(ctx context.Context, languageID, levelID int64) (Text, error) {
	texts, err := s.repo.ListTexts(ctx, languageID, levelID)
	if err != nil {
		return Text{}, newErrInternalSE().SetDebug(err)
	}
	if len(texts) == 0 {
		return Text{}, newErrNoTextAvailable()
	}
	return texts[rand.Intn(len(texts))], nil
}
