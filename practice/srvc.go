// Package practice records practice typing runs and serves the
// practice leaderboards.
package practice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/leaderboard"
	"github.com/typingtutor/backend/score"
)

// Repo is the persistence contract of the practice service.
type Repo interface {
	InsertRun(ctx context.Context, run Run) (Run, error)
	// ListEntries returns runs joined with display context, already
	// scoped by center when centerID is non-nil.
	ListEntries(ctx context.Context, centerID *int64) ([]LeaderboardEntry, error)
}

// Catalog is the slice of the catalog service the practice flow needs.
type Catalog interface {
	GetCenter(ctx context.Context, id int64) (catalog.Center, error)
	GetLanguage(ctx context.Context, id int64) (catalog.Language, error)
	GetLevel(ctx context.Context, id int64) (catalog.Level, error)
	GetDurationBySeconds(ctx context.Context, seconds int) (catalog.Duration, error)
	RandomText(ctx context.Context, languageID, levelID int64) (catalog.Text, error)
}

type PracticeSrvc struct {
	repo    Repo
	catalog Catalog
}

func NewPracticeSrvc(repo Repo, catalog Catalog) *PracticeSrvc {
	return &PracticeSrvc{repo: repo, catalog: catalog}
}

type SubmitRunParams struct {
	UserUUID        uuid.UUID
	CenterID        *int64
	LanguageID      *int64
	LevelID         *int64
	DurationSeconds *int

	// Raw client-reported metrics; parsed permissively.
	Wpm        string
	Accuracy   string
	FinalScore string
}

// SubmitRun validates the reported metrics and records an immutable
// practice run. Configuration references that no longer resolve are
// dropped rather than failing the submission, matching the permissive
// scoring policy.
func (s *PracticeSrvc) SubmitRun(ctx context.Context, p SubmitRunParams) (Run, error) {
	res := score.Compute(score.RawMetrics{
		Wpm:        p.Wpm,
		Accuracy:   p.Accuracy,
		FinalScore: p.FinalScore,
	})

	run := Run{
		UserUUID:   p.UserUUID,
		Wpm:        res.Wpm,
		Accuracy:   res.Accuracy,
		FinalScore: res.FinalScore,
		CreatedAt:  time.Now(),
	}

	if p.CenterID != nil {
		if center, err := s.catalog.GetCenter(ctx, *p.CenterID); err == nil {
			run.CenterID = &center.ID
		}
	}
	if p.LanguageID != nil {
		if language, err := s.catalog.GetLanguage(ctx, *p.LanguageID); err == nil {
			run.LanguageID = &language.ID
		}
	}
	if p.LevelID != nil {
		if level, err := s.catalog.GetLevel(ctx, *p.LevelID); err == nil {
			run.LevelID = &level.ID
		}
	}
	if p.DurationSeconds != nil {
		if duration, err := s.catalog.GetDurationBySeconds(ctx, *p.DurationSeconds); err == nil {
			run.DurationID = &duration.ID
		}
	}

	stored, err := s.repo.InsertRun(ctx, run)
	if err != nil {
		return Run{}, newErrInternalSE().SetDebug(err)
	}
	return stored, nil
}

// TypingText picks a random text for a practice session.
func (s *PracticeSrvc) TypingText(ctx context.Context, languageID, levelID int64) (catalog.Text, error) {
	return s.catalog.RandomText(ctx, languageID, levelID)
}

// Leaderboard returns the practice standings, optionally scoped to one
// center. Every qualifying run is its own row (no per-user collapse);
// the result is the top 200 by score, then recency.
func (s *PracticeSrvc) Leaderboard(ctx context.Context, centerID *int64) ([]LeaderboardEntry, error) {
	if centerID != nil {
		if _, err := s.catalog.GetCenter(ctx, *centerID); err != nil {
			return nil, err
		}
	}

	entries, err := s.repo.ListEntries(ctx, centerID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	byID := make(map[int64]LeaderboardEntry, len(entries))
	rows := make([]leaderboard.Row, 0, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		rows = append(rows, leaderboard.Row{
			ID:         e.ID,
			UserUUID:   e.UserUUID,
			CenterID:   e.CenterID,
			FinalScore: e.FinalScore,
			CreatedAt:  e.CreatedAt,
		})
	}

	ranked := leaderboard.Resolve(rows, leaderboard.Options{
		Limit: leaderboard.PracticeLimit,
	})

	res := make([]LeaderboardEntry, 0, len(ranked))
	for _, row := range ranked {
		res = append(res, byID[row.ID])
	}
	return res, nil
}
