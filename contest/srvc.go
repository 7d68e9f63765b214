// Package contest implements paid typing competitions: registration
// with manual receipt review, time-windowed attempts and per-center
// leaderboards built from each user's most recent attempt.
package contest

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/leaderboard"
	"github.com/typingtutor/backend/logger"
	"github.com/typingtutor/backend/score"
)

// ErrRowNotFound is the repository-level miss sentinel.
var ErrRowNotFound = errors.New("contest row not found")

// ErrRowExists signals a violated uniqueness constraint, e.g. a second
// entry for the same (user, contest).
var ErrRowExists = errors.New("contest row already exists")

// Repo is the persistence contract of the contest service.
type Repo interface {
	InsertContest(ctx context.Context, c Contest) (Contest, error)
	ListContests(ctx context.Context) ([]Contest, error)
	GetContest(ctx context.Context, id int64) (Contest, error)
	SetContestStatus(ctx context.Context, id int64, status string) error

	InsertEntry(ctx context.Context, e Entry) (Entry, error)
	// ResubmitEntry replaces the receipt of a rejected or refunded
	// entry and moves it back to SUBMITTED.
	ResubmitEntry(ctx context.Context, e Entry) (Entry, error)
	GetEntry(ctx context.Context, contestID int64, userUUID uuid.UUID) (Entry, error)
	GetEntryByID(ctx context.Context, id int64) (Entry, error)
	UpdateEntryReview(ctx context.Context, entryID int64, status, message string, reviewer uuid.UUID, at time.Time) error
	CountActiveEntries(ctx context.Context, contestID int64) (int, error)

	InsertRun(ctx context.Context, r Run) (Run, error)
	CountRuns(ctx context.Context, contestID int64, userUUID uuid.UUID) (int, error)
	ListRunEntries(ctx context.Context, contestID int64, centerID *int64) ([]LeaderboardEntry, error)
	ListRunCenters(ctx context.Context, contestID int64) ([]CenterRef, error)
}

// Catalog is the slice of the catalog service the contest flow needs.
type Catalog interface {
	GetCenter(ctx context.Context, id int64) (catalog.Center, error)
	RandomText(ctx context.Context, languageID, levelID int64) (catalog.Text, error)
	GetDurationByID(ctx context.Context, id int64) (catalog.Duration, error)
}

// ReceiptStore persists uploaded payment proofs. *s3bucket.S3Bucket
// implements it.
type ReceiptStore interface {
	Upload(content []byte, key string, mediaType string) (string, error)
}

type ContestSrvc struct {
	repo     Repo
	catalog  Catalog
	receipts ReceiptStore

	// Now is the clock used for window checks; overridable in tests.
	Now func() time.Time
}

func NewContestSrvc(repo Repo, catalog Catalog, receipts ReceiptStore) *ContestSrvc {
	return &ContestSrvc{
		repo:     repo,
		catalog:  catalog,
		receipts: receipts,
		Now:      time.Now,
	}
}

type CreateContestParams struct {
	Title       string
	Description string
	CenterID    *int64

	EntryFee string
	Currency string

	StartAt time.Time
	EndAt   time.Time

	LanguageID int64
	LevelID    int64
	DurationID int64

	AttemptsPerUser int
	MinParticipants int
	MaxParticipants int

	Prize1 string
	Prize2 string
	Prize3 string
}

// CreateContest records a new contest in DRAFT status. Monetary
// amounts arrive as strings and parse permissively to zero.
func (s *ContestSrvc) CreateContest(ctx context.Context, p CreateContestParams) (Contest, error) {
	if strings.TrimSpace(p.Title) == "" {
		return Contest{}, newErrInvalidStatus().SetDebug(errors.New("empty title"))
	}
	if !p.EndAt.After(p.StartAt) {
		return Contest{}, newErrInvalidWindow()
	}

	currency := p.Currency
	if currency == "" {
		currency = "UZS"
	}

	c := Contest{
		Title:           strings.TrimSpace(p.Title),
		Description:     p.Description,
		CenterID:        p.CenterID,
		EntryFee:        score.Round2(score.ParseDecimalOrDefault(p.EntryFee, decimal.Zero)),
		Currency:        currency,
		StartAt:         p.StartAt,
		EndAt:           p.EndAt,
		LanguageID:      p.LanguageID,
		LevelID:         p.LevelID,
		DurationID:      p.DurationID,
		AttemptsPerUser: p.AttemptsPerUser,
		MinParticipants: p.MinParticipants,
		MaxParticipants: p.MaxParticipants,
		Prize1:          score.Round2(score.ParseDecimalOrDefault(p.Prize1, decimal.Zero)),
		Prize2:          score.Round2(score.ParseDecimalOrDefault(p.Prize2, decimal.Zero)),
		Prize3:          score.Round2(score.ParseDecimalOrDefault(p.Prize3, decimal.Zero)),
		Status:          StatusDraft,
		CreatedAt:       s.Now(),
	}

	stored, err := s.repo.InsertContest(ctx, c)
	if err != nil {
		return Contest{}, newErrInternalSE().SetDebug(err)
	}
	return stored, nil
}

// SetStatus moves a contest to a new lifecycle status.
func (s *ContestSrvc) SetStatus(ctx context.Context, contestID int64, status string) error {
	valid := false
	for _, st := range ValidStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return newErrInvalidStatus()
	}
	if err := s.repo.SetContestStatus(ctx, contestID, status); err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return newErrContestNotFound()
		}
		return newErrInternalSE().SetDebug(err)
	}
	return nil
}

func (s *ContestSrvc) ListContests(ctx context.Context) ([]Contest, error) {
	contests, err := s.repo.ListContests(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return contests, nil
}

func (s *ContestSrvc) GetContest(ctx context.Context, contestID int64) (Contest, error) {
	c, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Contest{}, newErrContestNotFound()
		}
		return Contest{}, newErrInternalSE().SetDebug(err)
	}
	return c, nil
}

// GetUserEntry returns the viewer's entry for a contest, or
// ErrRowNotFound wrapped as a service error when there is none.
func (s *ContestSrvc) GetUserEntry(ctx context.Context, contestID int64, userUUID uuid.UUID) (Entry, error) {
	e, err := s.repo.GetEntry(ctx, contestID, userUUID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Entry{}, newErrEntryNotFound()
		}
		return Entry{}, newErrInternalSE().SetDebug(err)
	}
	return e, nil
}

type JoinParams struct {
	ContestID int64
	UserUUID  uuid.UUID
	Telegram  string
	Phone     string
	Receipt   []byte
}

// Join registers a user for a contest by uploading a payment receipt.
// A rejected or refunded entry may be resubmitted; a pending or
// approved one may not.
func (s *ContestSrvc) Join(ctx context.Context, p JoinParams) (Entry, error) {
	c, err := s.GetContest(ctx, p.ContestID)
	if err != nil {
		return Entry{}, err
	}
	if !c.IsOpenForUpload(s.Now()) {
		return Entry{}, newErrRegistrationClosed()
	}
	if len(p.Receipt) == 0 {
		return Entry{}, newErrReceiptMissing()
	}

	existing, err := s.repo.GetEntry(ctx, p.ContestID, p.UserUUID)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, ErrRowNotFound) {
		return Entry{}, newErrInternalSE().SetDebug(err)
	}
	if hasExisting && (existing.Status == EntrySubmitted || existing.Status == EntryApproved) {
		return Entry{}, newErrEntryAlreadyExists()
	}

	if !hasExisting && c.MaxParticipants > 0 {
		active, err := s.repo.CountActiveEntries(ctx, p.ContestID)
		if err != nil {
			return Entry{}, newErrInternalSE().SetDebug(err)
		}
		if active >= c.MaxParticipants {
			return Entry{}, newErrContestFull()
		}
	}

	mime := mimetype.Detect(p.Receipt)
	if !strings.HasPrefix(mime.String(), "image/") && !mime.Is("application/pdf") {
		return Entry{}, newErrReceiptUnsupportedType()
	}

	now := s.Now()
	sha2 := fmt.Sprintf("%x", sha256.Sum256(p.Receipt))
	key := fmt.Sprintf("receipts/%s/%s%s", now.Format("2006/01/02"), sha2, mime.Extension())

	url, err := s.receipts.Upload(p.Receipt, key, mime.String())
	if err != nil {
		return Entry{}, newErrInternalSE().SetDebug(err)
	}
	logger.FromContext(ctx).Info("receipt stored",
		"contest_id", p.ContestID, "key", key, "media_type", mime.String())

	entry := Entry{
		ContestID:  p.ContestID,
		UserUUID:   p.UserUUID,
		Telegram:   strings.TrimSpace(p.Telegram),
		Phone:      strings.TrimSpace(p.Phone),
		ReceiptKey: key,
		ReceiptURL: url,
		Status:     EntrySubmitted,
		CreatedAt:  now,
	}

	if hasExisting {
		entry.ID = existing.ID
		stored, err := s.repo.ResubmitEntry(ctx, entry)
		if err != nil {
			return Entry{}, newErrInternalSE().SetDebug(err)
		}
		return stored, nil
	}

	stored, err := s.repo.InsertEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, ErrRowExists) {
			return Entry{}, newErrEntryAlreadyExists()
		}
		return Entry{}, newErrInternalSE().SetDebug(err)
	}
	return stored, nil
}

type ReviewParams struct {
	EntryID      int64
	Approve      bool
	Message      string
	ReviewerUUID uuid.UUID
}

// ReviewEntry approves or rejects a submitted payment receipt.
func (s *ContestSrvc) ReviewEntry(ctx context.Context, p ReviewParams) (Entry, error) {
	entry, err := s.repo.GetEntryByID(ctx, p.EntryID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return Entry{}, newErrEntryNotFound()
		}
		return Entry{}, newErrInternalSE().SetDebug(err)
	}

	status := EntryRejected
	if p.Approve {
		status = EntryApproved
	}
	now := s.Now()
	if err := s.repo.UpdateEntryReview(ctx, entry.ID, status, p.Message, p.ReviewerUUID, now); err != nil {
		return Entry{}, newErrInternalSE().SetDebug(err)
	}

	entry.Status = status
	entry.ReviewMessage = p.Message
	entry.ReviewedBy = &p.ReviewerUUID
	entry.ReviewedAt = &now
	return entry, nil
}

// StartSession holds what a participant needs to begin a contest
// attempt: the text to type and the configured duration.
type StartSession struct {
	Contest         Contest
	Text            catalog.Text
	DurationSeconds int
}

// Start checks eligibility (approved entry, running window, attempts
// left) and picks the text for a contest attempt.
func (s *ContestSrvc) Start(ctx context.Context, contestID int64, userUUID uuid.UUID) (StartSession, error) {
	c, err := s.GetContest(ctx, contestID)
	if err != nil {
		return StartSession{}, err
	}

	if err := s.checkEligibility(ctx, c, userUUID); err != nil {
		return StartSession{}, err
	}

	if c.AttemptsPerUser > 0 {
		used, err := s.repo.CountRuns(ctx, contestID, userUUID)
		if err != nil {
			return StartSession{}, newErrInternalSE().SetDebug(err)
		}
		if used >= c.AttemptsPerUser {
			return StartSession{}, newErrAttemptsExhausted()
		}
	}

	text, err := s.catalog.RandomText(ctx, c.LanguageID, c.LevelID)
	if err != nil {
		return StartSession{}, err
	}

	duration, err := s.catalog.GetDurationByID(ctx, c.DurationID)
	if err != nil {
		return StartSession{}, err
	}

	return StartSession{
		Contest:         c,
		Text:            text,
		DurationSeconds: duration.Seconds,
	}, nil
}

type SubmitRunParams struct {
	ContestID int64
	UserUUID  uuid.UUID
	CenterID  *int64

	// Raw client-reported metrics; parsed permissively.
	Wpm        string
	Accuracy   string
	FinalScore string
}

// SubmitRun validates eligibility, scores the attempt, computes the
// suspicious flag and records an immutable contest run.
func (s *ContestSrvc) SubmitRun(ctx context.Context, p SubmitRunParams) (Run, error) {
	c, err := s.GetContest(ctx, p.ContestID)
	if err != nil {
		return Run{}, err
	}

	if err := s.checkEligibility(ctx, c, p.UserUUID); err != nil {
		return Run{}, err
	}

	res := score.Compute(score.RawMetrics{
		Wpm:        p.Wpm,
		Accuracy:   p.Accuracy,
		FinalScore: p.FinalScore,
	})

	run := Run{
		ContestID:  p.ContestID,
		UserUUID:   p.UserUUID,
		Wpm:        res.Wpm,
		Accuracy:   res.Accuracy,
		FinalScore: res.FinalScore,
		Suspicious: score.IsSuspicious(res.Wpm, res.Accuracy),
		CreatedAt:  s.Now(),
	}

	if p.CenterID != nil {
		if center, err := s.catalog.GetCenter(ctx, *p.CenterID); err == nil {
			run.CenterID = &center.ID
		}
	}

	stored, err := s.repo.InsertRun(ctx, run)
	if err != nil {
		return Run{}, newErrInternalSE().SetDebug(err)
	}
	return stored, nil
}

func (s *ContestSrvc) checkEligibility(ctx context.Context, c Contest, userUUID uuid.UUID) error {
	entry, err := s.repo.GetEntry(ctx, c.ID, userUUID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return newErrNotApproved()
		}
		return newErrInternalSE().SetDebug(err)
	}
	if entry.Status != EntryApproved {
		return newErrNotApproved()
	}
	if !c.IsRunning(s.Now()) {
		return newErrContestNotRunning()
	}
	return nil
}

// Leaderboard returns the contest standings: one row per user, that
// user's most recent attempt within the requested scope, ranked by
// final score then recency. The full roster is returned (no cut).
func (s *ContestSrvc) Leaderboard(ctx context.Context, contestID int64, centerID *int64) ([]LeaderboardEntry, error) {
	if _, err := s.GetContest(ctx, contestID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListRunEntries(ctx, contestID, centerID)
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
		CollapseLatestPerUser: true,
	})

	res := make([]LeaderboardEntry, 0, len(ranked))
	for _, row := range ranked {
		res = append(res, byID[row.ID])
	}
	return res, nil
}

// LeaderboardCenters lists the centers that have at least one run in
// the contest, for filter buttons.
func (s *ContestSrvc) LeaderboardCenters(ctx context.Context, contestID int64) ([]CenterRef, error) {
	centers, err := s.repo.ListRunCenters(ctx, contestID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return centers, nil
}
