package contest_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/srvcerror"
)

type contestRepoMock struct {
	insertContest      func(ctx context.Context, c contest.Contest) (contest.Contest, error)
	listContests       func(ctx context.Context) ([]contest.Contest, error)
	getContest         func(ctx context.Context, id int64) (contest.Contest, error)
	setContestStatus   func(ctx context.Context, id int64, status string) error
	insertEntry        func(ctx context.Context, e contest.Entry) (contest.Entry, error)
	resubmitEntry      func(ctx context.Context, e contest.Entry) (contest.Entry, error)
	getEntry           func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error)
	getEntryByID       func(ctx context.Context, id int64) (contest.Entry, error)
	updateEntryReview  func(ctx context.Context, entryID int64, status, message string, reviewer uuid.UUID, at time.Time) error
	countActiveEntries func(ctx context.Context, contestID int64) (int, error)
	insertRun          func(ctx context.Context, r contest.Run) (contest.Run, error)
	countRuns          func(ctx context.Context, contestID int64, userUUID uuid.UUID) (int, error)
	listRunEntries     func(ctx context.Context, contestID int64, centerID *int64) ([]contest.LeaderboardEntry, error)
	listRunCenters     func(ctx context.Context, contestID int64) ([]contest.CenterRef, error)
}

func (m contestRepoMock) InsertContest(ctx context.Context, c contest.Contest) (contest.Contest, error) {
	return m.insertContest(ctx, c)
}

func (m contestRepoMock) ListContests(ctx context.Context) ([]contest.Contest, error) {
	return m.listContests(ctx)
}

func (m contestRepoMock) GetContest(ctx context.Context, id int64) (contest.Contest, error) {
	return m.getContest(ctx, id)
}

func (m contestRepoMock) SetContestStatus(ctx context.Context, id int64, status string) error {
	return m.setContestStatus(ctx, id, status)
}

func (m contestRepoMock) InsertEntry(ctx context.Context, e contest.Entry) (contest.Entry, error) {
	return m.insertEntry(ctx, e)
}

func (m contestRepoMock) ResubmitEntry(ctx context.Context, e contest.Entry) (contest.Entry, error) {
	return m.resubmitEntry(ctx, e)
}

func (m contestRepoMock) GetEntry(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
	return m.getEntry(ctx, contestID, userUUID)
}

func (m contestRepoMock) GetEntryByID(ctx context.Context, id int64) (contest.Entry, error) {
	return m.getEntryByID(ctx, id)
}

func (m contestRepoMock) UpdateEntryReview(ctx context.Context, entryID int64, status, message string, reviewer uuid.UUID, at time.Time) error {
	return m.updateEntryReview(ctx, entryID, status, message, reviewer, at)
}

func (m contestRepoMock) CountActiveEntries(ctx context.Context, contestID int64) (int, error) {
	return m.countActiveEntries(ctx, contestID)
}

func (m contestRepoMock) InsertRun(ctx context.Context, r contest.Run) (contest.Run, error) {
	return m.insertRun(ctx, r)
}

func (m contestRepoMock) CountRuns(ctx context.Context, contestID int64, userUUID uuid.UUID) (int, error) {
	return m.countRuns(ctx, contestID, userUUID)
}

func (m contestRepoMock) ListRunEntries(ctx context.Context, contestID int64, centerID *int64) ([]contest.LeaderboardEntry, error) {
	return m.listRunEntries(ctx, contestID, centerID)
}

func (m contestRepoMock) ListRunCenters(ctx context.Context, contestID int64) ([]contest.CenterRef, error) {
	return m.listRunCenters(ctx, contestID)
}

type contestCatalogMock struct {
	getCenter       func(ctx context.Context, id int64) (catalog.Center, error)
	randomText      func(ctx context.Context, languageID, levelID int64) (catalog.Text, error)
	getDurationByID func(ctx context.Context, id int64) (catalog.Duration, error)
}

func (m contestCatalogMock) GetCenter(ctx context.Context, id int64) (catalog.Center, error) {
	return m.getCenter(ctx, id)
}

func (m contestCatalogMock) RandomText(ctx context.Context, languageID, levelID int64) (catalog.Text, error) {
	return m.randomText(ctx, languageID, levelID)
}

func (m contestCatalogMock) GetDurationByID(ctx context.Context, id int64) (catalog.Duration, error) {
	return m.getDurationByID(ctx, id)
}

type receiptStoreMock struct {
	upload func(content []byte, key string, mediaType string) (string, error)
}

func (m receiptStoreMock) Upload(content []byte, key string, mediaType string) (string, error) {
	return m.upload(content, key, mediaType)
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	return srvcErr.ErrorCode()
}

func ptr[T any](v T) *T { return &v }

// pngReceipt carries the PNG file signature so content sniffing
// classifies it as an image.
var pngReceipt = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

var contestClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func runningContest() contest.Contest {
	return contest.Contest{
		ID:         7,
		Title:      "Summer Cup",
		Status:     contest.StatusRunning,
		StartAt:    contestClock.Add(-time.Hour),
		EndAt:      contestClock.Add(time.Hour),
		LanguageID: 1,
		LevelID:    2,
		DurationID: 3,
	}
}

func fixedClock(s *contest.ContestSrvc) *contest.ContestSrvc {
	s.Now = func() time.Time { return contestClock }
	return s
}

func TestJoinUploadsReceiptAndCreatesEntry(t *testing.T) {
	var uploadedKey, uploadedType string
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{}, contest.ErrRowNotFound
		},
		insertEntry: func(ctx context.Context, e contest.Entry) (contest.Entry, error) {
			e.ID = 42
			return e, nil
		},
	}
	receipts := receiptStoreMock{
		upload: func(content []byte, key string, mediaType string) (string, error) {
			uploadedKey = key
			uploadedType = mediaType
			return "https://bucket.example.com/" + key, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receipts))

	entry, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Telegram:  " @typist ",
		Receipt:   pngReceipt,
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), entry.ID)
	require.Equal(t, contest.EntrySubmitted, entry.Status)
	require.Equal(t, "@typist", entry.Telegram)
	require.Contains(t, uploadedKey, "receipts/2025/06/15/")
	require.Equal(t, "image/png", uploadedType)
	require.Equal(t, "https://bucket.example.com/"+uploadedKey, entry.ReceiptURL)
}

func TestJoinClosedRegistration(t *testing.T) {
	c := runningContest()
	c.Status = contest.StatusDraft
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return c, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Receipt:   pngReceipt,
	})
	require.Equal(t, contest.ErrCodeRegistrationClosed, errCode(t, err))
}

func TestJoinAfterWindowEnd(t *testing.T) {
	c := runningContest()
	c.EndAt = contestClock.Add(-time.Minute)
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return c, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Receipt:   pngReceipt,
	})
	require.Equal(t, contest.ErrCodeRegistrationClosed, errCode(t, err))
}

func TestJoinRejectsUnsupportedReceipt(t *testing.T) {
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{}, contest.ErrRowNotFound
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Receipt:   []byte("just some text, not a receipt"),
	})
	require.Equal(t, contest.ErrCodeReceiptUnsupportedType, errCode(t, err))
}

func TestJoinPendingEntryBlocksResubmission(t *testing.T) {
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{ID: 5, Status: contest.EntrySubmitted}, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Receipt:   pngReceipt,
	})
	require.Equal(t, contest.ErrCodeEntryAlreadyExists, errCode(t, err))
}

func TestJoinRejectedEntryResubmits(t *testing.T) {
	var resubmitted contest.Entry
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{ID: 5, Status: contest.EntryRejected}, nil
		},
		resubmitEntry: func(ctx context.Context, e contest.Entry) (contest.Entry, error) {
			resubmitted = e
			return e, nil
		},
		insertEntry: func(ctx context.Context, e contest.Entry) (contest.Entry, error) {
			t.Fatal("a rejected entry must be resubmitted, not inserted")
			return contest.Entry{}, nil
		},
	}
	receipts := receiptStoreMock{
		upload: func(content []byte, key string, mediaType string) (string, error) {
			return "https://bucket.example.com/" + key, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receipts))

	entry, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Receipt:   pngReceipt,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), entry.ID)
	require.Equal(t, contest.EntrySubmitted, resubmitted.Status)
}

func TestJoinContestFull(t *testing.T) {
	c := runningContest()
	c.MaxParticipants = 10
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return c, nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{}, contest.ErrRowNotFound
		},
		countActiveEntries: func(ctx context.Context, contestID int64) (int, error) {
			return 10, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Join(context.Background(), contest.JoinParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Receipt:   pngReceipt,
	})
	require.Equal(t, contest.ErrCodeContestFull, errCode(t, err))
}

func TestReviewEntryApproves(t *testing.T) {
	reviewer := uuid.New()
	repo := contestRepoMock{
		getEntryByID: func(ctx context.Context, id int64) (contest.Entry, error) {
			return contest.Entry{ID: id, Status: contest.EntrySubmitted}, nil
		},
		updateEntryReview: func(ctx context.Context, entryID int64, status, message string, rev uuid.UUID, at time.Time) error {
			require.Equal(t, contest.EntryApproved, status)
			require.Equal(t, reviewer, rev)
			return nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	entry, err := srvc.ReviewEntry(context.Background(), contest.ReviewParams{
		EntryID:      5,
		Approve:      true,
		ReviewerUUID: reviewer,
	})
	require.NoError(t, err)
	require.Equal(t, contest.EntryApproved, entry.Status)
	require.NotNil(t, entry.ReviewedAt)
}

func TestStartRequiresApprovedEntry(t *testing.T) {
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{Status: contest.EntrySubmitted}, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Start(context.Background(), 7, uuid.New())
	require.Equal(t, contest.ErrCodeNotApproved, errCode(t, err))
}

func TestStartOutsideWindow(t *testing.T) {
	c := runningContest()
	c.EndAt = contestClock.Add(-time.Minute)
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return c, nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{Status: contest.EntryApproved}, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Start(context.Background(), 7, uuid.New())
	require.Equal(t, contest.ErrCodeContestNotRunning, errCode(t, err))
}

func TestStartAttemptsExhausted(t *testing.T) {
	c := runningContest()
	c.AttemptsPerUser = 2
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return c, nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{Status: contest.EntryApproved}, nil
		},
		countRuns: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (int, error) {
			return 2, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	_, err := srvc.Start(context.Background(), 7, uuid.New())
	require.Equal(t, contest.ErrCodeAttemptsExhausted, errCode(t, err))
}

func TestStartReturnsTextAndDuration(t *testing.T) {
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{Status: contest.EntryApproved}, nil
		},
	}
	cat := contestCatalogMock{
		randomText: func(ctx context.Context, languageID, levelID int64) (catalog.Text, error) {
			require.Equal(t, int64(1), languageID)
			require.Equal(t, int64(2), levelID)
			return catalog.Text{Content: "the quick brown fox"}, nil
		},
		getDurationByID: func(ctx context.Context, id int64) (catalog.Duration, error) {
			require.Equal(t, int64(3), id)
			return catalog.Duration{ID: id, Seconds: 60}, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, cat, receiptStoreMock{}))

	session, err := srvc.Start(context.Background(), 7, uuid.New())
	require.NoError(t, err)
	require.Equal(t, "the quick brown fox", session.Text.Content)
	require.Equal(t, 60, session.DurationSeconds)
}

func TestSubmitRunScoresAndFlagsSuspicious(t *testing.T) {
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{Status: contest.EntryApproved}, nil
		},
		insertRun: func(ctx context.Context, r contest.Run) (contest.Run, error) {
			r.ID = 1
			return r, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	run, err := srvc.SubmitRun(context.Background(), contest.SubmitRunParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Wpm:       "250",
		Accuracy:  "95",
	})
	require.NoError(t, err)
	require.True(t, run.Suspicious)
	require.Equal(t, "237.50", run.FinalScore.StringFixed(2))
}

func TestSubmitRunDropsUnknownCenter(t *testing.T) {
	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		getEntry: func(ctx context.Context, contestID int64, userUUID uuid.UUID) (contest.Entry, error) {
			return contest.Entry{Status: contest.EntryApproved}, nil
		},
		insertRun: func(ctx context.Context, r contest.Run) (contest.Run, error) {
			r.ID = 1
			return r, nil
		},
	}
	cat := contestCatalogMock{
		getCenter: func(ctx context.Context, id int64) (catalog.Center, error) {
			return catalog.Center{}, catalog.ErrRowNotFound
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, cat, receiptStoreMock{}))

	run, err := srvc.SubmitRun(context.Background(), contest.SubmitRunParams{
		ContestID: 7,
		UserUUID:  uuid.New(),
		CenterID:  ptr(int64(404)),
		Wpm:       "60",
		Accuracy:  "90",
	})
	require.NoError(t, err)
	require.Nil(t, run.CenterID)
	require.False(t, run.Suspicious)
}

func TestLeaderboardKeepsLatestRunPerUser(t *testing.T) {
	user := uuid.New()
	rival := uuid.New()
	base := contestClock.Add(-30 * time.Minute)

	mkEntry := func(id int64, u uuid.UUID, score int64, at time.Time) contest.LeaderboardEntry {
		e := contest.LeaderboardEntry{}
		e.ID = id
		e.UserUUID = u
		e.FinalScore = decimal.NewFromInt(score)
		e.CreatedAt = at
		return e
	}

	repo := contestRepoMock{
		getContest: func(ctx context.Context, id int64) (contest.Contest, error) {
			return runningContest(), nil
		},
		listRunEntries: func(ctx context.Context, contestID int64, centerID *int64) ([]contest.LeaderboardEntry, error) {
			return []contest.LeaderboardEntry{
				mkEntry(1, user, 90, base),
				mkEntry(2, user, 50, base.Add(time.Minute)),
				mkEntry(3, rival, 70, base.Add(2*time.Minute)),
			}, nil
		},
	}
	srvc := fixedClock(contest.NewContestSrvc(repo, contestCatalogMock{}, receiptStoreMock{}))

	rows, err := srvc.Leaderboard(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// The user's older 90-point run is superseded by the newer 50.
	require.Equal(t, int64(3), rows[0].ID)
	require.Equal(t, int64(2), rows[1].ID)
}
