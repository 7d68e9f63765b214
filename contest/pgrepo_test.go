package contest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/typingtutor/backend/pgdb"
)

func newMockRepo(t *testing.T) (*PgContestRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPgContestRepo(&pgdb.DB{Pool: mock}), mock
}

func TestPgContestRepoInsertEntryDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO contest_entries`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.InsertEntry(context.Background(), Entry{
		ContestID: 7,
		UserUUID:  uuid.New(),
		Status:    EntrySubmitted,
	})
	require.ErrorIs(t, err, ErrRowExists)
}

func TestPgContestRepoGetContestNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, title, description, center_id`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetContest(context.Background(), 404)
	require.ErrorIs(t, err, ErrRowNotFound)
}

func TestPgContestRepoInsertRun(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	run := Run{
		ContestID:  7,
		UserUUID:   uuid.New(),
		Wpm:        decimal.NewFromInt(60),
		Accuracy:   decimal.NewFromInt(95),
		FinalScore: decimal.NewFromInt(57),
		CreatedAt:  time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO contest_runs`).
		WithArgs(run.ContestID, run.UserUUID, run.CenterID,
			run.Wpm, run.Accuracy, run.FinalScore, run.Suspicious, run.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	stored, err := repo.InsertRun(context.Background(), run)
	require.NoError(t, err)
	require.Equal(t, int64(11), stored.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgContestRepoSetStatusMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE contests SET status`).
		WithArgs(int64(404), StatusOpen).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetContestStatus(context.Background(), 404, StatusOpen)
	require.ErrorIs(t, err, ErrRowNotFound)
}
