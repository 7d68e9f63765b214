package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"github.com/typingtutor/backend/pgdb"
)

func newMockRepo(t *testing.T) (*PgUserRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPgUserRepo(&pgdb.DB{Pool: mock}), mock
}

func TestPgUserRepoInsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	row := Row{
		UUID:        uuid.New(),
		Username:    "johndoe",
		Firstname:   "John",
		Lastname:    "Doe",
		DisplayName: "John Doe",
		BcryptPwd:   "$2a$10$hash",
		CreatedAt:   time.Now(),
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(row.UUID, row.Username, row.Firstname, row.Patronymic,
			row.Lastname, row.DisplayName, row.BcryptPwd, row.IsAdmin, row.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Insert(context.Background(), row)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepoInsertDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Insert(context.Background(), Row{UUID: uuid.New(), Username: "johndoe"})
	require.ErrorIs(t, err, ErrRowExists)
}

func TestPgUserRepoGetByUsername(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	userUUID := uuid.New()
	created := time.Now()
	cols := []string{"uuid", "username", "firstname", "patronymic", "lastname",
		"display_name", "bcrypt_pwd", "is_admin", "created_at"}

	mock.ExpectQuery(`SELECT uuid, username, firstname, patronymic, lastname`).
		WithArgs("johndoe").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(userUUID, "johndoe", "John", "", "Doe", "John Doe", "$2a$10$hash", false, created))

	row, err := repo.GetByUsername(context.Background(), "johndoe")
	require.NoError(t, err)
	require.Equal(t, userUUID, row.UUID)
	require.Equal(t, "John Doe", row.DisplayName)
}

func TestPgUserRepoGetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT uuid, username, firstname, patronymic, lastname`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrRowNotFound)
}
