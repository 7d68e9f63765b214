package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/typingtutor/backend/pgdb"
)

// Sentinel errors returned by the repository layer.
var (
	ErrRowNotFound = errors.New("user row not found")
	ErrRowExists   = errors.New("user row already exists")
)

type PgUserRepo struct {
	db *pgdb.DB
}

func NewPgUserRepo(db *pgdb.DB) *PgUserRepo {
	return &PgUserRepo{db: db}
}

func (r *PgUserRepo) Insert(ctx context.Context, row Row) error {
	const q = `
		INSERT INTO users (uuid, username, firstname, patronymic, lastname,
			display_name, bcrypt_pwd, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Pool.Exec(ctx, q,
		row.UUID,
		row.Username,
		row.Firstname,
		row.Patronymic,
		row.Lastname,
		row.DisplayName,
		row.BcryptPwd,
		row.IsAdmin,
		row.CreatedAt,
	)
	if pgdb.IsUniqueViolation(err) {
		return ErrRowExists
	}
	return err
}

const selectUserColumns = `
	SELECT uuid, username, firstname, patronymic, lastname,
		display_name, bcrypt_pwd, is_admin, created_at
	FROM users
`

func (r *PgUserRepo) GetByUsername(ctx context.Context, username string) (Row, error) {
	return r.scanOne(r.db.Pool.QueryRow(ctx, selectUserColumns+` WHERE username = $1`, username))
}

func (r *PgUserRepo) GetByUUID(ctx context.Context, userUUID uuid.UUID) (Row, error) {
	return r.scanOne(r.db.Pool.QueryRow(ctx, selectUserColumns+` WHERE uuid = $1`, userUUID))
}

func (r *PgUserRepo) scanOne(row pgx.Row) (Row, error) {
	var u Row
	err := row.Scan(
		&u.UUID,
		&u.Username,
		&u.Firstname,
		&u.Patronymic,
		&u.Lastname,
		&u.DisplayName,
		&u.BcryptPwd,
		&u.IsAdmin,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Row{}, ErrRowNotFound
		}
		return Row{}, err
	}
	return u, nil
}
