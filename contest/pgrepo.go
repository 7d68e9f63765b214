package contest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/typingtutor/backend/pgdb"
)

type PgContestRepo struct {
	db *pgdb.DB
}

func NewPgContestRepo(db *pgdb.DB) *PgContestRepo {
	return &PgContestRepo{db: db}
}

func (r *PgContestRepo) InsertContest(ctx context.Context, c Contest) (Contest, error) {
	const q = `
		INSERT INTO contests (title, description, center_id, entry_fee, currency,
			start_at, end_at, language_id, level_id, duration_id,
			attempts_per_user, min_participants, max_participants,
			prize1, prize2, prize3, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	err := r.db.Pool.QueryRow(ctx, q,
		c.Title, c.Description, c.CenterID, c.EntryFee, c.Currency,
		c.StartAt, c.EndAt, c.LanguageID, c.LevelID, c.DurationID,
		c.AttemptsPerUser, c.MinParticipants, c.MaxParticipants,
		c.Prize1, c.Prize2, c.Prize3, c.Status, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return Contest{}, err
	}
	return c, nil
}

const selectContestColumns = `
	SELECT id, title, description, center_id, entry_fee, currency,
		start_at, end_at, language_id, level_id, duration_id,
		attempts_per_user, min_participants, max_participants,
		prize1, prize2, prize3, status, created_at
	FROM contests
`

func (r *PgContestRepo) scanContest(row pgx.Row) (Contest, error) {
	var c Contest
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.CenterID, &c.EntryFee, &c.Currency,
		&c.StartAt, &c.EndAt, &c.LanguageID, &c.LevelID, &c.DurationID,
		&c.AttemptsPerUser, &c.MinParticipants, &c.MaxParticipants,
		&c.Prize1, &c.Prize2, &c.Prize3, &c.Status, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contest{}, ErrRowNotFound
	}
	return c, err
}

func (r *PgContestRepo) ListContests(ctx context.Context) ([]Contest, error) {
	rows, err := r.db.Pool.Query(ctx, selectContestColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contests []Contest
	for rows.Next() {
		c, err := r.scanContest(rows)
		if err != nil {
			return nil, err
		}
		contests = append(contests, c)
	}
	return contests, rows.Err()
}

func (r *PgContestRepo) GetContest(ctx context.Context, id int64) (Contest, error) {
	return r.scanContest(r.db.Pool.QueryRow(ctx, selectContestColumns+` WHERE id = $1`, id))
}

func (r *PgContestRepo) SetContestStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE contests SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (r *PgContestRepo) InsertEntry(ctx context.Context, e Entry) (Entry, error) {
	const q = `
		INSERT INTO contest_entries (contest_id, user_uuid, telegram, phone,
			receipt_key, receipt_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.Pool.QueryRow(ctx, q,
		e.ContestID, e.UserUUID, e.Telegram, e.Phone,
		e.ReceiptKey, e.ReceiptURL, e.Status, e.CreatedAt,
	).Scan(&e.ID)
	if pgdb.IsUniqueViolation(err) {
		return Entry{}, ErrRowExists
	}
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (r *PgContestRepo) ResubmitEntry(ctx context.Context, e Entry) (Entry, error) {
	const q = `
		UPDATE contest_entries
		SET telegram = $2, phone = $3, receipt_key = $4, receipt_url = $5,
			status = $6, review_message = '', reviewed_by = NULL, reviewed_at = NULL
		WHERE id = $1
	`
	tag, err := r.db.Pool.Exec(ctx, q,
		e.ID, e.Telegram, e.Phone, e.ReceiptKey, e.ReceiptURL, e.Status)
	if err != nil {
		return Entry{}, err
	}
	if tag.RowsAffected() == 0 {
		return Entry{}, ErrRowNotFound
	}
	return e, nil
}

const selectEntryColumns = `
	SELECT id, contest_id, user_uuid, telegram, phone, receipt_key, receipt_url,
		status, review_message, reviewed_by, reviewed_at, created_at
	FROM contest_entries
`

func (r *PgContestRepo) scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.ContestID, &e.UserUUID, &e.Telegram, &e.Phone,
		&e.ReceiptKey, &e.ReceiptURL, &e.Status, &e.ReviewMessage,
		&e.ReviewedBy, &e.ReviewedAt, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrRowNotFound
	}
	return e, err
}

func (r *PgContestRepo) GetEntry(ctx context.Context, contestID int64, userUUID uuid.UUID) (Entry, error) {
	return r.scanEntry(r.db.Pool.QueryRow(ctx,
		selectEntryColumns+` WHERE contest_id = $1 AND user_uuid = $2`,
		contestID, userUUID))
}

func (r *PgContestRepo) GetEntryByID(ctx context.Context, id int64) (Entry, error) {
	return r.scanEntry(r.db.Pool.QueryRow(ctx,
		selectEntryColumns+` WHERE id = $1`, id))
}

func (r *PgContestRepo) UpdateEntryReview(ctx context.Context, entryID int64, status, message string, reviewer uuid.UUID, at time.Time) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE contest_entries
		SET status = $2, review_message = $3, reviewed_by = $4, reviewed_at = $5
		WHERE id = $1
	`, entryID, status, message, reviewer, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (r *PgContestRepo) CountActiveEntries(ctx context.Context, contestID int64) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM contest_entries
		WHERE contest_id = $1 AND status IN ($2, $3)
	`, contestID, EntrySubmitted, EntryApproved).Scan(&count)
	return count, err
}

func (r *PgContestRepo) InsertRun(ctx context.Context, run Run) (Run, error) {
	const q = `
		INSERT INTO contest_runs (contest_id, user_uuid, center_id,
			wpm, accuracy, final_score, suspicious, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.Pool.QueryRow(ctx, q,
		run.ContestID, run.UserUUID, run.CenterID,
		run.Wpm, run.Accuracy, run.FinalScore, run.Suspicious, run.CreatedAt,
	).Scan(&run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (r *PgContestRepo) CountRuns(ctx context.Context, contestID int64, userUUID uuid.UUID) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM contest_runs
		WHERE contest_id = $1 AND user_uuid = $2
	`, contestID, userUUID).Scan(&count)
	return count, err
}

// ListRunEntries returns each user's most recent run within the scope,
// joined with display context. The "latest run per user" selection is
// a correlated subquery over (created_at, id) so that the newest
// insert wins even on equal timestamps; the service layer re-ranks the
// result and is the authority on display order.
func (r *PgContestRepo) ListRunEntries(ctx context.Context, contestID int64, centerID *int64) ([]LeaderboardEntry, error) {
	const q = `
		SELECT cr.id, cr.contest_id, cr.user_uuid, cr.center_id,
			cr.wpm, cr.accuracy, cr.final_score, cr.suspicious, cr.created_at,
			u.username, u.display_name, COALESCE(c.name, '')
		FROM contest_runs cr
		JOIN users u ON u.uuid = cr.user_uuid
		LEFT JOIN centers c ON c.id = cr.center_id
		WHERE cr.contest_id = $1
			AND ($2::bigint IS NULL OR cr.center_id = $2)
			AND cr.id = (
				SELECT cr2.id FROM contest_runs cr2
				WHERE cr2.contest_id = cr.contest_id
					AND cr2.user_uuid = cr.user_uuid
					AND ($2::bigint IS NULL OR cr2.center_id = $2)
				ORDER BY cr2.created_at DESC, cr2.id DESC
				LIMIT 1
			)
		ORDER BY cr.final_score DESC, cr.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, q, contestID, centerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		err := rows.Scan(
			&e.ID, &e.ContestID, &e.UserUUID, &e.CenterID,
			&e.Wpm, &e.Accuracy, &e.FinalScore, &e.Suspicious, &e.CreatedAt,
			&e.Username, &e.DisplayName, &e.CenterName,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PgContestRepo) ListRunCenters(ctx context.Context, contestID int64) ([]CenterRef, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT DISTINCT c.id, c.name
		FROM contest_runs cr
		JOIN centers c ON c.id = cr.center_id
		WHERE cr.contest_id = $1
		ORDER BY c.name
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centers []CenterRef
	for rows.Next() {
		var c CenterRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}
