package practice

import (
	"context"

	"github.com/typingtutor/backend/pgdb"
)

type PgPracticeRepo struct {
	db *pgdb.DB
}

func NewPgPracticeRepo(db *pgdb.DB) *PgPracticeRepo {
	return &PgPracticeRepo{db: db}
}

func (r *PgPracticeRepo) InsertRun(ctx context.Context, run Run) (Run, error) {
	const q = `
		INSERT INTO practice_runs (user_uuid, center_id, language_id, level_id,
			duration_id, wpm, accuracy, final_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.Pool.QueryRow(ctx, q,
		run.UserUUID,
		run.CenterID,
		run.LanguageID,
		run.LevelID,
		run.DurationID,
		run.Wpm,
		run.Accuracy,
		run.FinalScore,
		run.CreatedAt,
	).Scan(&run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListEntries returns practice runs joined with their display context,
// best-scored first. The 200-row presentation cut happens in the
// service; the query keeps a safety margin above it.
func (r *PgPracticeRepo) ListEntries(ctx context.Context, centerID *int64) ([]LeaderboardEntry, error) {
	const q = `
		SELECT pr.id, pr.user_uuid, pr.center_id, pr.language_id, pr.level_id,
			pr.duration_id, pr.wpm, pr.accuracy, pr.final_score, pr.created_at,
			u.username, u.display_name,
			COALESCE(c.name, ''), COALESCE(lang.name, ''), COALESCE(lvl.name, ''),
			COALESCE(d.seconds, 0)
		FROM practice_runs pr
		JOIN users u ON u.uuid = pr.user_uuid
		LEFT JOIN centers c ON c.id = pr.center_id
		LEFT JOIN languages lang ON lang.id = pr.language_id
		LEFT JOIN levels lvl ON lvl.id = pr.level_id
		LEFT JOIN durations d ON d.id = pr.duration_id
		WHERE ($1::bigint IS NULL OR pr.center_id = $1)
		ORDER BY pr.final_score DESC, pr.created_at DESC
		LIMIT 500
	`
	rows, err := r.db.Pool.Query(ctx, q, centerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		err := rows.Scan(
			&e.ID,
			&e.UserUUID,
			&e.CenterID,
			&e.LanguageID,
			&e.LevelID,
			&e.DurationID,
			&e.Wpm,
			&e.Accuracy,
			&e.FinalScore,
			&e.CreatedAt,
			&e.Username,
			&e.DisplayName,
			&e.CenterName,
			&e.LanguageName,
			&e.LevelName,
			&e.DurationSeconds,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
