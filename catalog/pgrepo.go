package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/typingtutor/backend/pgdb"
)

type PgCatalogRepo struct {
	db *pgdb.DB
}

func NewPgCatalogRepo(db *pgdb.DB) *PgCatalogRepo {
	return &PgCatalogRepo{db: db}
}

func (r *PgCatalogRepo) ListCenters(ctx context.Context) ([]Center, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, created_at FROM centers ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centers []Center
	for rows.Next() {
		var c Center
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

func (r *PgCatalogRepo) GetCenter(ctx context.Context, id int64) (Center, error) {
	var c Center
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM centers WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Center{}, ErrRowNotFound
	}
	return c, err
}

func (r *PgCatalogRepo) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name FROM languages ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var languages []Language
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	return languages, rows.Err()
}

func (r *PgCatalogRepo) GetLanguage(ctx context.Context, id int64) (Language, error) {
	var l Language
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name FROM languages WHERE id = $1
	`, id).Scan(&l.ID, &l.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Language{}, ErrRowNotFound
	}
	return l, err
}

func (r *PgCatalogRepo) ListLevels(ctx context.Context) ([]Level, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name FROM levels ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []Level
	for rows.Next() {
		var l Level
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (r *PgCatalogRepo) GetLevel(ctx context.Context, id int64) (Level, error) {
	var l Level
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name FROM levels WHERE id = $1
	`, id).Scan(&l.ID, &l.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Level{}, ErrRowNotFound
	}
	return l, err
}

func (r *PgCatalogRepo) ListDurations(ctx context.Context) ([]Duration, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, seconds FROM durations ORDER BY seconds
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var durations []Duration
	for rows.Next() {
		var d Duration
		if err := rows.Scan(&d.ID, &d.Seconds); err != nil {
			return nil, err
		}
		durations = append(durations, d)
	}
	return durations, rows.Err()
}

func (r *PgCatalogRepo) GetDurationByID(ctx context.Context, id int64) (Duration, error) {
	var d Duration
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, seconds FROM durations WHERE id = $1
	`, id).Scan(&d.ID, &d.Seconds)
	if errors.Is(err, pgx.ErrNoRows) {
		return Duration{}, ErrRowNotFound
	}
	return d, err
}

func (r *PgCatalogRepo) GetDurationBySeconds(ctx context.Context, seconds int) (Duration, error) {
	var d Duration
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, seconds FROM durations WHERE seconds = $1
	`, seconds).Scan(&d.ID, &d.Seconds)
	if errors.Is(err, pgx.ErrNoRows) {
		return Duration{}, ErrRowNotFound
	}
	return d, err
}

func (r *PgCatalogRepo) ListTexts(ctx context.Context, languageID, levelID int64) ([]Text, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, language_id, level_id, title, content
		FROM texts
		WHERE language_id = $1 AND level_id = $2
	`, languageID, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []Text
	for rows.Next() {
		var t Text
		if err := rows.Scan(&t.ID, &t.LanguageID, &t.LevelID, &t.Title, &t.Content); err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, rows.Err()
}

func (r *PgCatalogRepo) InsertCenter(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO centers (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	return id, err
}

func (r *PgCatalogRepo) InsertLanguage(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO languages (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	return id, err
}

func (r *PgCatalogRepo) InsertLevel(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO levels (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	return id, err
}

func (r *PgCatalogRepo) InsertDuration(ctx context.Context, seconds int) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO durations (seconds) VALUES ($1)
		ON CONFLICT (seconds) DO UPDATE SET seconds = EXCLUDED.seconds
		RETURNING id
	`, seconds).Scan(&id)
	return id, err
}

func (r *PgCatalogRepo) InsertText(ctx context.Context, t Text) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO texts (language_id, level_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.LanguageID, t.LevelID, t.Title, t.Content).Scan(&id)
	return id, err
}
