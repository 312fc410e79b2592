package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres. Result payloads are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analyses (id, created_at, mode, language, resume_text_length, result, ats_score)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	resultPayload, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}

	var language sql.NullString
	if rec.Language != "" {
		language = sql.NullString{String: rec.Language, Valid: true}
	}
	var atsScore sql.NullInt64
	if rec.ATSScore != nil {
		atsScore = sql.NullInt64{Int64: int64(*rec.ATSScore), Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt,
		rec.Mode,
		language,
		rec.ResumeTextLength,
		resultPayload,
		atsScore,
	)
	return err
}

// Count returns the total number of analysis records.
func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT count(*) FROM analyses`
	var total int64
	if err := r.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ Repo = (*PGRepo)(nil)
