package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/s8ken/SYMBI-Resonate/pkg/assess"
)

const insertAssessmentSQL = `INSERT INTO assessment (
    id, created_at, profile, source, author, context,
    reality, trust, ethics, resonance, resonance_level, parity, overall, detail
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectAssessmentSQL = `SELECT detail FROM assessment WHERE id = ?`

const listAssessmentSQL = `SELECT detail FROM assessment
    WHERE (? = '' OR profile = ?)
    ORDER BY created_at DESC, id
    LIMIT ?`

// SaveAssessment persists one result. Saving the same ID twice is an
// error.
func (s *Store) SaveAssessment(ctx context.Context, r *assess.AssessmentResult) error {
	if r == nil {
		return errors.New("nil assessment")
	}
	detail, err := json.Marshal(r)
	if err != nil {
		return errors.Wrapf(err, "failed to encode assessment %s", r.ID)
	}

	_, err = s.db.ExecContext(ctx, insertAssessmentSQL,
		r.ID, r.Timestamp, r.Profile,
		r.Metadata.Source, r.Metadata.Author, r.Metadata.Context,
		r.RealityIndex.Overall, string(r.TrustProtocol.Overall),
		r.EthicalAlignment.Overall, r.ResonanceQuality.Overall,
		r.ResonanceQuality.Level, r.CanvasParity.Overall,
		r.OverallScore, string(detail),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert assessment %s", r.ID)
	}
	return nil
}

// GetAssessment loads one result by ID. Missing records return
// sql.ErrNoRows.
func (s *Store) GetAssessment(ctx context.Context, id string) (*assess.AssessmentResult, error) {
	var detail string
	if err := s.db.QueryRowContext(ctx, selectAssessmentSQL, id).Scan(&detail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to query assessment %s", id)
	}
	var r assess.AssessmentResult
	if err := json.Unmarshal([]byte(detail), &r); err != nil {
		return nil, errors.Wrapf(err, "failed to decode assessment %s", id)
	}
	return &r, nil
}

// ListAssessments returns the most recent results, optionally filtered
// by profile name.
func (s *Store) ListAssessments(ctx context.Context, profile string, limit int) ([]*assess.AssessmentResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, listAssessmentSQL, profile, profile, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assessments")
	}
	defer rows.Close()

	var out []*assess.AssessmentResult
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, errors.Wrap(err, "failed to scan assessment row")
		}
		var r assess.AssessmentResult
		if err := json.Unmarshal([]byte(detail), &r); err != nil {
			return nil, errors.Wrap(err, "failed to decode assessment row")
		}
		out = append(out, &r)
	}
	return out, errors.Wrap(rows.Err(), "failed to iterate assessments")
}
