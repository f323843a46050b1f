package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/s8ken/SYMBI-Resonate/pkg/audit"
)

const insertTicketSQL = `INSERT INTO ticket (
    id, created_at, version, purpose, assessments, body
) VALUES (?, ?, ?, ?, ?, ?)`

const selectTicketSQL = `SELECT body FROM ticket WHERE id = ?`

const listTicketSQL = `SELECT body FROM ticket ORDER BY created_at DESC, id LIMIT ?`

// SaveTicket persists one ticket at the given issue time.
func (s *Store) SaveTicket(ctx context.Context, t *audit.ContextBridgeTicket, issuedAt time.Time) error {
	if t == nil {
		return errors.New("nil ticket")
	}
	body, err := json.Marshal(t)
	if err != nil {
		return errors.Wrapf(err, "failed to encode ticket %s", t.ID)
	}

	_, err = s.db.ExecContext(ctx, insertTicketSQL,
		t.ID, issuedAt.UTC(), t.TicketVersion, t.Scope.Purpose,
		t.Summary.Assessments, string(body),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert ticket %s", t.ID)
	}
	return nil
}

// GetTicket loads one ticket by ID. Missing records return
// sql.ErrNoRows.
func (s *Store) GetTicket(ctx context.Context, id string) (*audit.ContextBridgeTicket, error) {
	var body string
	if err := s.db.QueryRowContext(ctx, selectTicketSQL, id).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to query ticket %s", id)
	}
	var t audit.ContextBridgeTicket
	if err := json.Unmarshal([]byte(body), &t); err != nil {
		return nil, errors.Wrapf(err, "failed to decode ticket %s", id)
	}
	return &t, nil
}

// ListTickets returns the most recently issued tickets.
func (s *Store) ListTickets(ctx context.Context, limit int) ([]*audit.ContextBridgeTicket, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, listTicketSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tickets")
	}
	defer rows.Close()

	var out []*audit.ContextBridgeTicket
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, errors.Wrap(err, "failed to scan ticket row")
		}
		var t audit.ContextBridgeTicket
		if err := json.Unmarshal([]byte(body), &t); err != nil {
			return nil, errors.Wrap(err, "failed to decode ticket row")
		}
		out = append(out, &t)
	}
	return out, errors.Wrap(rows.Err(), "failed to iterate tickets")
}
