package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/aedtkit/internal/automation"
)

// Record is one journal row.
type Record struct {
	Seq     int64  `json:"seq"`
	Session string `json:"session"`
	Method  string `json:"method"`
	Target  string `json:"target,omitempty"`
	Args    []any  `json:"args"`
}

// SessionSummary describes one session in the journal.
type SessionSummary struct {
	Session  string `json:"session"`
	FirstSeq int64  `json:"first_seq"`
	Calls    int    `json:"calls"`
}

// Append writes an entry. Implements automation.Journal.
func (s *Store) Append(ctx context.Context, e automation.Entry) error {
	args := e.Args
	if args == nil {
		args = automation.Args{}
	}
	argsJSON, err := json.Marshal([]any(args))
	if err != nil {
		return fmt.Errorf("append %s: marshal args: %w", e.Method, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO journal (session, method, target, args)
		VALUES (?, ?, ?, ?)
	`, e.Session, e.Method, e.Target, string(argsJSON))
	if err != nil {
		return fmt.Errorf("append %s: %w", e.Method, err)
	}
	return nil
}

// ReadSession returns every record of session in seq order.
// Returns an empty slice (not nil) if the session has no records.
func (s *Store) ReadSession(ctx context.Context, session string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, session, method, target, args
		FROM journal
		WHERE session = ?
		ORDER BY seq ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var argsJSON string
		if err := rows.Scan(&r.Seq, &r.Session, &r.Method, &r.Target, &argsJSON); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &r.Args); err != nil {
			return nil, fmt.Errorf("decode args at seq %d: %w", r.Seq, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return records, nil
}

// Sessions lists the sessions in the journal ordered by their first call.
func (s *Store) Sessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, MIN(seq) AS first_seq, COUNT(*)
		FROM journal
		GROUP BY session
		ORDER BY first_seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SessionSummary{}
	for rows.Next() {
		var ss SessionSummary
		if err := rows.Scan(&ss.Session, &ss.FirstSeq, &ss.Calls); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

var _ automation.Journal = (*Store)(nil)
