package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/okushigue/zetascan/scan"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	catalog       TEXT NOT NULL,
	mode          TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	scanned_zeros INTEGER NOT NULL,
	total_zeros   INTEGER NOT NULL,
	batches       INTEGER NOT NULL,
	stopped       INTEGER NOT NULL,
	report        TEXT,
	best_constant TEXT,
	best_gamma    REAL,
	best_quality  REAL
);

CREATE TABLE IF NOT EXISTS cells (
	session_id   TEXT NOT NULL REFERENCES sessions(id),
	constant     TEXT NOT NULL,
	tolerance    REAL NOT NULL,
	hits         INTEGER NOT NULL,
	expected     REAL,
	significance REAL,
	chi_square   REAL,
	binomial_p   REAL,
	poisson_p    REAL,
	significant  INTEGER NOT NULL,
	reason       TEXT
);

CREATE INDEX IF NOT EXISTS idx_cells_session ON cells(session_id);
`

// SessionStore records hunt sessions and their per-cell results in SQLite.
type SessionStore struct {
	db *sql.DB
}

// OpenSessionStore opens (and migrates) the session database at path.
// Use ":memory:" for an ephemeral store.
func OpenSessionStore(path string) (*SessionStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return &SessionStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error { return s.db.Close() }

// Session is one recorded hunt.
type Session struct {
	ID           string
	Catalog      string
	Mode         string
	StartedAt    time.Time
	ScannedZeros int
	TotalZeros   int
	Batches      int
	Stopped      bool
	Report       string
	BestConstant string
	BestGamma    float64
	BestQuality  float64
}

// RecordScan stores a completed scan and returns the new session ID.
func (s *SessionStore) RecordScan(ctx context.Context, res *scan.Result, startedAt time.Time, reportName string) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var bestConstant sql.NullString
	var bestGamma, bestQuality sql.NullFloat64
	if res.Best != nil {
		bestConstant = sql.NullString{String: res.Best.Constant.Name, Valid: true}
		bestGamma = sql.NullFloat64{Float64: res.Best.Hit.Gamma, Valid: true}
		bestQuality = sql.NullFloat64{Float64: res.Best.Quality, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, catalog, mode, started_at, scanned_zeros,
			total_zeros, batches, stopped, report,
			best_constant, best_gamma, best_quality)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Catalog, res.Mode.String(), startedAt.UTC().Format(time.RFC3339Nano),
		res.ScannedZeros, res.TotalZeros, res.Batches, res.Stopped, reportName,
		bestConstant, bestGamma, bestQuality)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cells (session_id, constant, tolerance, hits, expected,
			significance, chi_square, binomial_p, poisson_p, significant, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for name, cells := range res.Cells {
		for _, cell := range cells {
			row := exportCell(name, cell)
			_, err := stmt.ExecContext(ctx,
				id, row.Constant, row.Tolerance, row.Hits,
				nullable(row.Expected), nullable(row.Significance),
				nullable(row.ChiSquare), nullable(row.BinomialP), nullable(row.PoissonP),
				row.Significant, row.Reason)
			if err != nil {
				return "", fmt.Errorf("insert cell %s: %w", name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// Sessions lists recorded sessions, newest first.
func (s *SessionStore) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, catalog, mode, started_at, scanned_zeros, total_zeros,
			batches, stopped, COALESCE(report, ''),
			COALESCE(best_constant, ''), COALESCE(best_gamma, 0), COALESCE(best_quality, 0)
		FROM sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var started string
		if err := rows.Scan(&sess.ID, &sess.Catalog, &sess.Mode, &started,
			&sess.ScannedZeros, &sess.TotalZeros, &sess.Batches, &sess.Stopped,
			&sess.Report, &sess.BestConstant, &sess.BestGamma, &sess.BestQuality); err != nil {
			return nil, err
		}
		sess.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parse session timestamp: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Cells returns the recorded cells of a session.
func (s *SessionStore) Cells(ctx context.Context, sessionID string) ([]CellExport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT constant, tolerance, hits, expected, significance,
			chi_square, binomial_p, poisson_p, significant, COALESCE(reason, '')
		FROM cells WHERE session_id = ? ORDER BY constant, tolerance DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CellExport
	for rows.Next() {
		var c CellExport
		var expected, significance, chi2, binom, poisson sql.NullFloat64
		if err := rows.Scan(&c.Constant, &c.Tolerance, &c.Hits,
			&expected, &significance, &chi2, &binom, &poisson,
			&c.Significant, &c.Reason); err != nil {
			return nil, err
		}
		c.Expected = fromNullable(expected)
		c.Significance = fromNullable(significance)
		c.ChiSquare = fromNullable(chi2)
		c.BinomialP = fromNullable(binom)
		c.PoissonP = fromNullable(poisson)
		out = append(out, c)
	}
	return out, rows.Err()
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return ptr(v.Float64)
}
