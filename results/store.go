// SPDX-License-Identifier: MIT

package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/godruoyi/go-snowflake"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/sgostarter/i/l"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/katalvlaran/propel/propulsion"
)

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DefaultDSN is used by Open when dsn is empty.
const DefaultDSN = "propel.db"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		points INTEGER NOT NULL,
		failed INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS outcomes (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		payload TEXT NOT NULL,
		error TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}

// Run is one stored sweep. Failed counts points that did not fully trim.
type Run struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Points    int       `json:"points"`
	Failed    int       `json:"failed"`
}

// Store is a sweep archive over database/sql.
type Store struct {
	db     *sql.DB
	driver string
	opts   Options
	log    l.Wrapper
}

// Open connects to dsn with driver and applies the schema.
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%q: %w", driver, ErrDriver)
	}
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	o := gatherOptions(opts...)

	return &Store{
		db:     db,
		driver: driver,
		opts:   o,
		log:    o.logger.WithFields(l.StringField(l.ClsKey, "results.Store")),
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// rebind turns "?" placeholders into "$n" for postgres.
func (s *Store) rebind(q string) string {
	if s.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// SaveRun stores outcomes under a new run in one transaction.
func (s *Store) SaveRun(ctx context.Context, name string, outcomes []propulsion.Outcome) (run Run, retErr error) {
	run = Run{
		ID:        strconv.FormatUint(snowflake.ID(), 36),
		Name:      name,
		CreatedAt: s.opts.now().UTC(),
		Points:    len(outcomes),
	}
	for _, o := range outcomes {
		if !o.OK() {
			run.Failed++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO runs (id, name, created_at, points, failed) VALUES (?, ?, ?, ?, ?)`),
		run.ID, run.Name, run.CreatedAt.UnixNano(), run.Points, run.Failed); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	insert := s.rebind(`INSERT INTO outcomes (run_id, seq, payload, error) VALUES (?, ?, ?, ?)`)
	for i, o := range outcomes {
		payload, err := json.Marshal(o)
		if err != nil {
			return Run{}, fmt.Errorf("encode point %d: %w", i, err)
		}
		msg := ""
		if o.Err != nil {
			msg = o.Err.Error()
		}
		if _, err := tx.ExecContext(ctx, insert, run.ID, i, string(payload), msg); err != nil {
			return Run{}, fmt.Errorf("insert point %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	s.log.WithFields(l.StringField("run", run.ID), l.IntField("points", run.Points),
		l.IntField("failed", run.Failed)).Info("run saved")

	return run, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at, points, failed FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Run returns the run with id.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, name, created_at, points, failed FROM runs WHERE id = ?`), id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}

	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r  Run
		ns int64
	)
	if err := sc.Scan(&r.ID, &r.Name, &ns, &r.Points, &r.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.CreatedAt = time.Unix(0, ns).UTC()

	return r, nil
}

// Outcomes returns the points of run id in sweep order. A stored
// point-level error comes back wrapping propulsion.ErrUnsolved.
func (s *Store) Outcomes(ctx context.Context, id string) ([]propulsion.Outcome, error) {
	if _, err := s.Run(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT payload, error FROM outcomes WHERE run_id = ? ORDER BY seq`), id)
	if err != nil {
		return nil, fmt.Errorf("select outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []propulsion.Outcome
	for rows.Next() {
		var payload, msg string
		if err := rows.Scan(&payload, &msg); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		var o propulsion.Outcome
		if err := json.Unmarshal([]byte(payload), &o); err != nil {
			return nil, fmt.Errorf("decode outcome %d: %w", len(out), err)
		}
		if msg != "" {
			o.Err = fmt.Errorf("%w: %s", propulsion.ErrUnsolved,
				strings.TrimPrefix(strings.TrimPrefix(msg, propulsion.ErrUnsolved.Error()), ": "))
		}
		out = append(out, o)
	}

	return out, rows.Err()
}
