package ledger

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/wgdzlh/rotsep/log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrRunNotFound = errors.New("run not found")

// 一次分层运行的记录
type Run struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	BaseClass  string
	Output     string
	Cols       int
	Rows       int
	BandMin    int32
	BandMax    int32
	Total      int64
	Rotation   int64
	Continuous int64
	Drained    int64
	Invalid    int64
}

// 运行台账（sqlite）
type Ledger struct {
	db     *sql.DB
	logTag string
}

// Open opens (or creates) the ledger database and migrates it to the latest
// schema.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// PRAGMA按连接生效
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000; PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	l := &Ledger{db: db, logTag: "Ledger:"}
	if err = l.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(l.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// m.Close would close the shared *sql.DB as well.
	m.Log = &migrateLogger{tag: l.logTag}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

type migrateLogger struct {
	tag string
}

func (m *migrateLogger) Printf(format string, v ...interface{}) {
	log.Info(m.tag+"migrate", zap.String("msg", fmt.Sprintf(format, v...)))
}

func (m *migrateLogger) Verbose() bool {
	return false
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordRun stores run and its per-code pixel counts in one transaction. An
// empty run.ID gets a fresh UUID, which is returned.
func (l *Ledger) RecordRun(ctx context.Context, run Run, counts map[int32]int64) (id string, err error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, started_at, duration_ms, base_class, output, width, height,
			band_min, band_max, total, rotation, continuous, drained, invalid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.BaseClass, run.Output, run.Cols, run.Rows,
		run.BandMin, run.BandMax, run.Total, run.Rotation, run.Continuous, run.Drained, run.Invalid)
	if err != nil {
		log.Error(l.logTag+"insert run failed", zap.String("run", run.ID), zap.Error(err))
		return
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO code_counts (run_id, code, pixels) VALUES (?, ?, ?)`)
	if err != nil {
		return
	}
	defer stmt.Close()
	for code, n := range counts {
		if _, err = stmt.ExecContext(ctx, run.ID, code, n); err != nil {
			log.Error(l.logTag+"insert code count failed", zap.String("run", run.ID), zap.Int32("code", code), zap.Error(err))
			return
		}
	}
	if err = tx.Commit(); err != nil {
		return
	}
	id = run.ID
	log.Info(l.logTag+"recorded run", zap.String("run", id), zap.Int("codes", len(counts)))
	return
}

const runColumns = `run_id, started_at, duration_ms, base_class, output, width, height,
	band_min, band_max, total, rotation, continuous, drained, invalid`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (r Run, err error) {
	var started, ms int64
	err = s.Scan(&r.ID, &started, &ms, &r.BaseClass, &r.Output, &r.Cols, &r.Rows,
		&r.BandMin, &r.BandMax, &r.Total, &r.Rotation, &r.Continuous, &r.Drained, &r.Invalid)
	r.StartedAt = time.UnixMilli(started)
	r.Duration = time.Duration(ms) * time.Millisecond
	return
}

// 按开始时间倒序列出运行记录，limit<=0表示全部
func (l *Ledger) Runs(ctx context.Context, limit int) (runs []Run, err error) {
	q := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return
	}
	defer rows.Close()
	for rows.Next() {
		var r Run
		if r, err = scanRun(rows); err != nil {
			return
		}
		runs = append(runs, r)
	}
	err = rows.Err()
	return
}

func (l *Ledger) Run(ctx context.Context, id string) (r Run, err error) {
	r, err = scanRun(l.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrRunNotFound
	}
	return
}

// 某次运行的各编码像元数
func (l *Ledger) Counts(ctx context.Context, id string) (counts map[int32]int64, err error) {
	rows, err := l.db.QueryContext(ctx, `SELECT code, pixels FROM code_counts WHERE run_id = ?`, id)
	if err != nil {
		return
	}
	defer rows.Close()
	counts = map[int32]int64{}
	for rows.Next() {
		var (
			code int32
			n    int64
		)
		if err = rows.Scan(&code, &n); err != nil {
			return
		}
		counts[code] = n
	}
	err = rows.Err()
	return
}
