package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNoDatabase = errors.New("no database behind this pool")

// sqlRecorder is a gorm logger that keeps every statement with its bound values inlined.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	stmt, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, stmt)
}

func (r *sqlRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statements...)
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }

func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

// fakePool accepts every write and fails every read.
type fakePool struct {
	mu           sync.Mutex
	rowsAffected int64
	begins       int
	commits      int
	rollbacks    int
}

func (p *fakePool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (p *fakePool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fakeResult(p.rowsAffected), nil
}

func (p *fakePool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (p *fakePool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (p *fakePool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.begins++
	return &fakeTx{pool: p}, nil
}

// fakeTx is the transaction handle returned by fakePool.
type fakeTx struct {
	pool *fakePool
}

func (t *fakeTx) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return t.pool.PrepareContext(ctx, query)
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.pool.ExecContext(ctx, query, args...)
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.pool.QueryContext(ctx, query, args...)
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.pool.QueryRowContext(ctx, query, args...)
}

func (t *fakeTx) Commit() error {
	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()
	t.pool.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()
	t.pool.rollbacks++
	return nil
}

// newRecordingDB opens GORM with the MySQL dialect over a fake pool, so repository
// calls render real MySQL statements without a server.
func newRecordingDB(t *testing.T, rowsAffected int64) (*gorm.DB, *sqlRecorder, *fakePool) {
	t.Helper()
	pool := &fakePool{rowsAffected: rowsAffected}
	rec := &sqlRecorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      pool,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:               rec,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, rec, pool
}
