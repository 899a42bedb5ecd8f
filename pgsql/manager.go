package pgsql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/kzaag/pgm/cmn"
	"github.com/kzaag/pgm/logger"
	"github.com/pkg/errors"
)

// Querier is what the Remote* catalog functions read through.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type session interface {
	Querier
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type connectFunc func(ctx context.Context, c Config) (*sql.DB, *sql.Conn, error)

/*
	Manager owns exactly one connection to the server and runs every
	statement through it.

	The first mutating statement opens a transaction, Commit / Rollback end it.
	Reads (and SET search_path) join that transaction when one is open and run
	straight on the connection otherwise.

	A Manager is not safe for concurrent use, callers serialize access themselves.
*/
type Manager struct {
	cfg     Config
	log     logger.Logger
	connect connectFunc

	db   *sql.DB
	conn *sql.Conn
	tx   *sql.Tx

	// set while a statement has to run outside of any transaction
	autocommit bool
}

func newManager(c Config, connect connectFunc) *Manager {
	c = c.withDefaults()
	return &Manager{
		cfg:     c,
		log:     c.Logger,
		connect: connect,
	}
}

// Open connects using c. Empty fields take the DefaultConfig values.
func Open(ctx context.Context, c Config) (*Manager, error) {
	m := newManager(c, DbConnect)
	if err := m.open(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) open(ctx context.Context) error {
	db, conn, err := m.connect(ctx, m.cfg)
	if err != nil {
		return err
	}
	m.db, m.conn = db, conn
	m.log.Debug("connected", "host", m.cfg.Host, "port", m.cfg.Port, "database", m.cfg.Database, "user", m.cfg.User)
	return nil
}

func (m *Manager) Config() Config {
	return m.cfg
}

func (m *Manager) ensureOpen() error {
	if m.conn == nil {
		return errors.Wrap(ErrConnection, "manager is closed")
	}
	return nil
}

// SetDryRun switches dry run on or off, returning the previous setting.
func (m *Manager) SetDryRun(dryRun bool) bool {
	prev := m.cfg.DryRun
	m.cfg.DryRun = dryRun
	return prev
}

// InTransaction reports whether uncommitted statements are pending.
func (m *Manager) InTransaction() bool {
	return m.tx != nil
}

/*
	Close releases the connection. Uncommitted statements are rolled back.
	Calling it more than once is fine.
*/
func (m *Manager) Close() error {
	if m.conn == nil && m.db == nil {
		return nil
	}

	var err error
	if m.tx != nil {
		m.log.Warn("closing with uncommitted statements, rolling back", "database", m.cfg.Database)
		err = m.tx.Rollback()
		m.tx = nil
	}

	if e := DbClose(m.db, m.conn); e != nil && err == nil {
		err = e
	}
	m.db, m.conn = nil, nil

	return err
}

/*
	Reconnect points the manager at another database on the same server with
	the same credentials. The new connection is established before the old one
	is closed, if that fails the manager keeps working on the old one.
*/
func (m *Manager) Reconnect(ctx context.Context, database string) error {
	c := m.cfg
	c.Database = database

	db, conn, err := m.connect(ctx, c)
	if err != nil {
		return err
	}

	if err = m.Close(); err != nil {
		m.log.Warn("error closing previous connection", "database", m.cfg.Database, "err", err)
	}

	m.cfg = c
	m.db, m.conn = db, conn
	m.log.Debug("reconnected", "database", database)
	return nil
}

func (m *Manager) Commit() error {
	if m.tx == nil {
		return nil
	}
	tx := m.tx
	m.tx = nil
	return tx.Commit()
}

func (m *Manager) Rollback() error {
	if m.tx == nil {
		return nil
	}
	tx := m.tx
	m.tx = nil
	return tx.Rollback()
}

func (m *Manager) commitIf(commit bool) error {
	if !commit {
		return nil
	}
	return m.Commit()
}

/*
	session for reads: the open transaction, or the bare connection
*/
func (m *Manager) session() session {
	if m.tx != nil {
		return m.tx
	}
	return m.conn
}

/*
	session for writes, opens the transaction if needed.
	The transaction outlives ctx, it ends only on Commit, Rollback or Close.
*/
func (m *Manager) mutator(ctx context.Context) (session, error) {
	if m.autocommit {
		if m.tx != nil {
			return nil, errors.Wrap(ErrTxInProgress, "statement cannot run inside a transaction, commit or rollback first")
		}
		return m.conn, nil
	}
	if m.tx == nil {
		tx, err := m.conn.BeginTx(context.WithoutCancel(ctx), nil)
		if err != nil {
			return nil, err
		}
		m.tx = tx
	}
	return m.tx, nil
}

/*
	runs fn with every statement going straight to the connection, the
	previous mode is restored on the way out whatever fn returns.
*/
func (m *Manager) withAutocommit(fn func() error) error {
	if m.tx != nil {
		return errors.Wrap(ErrTxInProgress, "statement cannot run inside a transaction, commit or rollback first")
	}
	prev := m.autocommit
	m.autocommit = true
	defer func() {
		m.autocommit = prev
	}()
	return fn()
}

/*
	Execute sends a mutating statement. Parameters are bound by the driver,
	the displayed form is only for the reader.
*/
func (m *Manager) Execute(ctx context.Context, stmt string, args ...interface{}) (sql.Result, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}

	m.display(stmt, args, m.cfg.DryRun)
	if m.cfg.DryRun {
		return driver.RowsAffected(0), nil
	}

	s, err := m.mutator(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	if m.cfg.Verbose {
		cmn.FPrintflnSuccess(m.cfg.Output, "    ", "Query completed in %v.", time.Since(start))
	}
	return res, nil
}

// executeSession runs a statement which changes session state only.
func (m *Manager) executeSession(ctx context.Context, stmt string, args ...interface{}) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}
	m.display(stmt, args, false)
	_, err := m.session().ExecContext(ctx, stmt, args...)
	return err
}

// QueryContext runs a read. The caller closes the rows.
func (m *Manager) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	m.display(query, args, false)
	return m.session().QueryContext(ctx, query, args...)
}
