package repository

import (
	"context"
	"database/sql"
	"errors"
)

// executor is the common query surface of *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWorkFactory produces a unit of work scoped to one request. Handlers
// call it once per request instead of sharing an instance.
type UnitOfWorkFactory func() UnitOfWork

// PostgresUnitOfWork implements UnitOfWork over a database/sql connection.
// An instance carries the active transaction and must not be shared across
// requests; construct one per request via a UnitOfWorkFactory.
type PostgresUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx

	users         *postgresUserRepository
	tasks         *postgresTaskRepository
	dailyGoals    *postgresDailyGoalRepository
	focusSessions *postgresFocusSessionRepository
}

// NewPostgresUnitOfWork wraps an open connection pool. Repositories are
// built up front and share the active executor, so operations issued
// between Begin and Commit run inside the transaction.
func NewPostgresUnitOfWork(db *sql.DB) *PostgresUnitOfWork {
	u := &PostgresUnitOfWork{db: db}
	u.users = &postgresUserRepository{uow: u}
	u.tasks = &postgresTaskRepository{uow: u}
	u.dailyGoals = &postgresDailyGoalRepository{uow: u}
	u.focusSessions = &postgresFocusSessionRepository{uow: u}
	return u
}

func (u *PostgresUnitOfWork) exec() executor {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Users returns the user repository.
func (u *PostgresUnitOfWork) Users() UserRepository { return u.users }

// Tasks returns the task repository.
func (u *PostgresUnitOfWork) Tasks() TaskRepository { return u.tasks }

// DailyGoals returns the daily goal repository.
func (u *PostgresUnitOfWork) DailyGoals() DailyGoalRepository { return u.dailyGoals }

// FocusSessions returns the focus session repository.
func (u *PostgresUnitOfWork) FocusSessions() FocusSessionRepository { return u.focusSessions }

// Begin opens a transaction. Nested transactions are not supported.
func (u *PostgresUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already in progress")
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	u.tx = tx
	return nil
}

// Commit commits the active transaction, if any.
func (u *PostgresUnitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Commit()
	u.tx = nil
	return err
}

// Rollback rolls back the active transaction, if any.
func (u *PostgresUnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback()
	u.tx = nil
	return err
}
