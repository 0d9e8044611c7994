package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

var savepointName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Tx is a Session backed by a *sql.Tx.
type Tx struct {
	tx *sql.Tx
}

var (
	_ Session        = (*Tx)(nil)
	_ SessionFactory = (*DB)(nil)
)

// Begin starts a new unit of work.
func (db *DB) Begin(ctx context.Context) (Session, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

func (t *Tx) Articles() ArticleRepository {
	return &articleRepository{q: t.tx}
}

func (t *Tx) Projects() ProjectRepository {
	return &projectRepository{q: t.tx}
}

func (t *Tx) Savepoint(ctx context.Context, name string) error {
	return t.exec(ctx, "SAVEPOINT", name)
}

func (t *Tx) RollbackTo(ctx context.Context, name string) error {
	return t.exec(ctx, "ROLLBACK TO SAVEPOINT", name)
}

func (t *Tx) Release(ctx context.Context, name string) error {
	return t.exec(ctx, "RELEASE SAVEPOINT", name)
}

// exec runs a savepoint statement; names cannot be bound as parameters.
func (t *Tx) exec(ctx context.Context, stmt, name string) error {
	if !savepointName.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}
	if _, err := t.tx.ExecContext(ctx, stmt+" "+name); err != nil {
		return fmt.Errorf("failed to %s %s: %w", stmt, name, err)
	}
	return nil
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
