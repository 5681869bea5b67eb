package xpgx

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier - общий интерфейс pgxpool.Pool и pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Pool interface {
	Querier
	Execx(ctx context.Context, sqlizer sq.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error
	Selectx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error
	InTx(ctx context.Context, fn func(tx Querier) error) error
	Close()
}

type pool struct {
	*pgxpool.Pool
}

func Connect(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err = p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return &pool{p}, nil
}

func (p *pool) Execx(ctx context.Context, sqlizer sq.Sqlizer) (pgconn.CommandTag, error) {
	return Execx(ctx, p.Pool, sqlizer)
}

func (p *pool) Getx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error {
	return Getx(ctx, p.Pool, dst, sqlizer)
}

func (p *pool) Selectx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error {
	return Selectx(ctx, p.Pool, dst, sqlizer)
}

// InTx выполняет fn в транзакции, при ошибке делает rollback.
func (p *pool) InTx(ctx context.Context, fn func(tx Querier) error) (err error) {
	tx, err := p.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func Execx(ctx context.Context, q Querier, sqlizer sq.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}

	return q.Exec(ctx, query, args...)
}

// Selectx сканирует все строки в слайс dst по db-тегам.
func Selectx(ctx context.Context, q Querier, dst any, sqlizer sq.Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Select(ctx, q, dst, query, args...)
}

// Getx сканирует ровно одну строку; нет строк - pgx.ErrNoRows.
func Getx(ctx context.Context, q Querier, dst any, sqlizer sq.Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	if err = pgxscan.Get(ctx, q, dst, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return pgx.ErrNoRows
		}
		return err
	}

	return nil
}
