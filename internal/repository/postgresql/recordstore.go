package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// scanFunc reads one row. pgx.Rows satisfies pgx.Row, so the same function
// serves single and multi row reads.
type scanFunc[T any] func(row pgx.Row) (T, error)

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// within matches rows whose date column lies inside rng.
func within(column string, rng dateutil.Range) sq.Sqlizer {
	return sq.And{
		sq.GtOrEq{column: rng.Start.Time()},
		sq.LtOrEq{column: rng.End.Time()},
	}
}

// overlapping matches rows whose [startCol, endCol] span intersects rng.
func overlapping(startCol, endCol string, rng dateutil.Range) sq.Sqlizer {
	return sq.And{
		sq.LtOrEq{startCol: rng.End.Time()},
		sq.GtOrEq{endCol: rng.Start.Time()},
	}
}

// queryRows runs a select and scans every row.
func queryRows[T any](ctx context.Context, q database.Querier, b sq.Sqlizer, scan scanFunc[T]) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// queryOne runs a select expected to return one row; pgx.ErrNoRows becomes
// notFound.
func queryOne[T any](ctx context.Context, q database.Querier, b sq.Sqlizer, scan scanFunc[T], notFound error) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, fmt.Errorf("build query: %w", err)
	}

	v, err := scan(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, notFound
		}
		return zero, err
	}
	return v, nil
}

// exec runs a statement and reports the affected row count.
func exec(ctx context.Context, q database.Querier, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// updateByID applies patch to one tenant row and stamps updated_at.
func updateByID(ctx context.Context, q database.Querier, table, companyID, id string, patch map[string]interface{}, notFound error) error {
	patch["updated_at"] = time.Now()
	b := psql.Update(table).
		SetMap(patch).
		Where(sq.Eq{"id": id, "company_id": companyID})

	n, err := exec(ctx, q, b)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// dateScanner reads a DATE column into a dateutil.Date. It implements
// sql.Scanner so both pgx and pgxmock can fill it.
type dateScanner struct {
	dst *dateutil.Date
}

func scanDate(dst *dateutil.Date) *dateScanner {
	return &dateScanner{dst: dst}
}

func (s *dateScanner) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*s.dst = dateutil.FromTime(v)
	case string:
		d, err := dateutil.Parse(v)
		if err != nil {
			return err
		}
		*s.dst = d
	case nil:
		*s.dst = dateutil.Date{}
	default:
		return fmt.Errorf("cannot scan %T into date", src)
	}
	return nil
}
