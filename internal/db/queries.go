package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db queryer
}

var ErrNoIndexRun = errors.New("content index has not been synced")

func NewQueries(db queryer) *Queries {
	return &Queries{db: db}
}

func (q *Queries) InsertIndexRun(ctx context.Context, in IndexRunRow) error {
	if _, err := q.db.ExecContext(ctx, `INSERT INTO index_runs(id, content_dir, document_count) VALUES(?, ?, ?)`, in.ID, in.ContentDir, in.DocumentCount); err != nil {
		return fmt.Errorf("insert index run: %w", err)
	}
	return nil
}

// LatestIndexRun relies on run IDs sorting by creation time.
func (q *Queries) LatestIndexRun(ctx context.Context) (IndexRunRow, error) {
	var out IndexRunRow
	err := q.db.QueryRowContext(ctx, `SELECT id, content_dir, document_count, created_at FROM index_runs ORDER BY id DESC LIMIT 1`).
		Scan(&out.ID, &out.ContentDir, &out.DocumentCount, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, ErrNoIndexRun
		}
		return out, fmt.Errorf("get latest index run: %w", err)
	}
	return out, nil
}

// ReplaceDocuments swaps the whole document set for the rows of one run.
// Callers run it inside a transaction.
func (q *Queries) ReplaceDocuments(ctx context.Context, runID string, rows []DocumentRow) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	for _, row := range rows {
		draft := 0
		if row.Draft {
			draft = 1
		}
		if _, err := q.db.ExecContext(ctx, `INSERT INTO documents(slug, path, title, draft, content_hash, run_id) VALUES(?, ?, ?, ?, ?, ?)`,
			row.Slug, row.Path, row.Title, draft, row.ContentHash, runID); err != nil {
			return fmt.Errorf("insert document %q: %w", row.Slug, err)
		}
	}
	return nil
}

func (q *Queries) ListDocuments(ctx context.Context) ([]DocumentRow, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT slug, path, title, draft, content_hash, run_id, indexed_at FROM documents ORDER BY slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []DocumentRow{}
	for rows.Next() {
		var row DocumentRow
		var draft int
		if err := rows.Scan(&row.Slug, &row.Path, &row.Title, &draft, &row.ContentHash, &row.RunID, &row.IndexedAt); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		row.Draft = draft == 1
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return out, nil
}

// PruneIndexRuns keeps the newest keep runs. Rows in documents cascade with
// their run, so keep is never less than one.
func (q *Queries) PruneIndexRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := q.db.ExecContext(ctx, `DELETE FROM index_runs WHERE id NOT IN (SELECT id FROM index_runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune index runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune index runs rows affected: %w", err)
	}
	return n, nil
}
