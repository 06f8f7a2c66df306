package contentindex

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bigbrotr/sitenav/internal/db"
)

// DefaultKeepRuns is how many index runs Sync retains.
const DefaultKeepRuns = 10

// Store persists scanned documents so later checks can skip the scan.
type Store struct {
	db       *sql.DB
	now      func() time.Time
	keepRuns int
	logger   *slog.Logger
}

func NewStore(database *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: database, now: time.Now, keepRuns: DefaultKeepRuns, logger: logger}
}

// Sync records a new run and replaces the stored document set in one
// transaction.
func (s *Store) Sync(ctx context.Context, contentDir string, docs []Document) (db.IndexRunRow, error) {
	runID, err := NewRunID(s.now())
	if err != nil {
		return db.IndexRunRow{}, err
	}
	run := db.IndexRunRow{ID: runID, ContentDir: contentDir, DocumentCount: len(docs)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return db.IndexRunRow{}, fmt.Errorf("begin index sync: %w", err)
	}
	defer tx.Rollback()

	q := db.NewQueries(tx)
	if err := q.InsertIndexRun(ctx, run); err != nil {
		return db.IndexRunRow{}, err
	}
	rows := make([]db.DocumentRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, db.DocumentRow{
			Slug:        doc.Slug,
			Path:        doc.Path,
			Title:       doc.Title,
			Draft:       doc.Draft,
			ContentHash: doc.Hash,
		})
	}
	if err := q.ReplaceDocuments(ctx, runID, rows); err != nil {
		return db.IndexRunRow{}, err
	}
	pruned, err := q.PruneIndexRuns(ctx, s.keepRuns)
	if err != nil {
		return db.IndexRunRow{}, err
	}
	if err := tx.Commit(); err != nil {
		return db.IndexRunRow{}, fmt.Errorf("commit index sync: %w", err)
	}

	s.logger.Info("content index synced", "run", runID, "documents", len(docs), "pruned_runs", pruned)
	return s.LatestRun(ctx)
}

func (s *Store) LatestRun(ctx context.Context) (db.IndexRunRow, error) {
	return db.NewQueries(s.db).LatestIndexRun(ctx)
}

// Documents returns every stored document, drafts included.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := db.NewQueries(s.db).ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, Document{
			Slug:  row.Slug,
			Path:  row.Path,
			Title: row.Title,
			Draft: row.Draft,
			Hash:  row.ContentHash,
		})
	}
	return out, nil
}

// Load builds an Index from the stored documents. It returns
// db.ErrNoIndexRun when nothing has been synced yet.
func (s *Store) Load(ctx context.Context, includeDrafts bool) (*Index, error) {
	if _, err := s.LatestRun(ctx); err != nil {
		return nil, err
	}
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(docs, includeDrafts), nil
}
