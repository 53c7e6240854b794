// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface for running the API without a MongoDB cluster.
//
// Each student is one row: the ObjectID hex as primary key and the rest of
// the document as JSON text. Identifiers are generated the same way the
// MongoDB driver does, so ordering by id is ordering by creation time.
//
// The blank import registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/types"
	_ "github.com/mattn/go-sqlite3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SQLite is a storage.Storage backed by a single database file.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the database at cfg.Storage.Path, creating the parent
// directory and the students table when missing.
func New(cfg *config.Config) (*SQLite, error) {
	path := cfg.Storage.Path
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	// One connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id  TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func decodeRow(id, doc string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	rec[types.IDKey] = types.StringValue(id)
	return rec, nil
}

func encodeDoc(rec types.Record) (string, error) {
	b, err := json.Marshal(rec.Without(types.IDKey))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SQLite) ListStudents(ctx context.Context, skip, limit int64) ([]types.Record, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, doc FROM students ORDER BY id DESC LIMIT ? OFFSET ?",
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	records := make([]types.Record, 0)
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}
		rec, err := decodeRow(id, doc)
		if err != nil {
			return nil, fmt.Errorf("ListStudents: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}
	return records, nil
}

// CountStudents is exact here; SQLite has no cheaper estimate.
func (s *SQLite) CountStudents(ctx context.Context) (int64, error) {
	var n int64
	if err := s.Db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, fmt.Errorf("CountStudents: %w", err)
	}
	return n, nil
}

func (s *SQLite) GetStudentByID(ctx context.Context, id primitive.ObjectID) (types.Record, error) {
	var doc string
	err := s.Db.QueryRowContext(ctx,
		"SELECT doc FROM students WHERE id = ? LIMIT 1", id.Hex(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetStudentByID: scan: %w", err)
	}
	return decodeRow(id.Hex(), doc)
}

func (s *SQLite) CreateStudent(ctx context.Context, record types.Record) (types.InsertResult, error) {
	doc, err := encodeDoc(record)
	if err != nil {
		return types.InsertResult{}, fmt.Errorf("CreateStudent: encode: %w", err)
	}

	id := primitive.NewObjectID()
	if _, err := s.Db.ExecContext(ctx,
		"INSERT INTO students (id, doc) VALUES (?, ?)", id.Hex(), doc,
	); err != nil {
		return types.InsertResult{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}
	return types.InsertResult{ID: id, Acknowledged: true}, nil
}

// UpdateStudentByID merges patch into the stored document inside a
// transaction so concurrent patches to the same record do not interleave.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id primitive.ObjectID, patch types.Record) (types.UpdateResult, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: begin: %w", err)
	}
	defer tx.Rollback()

	var doc string
	err = tx.QueryRowContext(ctx, "SELECT doc FROM students WHERE id = ?", id.Hex()).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return types.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: select: %w", err)
	}

	current, err := decodeRow(id.Hex(), doc)
	if err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	merged, changed := current.Merge(patch.Without(types.IDKey))
	result := types.UpdateResult{MatchedCount: 1, Acknowledged: true}
	if !changed {
		return result, nil
	}

	newDoc, err := encodeDoc(merged)
	if err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: encode: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE students SET doc = ? WHERE id = ?", newDoc, id.Hex(),
	); err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: commit: %w", err)
	}

	result.ModifiedCount = 1
	return result, nil
}

func (s *SQLite) DeleteStudentByID(ctx context.Context, id primitive.ObjectID) (types.DeleteResult, error) {
	res, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id.Hex())
	if err != nil {
		return types.DeleteResult{}, fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.DeleteResult{}, fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	return types.DeleteResult{DeletedCount: n, Acknowledged: true}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close(_ context.Context) error {
	return s.Db.Close()
}
