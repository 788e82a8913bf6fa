package storage

import (
	"context"
	"database/sql"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/guttosm/tradedesk/internal/schema"
)

// PostgresStore keeps every record as a jsonb document in a single
// documents table (see db/migrations). Reads re-validate each body.
type PostgresStore struct {
	db    *sql.DB
	codec documentCodec
}

// NewPostgresStore wraps an open *sql.DB. The documents table must exist.
func NewPostgresStore(db *sql.DB, schemas Schemas, v *schema.Validator) *PostgresStore {
	return &PostgresStore{db: db, codec: documentCodec{schemas: schemas, validator: v}}
}

// List reads the collection ordered by insertion id.
func (s *PostgresStore) List(ctx context.Context, c Collection) ([]schema.Record, error) {
	if _, err := s.codec.schemas.entity(c); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM documents WHERE collection = $1 ORDER BY id`, string(c))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	defer rows.Close()

	out := []schema.Record{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("list %s: %w", c, err)
		}
		rec, err := s.codec.decode(c, body)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	return out, nil
}

// Append copies all records in one transaction using COPY FROM STDIN.
func (s *PostgresStore) Append(ctx context.Context, c Collection, recs []schema.Record) error {
	if _, err := s.codec.schemas.entity(c); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	bodies := make([]string, len(recs))
	for i, r := range recs {
		b, err := s.codec.encode(r)
		if err != nil {
			return err
		}
		bodies[i] = string(b)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("documents", "collection", "body"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, body := range bodies {
		if _, err := stmt.ExecContext(ctx, string(c), body); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *PostgresStore) Close() error { return s.db.Close() }
