package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/guttosm/tradedesk/internal/schema"
)

// Document is the gorm model behind SQLiteStore.
type Document struct {
	ID         uint      `gorm:"primaryKey"`
	Collection string    `gorm:"index;not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

func (Document) TableName() string { return "documents" }

// SQLiteStore keeps JSON documents in a SQLite file (or ":memory:").
type SQLiteStore struct {
	db    *gorm.DB
	sqlDB *sql.DB
	codec documentCodec
}

// NewSQLiteStore opens dsn and migrates the documents table.
func NewSQLiteStore(dsn string, schemas Schemas, v *schema.Validator) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// ":memory:" databases are per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Document{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to auto-migrate documents: %w", err)
	}
	return &SQLiteStore{db: db, sqlDB: sqlDB, codec: documentCodec{schemas: schemas, validator: v}}, nil
}

func (s *SQLiteStore) List(ctx context.Context, c Collection) ([]schema.Record, error) {
	if _, err := s.codec.schemas.entity(c); err != nil {
		return nil, err
	}
	var docs []Document
	if err := s.db.WithContext(ctx).Where("collection = ?", string(c)).Order("id").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	out := make([]schema.Record, 0, len(docs))
	for _, d := range docs {
		rec, err := s.codec.decode(c, []byte(d.Body))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *SQLiteStore) Append(ctx context.Context, c Collection, recs []schema.Record) error {
	if _, err := s.codec.schemas.entity(c); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	docs := make([]Document, len(recs))
	for i, r := range recs {
		b, err := s.codec.encode(r)
		if err != nil {
			return err
		}
		docs[i] = Document{Collection: string(c), Body: string(b)}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&docs, 100).Error
	})
}

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.sqlDB.PingContext(ctx) }

func (s *SQLiteStore) Close() error { return s.sqlDB.Close() }
