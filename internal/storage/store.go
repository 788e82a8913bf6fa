// Package storage keeps validated records per collection.
//
// Three backends share one contract: an in-process MemoryStore (default),
// a PostgresStore holding JSON documents, and a SQLiteStore built on gorm.
// Records handed to Append are expected to be validated already; stores
// never reshape them.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/schema"
)

// Collection names a list of records of one entity.
type Collection string

const (
	Users  Collection = "users"
	Trades Collection = "trades"
)

// Bookkeeping fields stamped by MemoryStore. They are not part of any
// entity, so the response enforcer drops them.
const (
	FieldSeq        = "_seq"
	FieldInsertedAt = "_inserted_at"
)

// ErrUnknownCollection is returned for any collection without a schema.
var ErrUnknownCollection = errors.New("storage: unknown collection")

// Store is the contract used by services and the seeder.
type Store interface {
	// List returns a snapshot of the collection in insertion order.
	List(ctx context.Context, c Collection) ([]schema.Record, error)
	// Append adds records at the end of the collection, atomically.
	Append(ctx context.Context, c Collection, recs []schema.Record) error
	Ping(ctx context.Context) error
	Close() error
}

// Schemas maps each collection to the entity its records conform to.
type Schemas map[Collection]*schema.EntitySchema

// CatalogSchemas wires the catalog entities to their collections.
func CatalogSchemas(c *models.Catalog) Schemas {
	return Schemas{Users: c.User, Trades: c.Trade}
}

func (s Schemas) entity(c Collection) (*schema.EntitySchema, error) {
	e, ok := s[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return e, nil
}

// documentCodec turns records into JSON documents and back. Decoding goes
// through the validator so typed values (datetimes, enum members, int64)
// are restored exactly as they were before encoding.
type documentCodec struct {
	schemas   Schemas
	validator *schema.Validator
}

func (d documentCodec) encode(rec schema.Record) ([]byte, error) {
	b, err := schema.EncodeJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

func (d documentCodec) decode(c Collection, body []byte) (schema.Record, error) {
	entity, err := d.schemas.entity(c)
	if err != nil {
		return nil, err
	}
	raw, err := schema.DecodeJSON(bytesReader(body))
	if err != nil {
		return nil, err
	}
	rec, err := d.validator.Validate(entity, raw)
	if err != nil {
		return nil, fmt.Errorf("stored %s document no longer valid: %w", c, err)
	}
	return rec, nil
}
