package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/guttosm/tradedesk/internal/schema"
)

// MemoryStore keeps collections in process memory. The zero value is not
// usable; call NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	schemas Schemas
	data    map[Collection][]schema.Record
	seq     int64
	now     func() time.Time
}

// NewMemoryStore returns an empty store accepting the given collections.
func NewMemoryStore(schemas Schemas) *MemoryStore {
	data := make(map[Collection][]schema.Record, len(schemas))
	for c := range schemas {
		data[c] = nil
	}
	return &MemoryStore{schemas: schemas, data: data, now: time.Now}
}

// List returns copies of the stored records; callers may mutate them.
func (m *MemoryStore) List(_ context.Context, c Collection) ([]schema.Record, error) {
	if _, err := m.schemas.entity(c); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.data[c]
	out := make([]schema.Record, len(src))
	for i, r := range src {
		out[i] = copyRecord(r)
	}
	return out, nil
}

// Append stamps each record with a sequence number and insertion time.
func (m *MemoryStore) Append(ctx context.Context, c Collection, recs []schema.Record) error {
	if _, err := m.schemas.entity(c); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	at := m.now().UTC()
	for _, r := range recs {
		m.seq++
		cp := copyRecord(r)
		cp[FieldSeq] = m.seq
		cp[FieldInsertedAt] = at
		m.data[c] = append(m.data[c], cp)
	}
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

func copyRecord(r schema.Record) schema.Record {
	out := make(schema.Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }
