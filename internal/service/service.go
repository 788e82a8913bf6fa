// Package service holds the user and trade use cases on top of a Store.
package service

import (
	"context"
	"fmt"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/schema"
	"github.com/guttosm/tradedesk/internal/storage"
)

// UserService answers user lookups.
type UserService interface {
	// GetUser returns every user whose id equals id. The list may be empty.
	GetUser(ctx context.Context, id int64) ([]schema.Record, error)
}

// TradeService lists and appends trades.
type TradeService interface {
	ListTrades(ctx context.Context, offset, limit int64) ([]schema.Record, error)
	// AddTrades validates raw (a list of trades) as a batch. Nothing is
	// appended unless every item is valid. On success it returns the full
	// trade list, new trades last.
	AddTrades(ctx context.Context, raw any) ([]schema.Record, error)
}

type userService struct {
	store storage.Store
}

func NewUserService(store storage.Store) UserService {
	return &userService{store: store}
}

func (s *userService) GetUser(ctx context.Context, id int64) ([]schema.Record, error) {
	users, err := s.store.List(ctx, storage.Users)
	if err != nil {
		return nil, err
	}
	out := []schema.Record{}
	for _, u := range users {
		if v, ok := u["id"].(int64); ok && v == id {
			out = append(out, u)
		}
	}
	return out, nil
}

type tradeService struct {
	store     storage.Store
	catalog   *models.Catalog
	validator *schema.Validator
}

func NewTradeService(store storage.Store, catalog *models.Catalog, v *schema.Validator) TradeService {
	return &tradeService{store: store, catalog: catalog, validator: v}
}

func (s *tradeService) ListTrades(ctx context.Context, offset, limit int64) ([]schema.Record, error) {
	trades, err := s.store.List(ctx, storage.Trades)
	if err != nil {
		return nil, err
	}
	return Paginate(trades, offset, limit), nil
}

func (s *tradeService) AddTrades(ctx context.Context, raw any) ([]schema.Record, error) {
	batch, err := s.validator.ValidateBatch(s.catalog.Trade, raw)
	if err != nil {
		return nil, err
	}
	if !batch.Valid() {
		return nil, &BatchError{Items: batch}
	}
	if err := s.store.Append(ctx, storage.Trades, batch.Records()); err != nil {
		return nil, fmt.Errorf("append trades: %w", err)
	}
	return s.store.List(ctx, storage.Trades)
}

// BatchError reports a rejected batch item by item.
type BatchError struct {
	Items schema.Batch
}

func (e *BatchError) Error() string {
	bad := 0
	for _, it := range e.Items {
		if !it.Valid() {
			bad++
		}
	}
	return fmt.Sprintf("%d of %d item(s) invalid: %v", bad, len(e.Items), e.Items.Err())
}

// Unwrap exposes the flattened schema.FieldErrors.
func (e *BatchError) Unwrap() error { return e.Items.Err() }

// Paginate returns items[offset:][:limit] with slice semantics where a
// negative index counts from the end and out-of-range indices truncate.
// The result never aliases beyond len(items) and is never nil.
func Paginate[T any](items []T, offset, limit int64) []T {
	rest := items[clampIndex(offset, len(items)):]
	page := rest[:clampIndex(limit, len(rest))]
	out := make([]T, len(page))
	copy(out, page)
	return out
}

func clampIndex(i int64, n int) int {
	if i < 0 {
		i += int64(n)
		if i < 0 {
			return 0
		}
	}
	if i > int64(n) {
		return n
	}
	return int(i)
}
