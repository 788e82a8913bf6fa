package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/schema"
	"github.com/guttosm/tradedesk/internal/storage"
)

// ErrRejectedFixtures is returned in strict mode when any item is invalid.
var ErrRejectedFixtures = errors.New("fixtures rejected")

// Options tunes Seed.
type Options struct {
	// Strict aborts the whole seed, appending nothing, if any item is invalid.
	Strict bool
}

// CollectionReport summarizes the seeding of one collection.
type CollectionReport struct {
	Collection storage.Collection
	Accepted   int
	Rejected   int
	Items      schema.Batch
}

// Report lists one entry per collection, users first.
type Report []CollectionReport

// Rejected counts invalid items across collections.
func (r Report) Rejected() int {
	n := 0
	for _, c := range r {
		n += c.Rejected
	}
	return n
}

type seedJob struct {
	collection storage.Collection
	entity     *schema.EntitySchema
	raw        []any
}

// Seed validates fixtures and appends the valid records to store.
//
// Parameters:
//   - ctx: cancellation for the store writes.
//   - store: destination.
//   - cat: entity schemas.
//   - v: validator (its coercion mode applies to fixture values).
//   - fx: raw fixtures, see LoadFixtures.
//   - opts: see Options.
//
// Behavior:
//   - Each collection is validated as a batch, collections concurrently.
//   - Invalid items are logged with their index and error paths and skipped.
//   - In strict mode any invalid item fails the seed before anything is written.
//
// Returns:
//   - Report: per-collection counts and item outcomes.
//   - error: store failure, or ErrRejectedFixtures in strict mode.
func Seed(ctx context.Context, store storage.Store, cat *models.Catalog, v *schema.Validator, fx *Fixtures, opts Options) (Report, error) {
	start := time.Now()
	jobs := []seedJob{
		{collection: storage.Users, entity: cat.User, raw: fx.Users},
		{collection: storage.Trades, entity: cat.Trade, raw: fx.Trades},
	}
	report := make(Report, len(jobs))

	var g errgroup.Group
	for i, job := range jobs {
		g.Go(func() error {
			raw := job.raw
			if raw == nil {
				raw = []any{}
			}
			batch, err := v.ValidateBatch(job.entity, raw)
			if err != nil {
				return fmt.Errorf("%s: %w", job.collection, err)
			}
			rep := CollectionReport{Collection: job.collection, Items: batch}
			for _, it := range batch {
				if it.Valid() {
					rep.Accepted++
					continue
				}
				rep.Rejected++
				for _, fe := range it.Errors {
					logger.L().Warn().
						Str("collection", string(job.collection)).
						Int("index", it.Index).
						Str("path", fe.Path).
						Str("kind", string(fe.Kind)).
						Str("detail", fe.Detail).
						Msg("seed_item_rejected")
				}
			}
			report[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Strict && report.Rejected() > 0 {
		return report, fmt.Errorf("%w: %d invalid item(s)", ErrRejectedFixtures, report.Rejected())
	}

	wg, wctx := errgroup.WithContext(ctx)
	for _, rep := range report {
		wg.Go(func() error {
			if err := store.Append(wctx, rep.Collection, rep.Items.Records()); err != nil {
				return fmt.Errorf("append %s: %w", rep.Collection, err)
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		logger.L().Error().Err(err).Msg("seed_failed")
		return report, err
	}

	for _, rep := range report {
		logger.L().Info().
			Str("collection", string(rep.Collection)).
			Int("accepted", rep.Accepted).
			Int("rejected", rep.Rejected).
			Dur("elapsed", time.Since(start)).
			Msg("seed_done")
	}
	return report, nil
}
