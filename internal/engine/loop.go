// Package engine runs the generation loop: draw a user, build a session,
// convert some sessions into transactions against the inventory ledger,
// and stop once both targets are met or the iteration cap is hit.
//
// Parallelism never changes the output. Iteration i draws everything from
// its own seed-derived stream, so sessions can be built on any number of
// workers; the merge phase then walks iterations in index order and is the
// only place that touches shared state (the ledger and the result slices).
// A run with one worker and a run with sixteen produce identical bytes.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/shopstream/internal/catalog"
	"github.com/dvloznov/shopstream/internal/config"
	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/inventory"
	"github.com/dvloznov/shopstream/internal/rng"
)

// batchPerWorker sets how many iterations each worker speculatively builds
// per batch. Larger batches amortize synchronization; iterations built past
// the termination point are discarded.
const batchPerWorker = 256

// progressEvery controls how often the loop logs generation progress.
const progressEvery = 100000

// Dataset holds the five fully materialized collections, ordered and ready
// for the output sink. Products carry final (post-reservation) stock.
type Dataset struct {
	Categories   []dataset.Category
	Products     []dataset.Product
	Users        []dataset.User
	Sessions     []*dataset.Session
	Transactions []*dataset.Transaction
}

// Report describes how a run ended. TargetsMet=false means the iteration
// cap was hit first: the collections are still valid and complete as far as
// they go, but smaller than requested. Callers must surface that.
type Report struct {
	Sessions     int
	Transactions int
	Iterations   int
	TargetsMet   bool
}

// Loop orchestrates generation over an immutable catalog.
type Loop struct {
	cfg    config.Config
	cat    *catalog.Catalog
	ledger *inventory.Ledger
	log    zerolog.Logger
}

// NewLoop seeds the inventory ledger from the catalog and prepares a run.
func NewLoop(cfg config.Config, cat *catalog.Catalog, log zerolog.Logger) *Loop {
	return &Loop{
		cfg:    cfg,
		cat:    cat,
		ledger: inventory.NewLedger(cat.Products),
		log:    log,
	}
}

// Ledger exposes the loop's inventory ledger for read-only inspection.
func (l *Loop) Ledger() *inventory.Ledger {
	return l.ledger
}

// Run executes the generation loop. It returns the materialized dataset
// and a report; the only error paths are invalid configuration and context
// cancellation, everything else (stock exhaustion, cap hit) is a normal
// domain outcome captured in the report.
func (l *Loop) Run(ctx context.Context) (*Dataset, Report, error) {
	if err := l.cfg.Validate(); err != nil {
		return nil, Report{}, err
	}

	var (
		anchor     = l.cfg.Anchor()
		timespan   = time.Duration(l.cfg.TimespanDays) * 24 * time.Hour
		targetSess = l.cfg.NumSessions
		targetTxns = l.cfg.NumTransactions
		maxIter    = l.cfg.MaxIterations()
		batchSize  = l.cfg.Workers * batchPerWorker
	)

	sessions := make([]*dataset.Session, 0, targetSess)
	transactions := make([]*dataset.Transaction, 0, targetTxns)

	iterations := 0
	done := false
	for !done && iterations < maxIter {
		if err := ctx.Err(); err != nil {
			return nil, Report{}, err
		}

		n := batchSize
		if remaining := maxIter - iterations; n > remaining {
			n = remaining
		}
		draws := l.buildBatch(iterations, n, anchor, timespan)

		for k := 0; k < n; k++ {
			draw := draws[k]
			sessions = append(sessions, draw.session)

			if draw.session.ConversionStatus == dataset.StatusConverted && len(transactions) < targetTxns {
				if txn, ok := buildTransaction(draw, l.ledger); ok {
					transactions = append(transactions, txn)
				}
			}

			if len(sessions)%progressEvery == 0 {
				l.log.Info().
					Int("sessions", len(sessions)).
					Int("transactions", len(transactions)).
					Msg("generation progress")
			}

			if len(sessions) >= targetSess && len(transactions) >= targetTxns {
				iterations += k + 1
				done = true
				break
			}
		}
		if !done {
			iterations += n
		}
	}

	report := Report{
		Sessions:     len(sessions),
		Transactions: len(transactions),
		Iterations:   iterations,
		TargetsMet:   len(sessions) >= targetSess && len(transactions) >= targetTxns,
	}

	return &Dataset{
		Categories:   l.cat.Categories,
		Products:     l.ledger.FinalStock(l.cat.Products),
		Users:        l.cat.Users,
		Sessions:     sessions,
		Transactions: transactions,
	}, report, nil
}

// buildBatch fills draws[0..n) for iterations [start, start+n) in parallel.
// Each slot is written by exactly one worker and every draw comes from the
// iteration's own stream, so no synchronization beyond the WaitGroup is
// needed and the result is independent of scheduling.
func (l *Loop) buildBatch(start, n int, anchor time.Time, timespan time.Duration) []*sessionDraw {
	draws := make([]*sessionDraw, n)

	workers := l.cfg.Workers
	if workers > n {
		workers = n
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range indexes {
				iteration := start + k
				r := rng.New(l.cfg.Seed, rng.StreamSessionBase+uint64(iteration))
				user := l.cat.Users[r.IntN(len(l.cat.Users))]
				draws[k] = buildSession(user, l.cat, r, anchor, timespan)
			}
		}()
	}
	for k := 0; k < n; k++ {
		indexes <- k
	}
	close(indexes)
	wg.Wait()

	return draws
}
