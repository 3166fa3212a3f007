// Package inventory owns per-product stock counters and exposes atomic
// check-and-decrement reservations. The raw counters are never exposed;
// callers see only Reserve and Peek.
package inventory

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/dvloznov/shopstream/internal/dataset"
)

const shardCount = 64

type shard struct {
	mu    sync.Mutex
	stock map[string]int
}

// Ledger tracks remaining stock per product. Synchronization is sharded by
// product id, so reservations against different products rarely contend.
type Ledger struct {
	shards [shardCount]shard
}

// NewLedger seeds a ledger from the catalog's initial stock levels.
func NewLedger(products []dataset.Product) *Ledger {
	l := &Ledger{}
	for i := range l.shards {
		l.shards[i].stock = make(map[string]int)
	}
	for _, p := range products {
		s := l.shardFor(p.ProductID)
		s.stock[p.ProductID] = p.CurrentStock
	}
	return l
}

func (l *Ledger) shardFor(productID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(productID))
	return &l.shards[h.Sum32()%shardCount]
}

// Reserve atomically decrements the product's stock by quantity if enough
// remains, returning true. Insufficient stock leaves the counter untouched
// and returns false; that is a normal outcome, not an error.
//
// A product id the ledger has never seen means a record was built against
// something outside the catalog. That cannot happen by construction, so it
// panics rather than being patched over.
func (l *Ledger) Reserve(productID string, quantity int) bool {
	if quantity < 1 {
		panic(fmt.Sprintf("inventory: reserve %q with non-positive quantity %d", productID, quantity))
	}

	s := l.shardFor(productID)
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.stock[productID]
	if !ok {
		panic(fmt.Sprintf("inventory: reserve unknown product %q", productID))
	}
	if current < quantity {
		return false
	}
	s.stock[productID] = current - quantity
	return true
}

// Peek returns the current stock for a product without touching it.
func (l *Ledger) Peek(productID string) (int, bool) {
	s := l.shardFor(productID)
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.stock[productID]
	return current, ok
}

// FinalStock copies the catalog's products with stock levels replaced by the
// ledger's current counters. Called once after generation to materialize the
// products collection for output.
func (l *Ledger) FinalStock(products []dataset.Product) []dataset.Product {
	out := make([]dataset.Product, len(products))
	for i, p := range products {
		stock, ok := l.Peek(p.ProductID)
		if !ok {
			panic(fmt.Sprintf("inventory: final stock for unknown product %q", p.ProductID))
		}
		p.CurrentStock = stock
		out[i] = p
	}
	return out
}
