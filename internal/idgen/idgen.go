// Package idgen produces the externally visible identifiers used across
// accounts, transactions, cards and loans. Generation is behind an
// interface so callers can inject a deterministic implementation in tests
// instead of reaching for a global random source.
package idgen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces candidate identifiers. Callers are responsible for
// collision-checking candidates against their store.
type Generator interface {
	AccountNumber() string
	TransactionID() string
	CardNumber() string
	CVV() string
	CardExpiry() string
	LoanNumber() string
}

type randomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator backed by its own seeded random source.
func New() Generator {
	return &randomGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AccountNumber returns ACC followed by 9 random digits.
func (g *randomGenerator) AccountNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("ACC%09d", g.rng.Intn(1_000_000_000))
}

// TransactionID returns TXN followed by 12 uppercase hex digits drawn
// from the first six bytes of a fresh UUID.
func (g *randomGenerator) TransactionID() string {
	u := uuid.New()
	var v uint64
	for _, b := range u[:6] {
		v = v<<8 | uint64(b)
	}
	return fmt.Sprintf("TXN%012X", v)
}

// CardNumber returns a 16 digit card number.
func (g *randomGenerator) CardNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("4%03d%04d%04d%04d",
		g.rng.Intn(1000), g.rng.Intn(10000), g.rng.Intn(10000), g.rng.Intn(10000))
}

// CVV returns a 3 digit card verification value.
func (g *randomGenerator) CVV() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%03d", g.rng.Intn(1000))
}

// CardExpiry returns an MM/YYYY expiry three years out.
func (g *randomGenerator) CardExpiry() string {
	expiry := time.Now().AddDate(3, 0, 0)
	return expiry.Format("01/2006")
}

// LoanNumber returns LN followed by 10 random digits.
func (g *randomGenerator) LoanNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("LN%010d", g.rng.Int63n(10_000_000_000))
}

type sequentialGenerator struct {
	mu   sync.Mutex
	next uint64
}

// NewSequential returns a deterministic Generator for tests. Identifiers
// are produced from an incrementing counter starting at 1.
func NewSequential() Generator {
	return &sequentialGenerator{}
}

func (g *sequentialGenerator) bump() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}

func (g *sequentialGenerator) AccountNumber() string {
	return fmt.Sprintf("ACC%09d", g.bump())
}

func (g *sequentialGenerator) TransactionID() string {
	return fmt.Sprintf("TXN%012X", g.bump())
}

func (g *sequentialGenerator) CardNumber() string {
	return fmt.Sprintf("4%015d", g.bump())
}

func (g *sequentialGenerator) CVV() string {
	return fmt.Sprintf("%03d", g.bump()%1000)
}

func (g *sequentialGenerator) CardExpiry() string {
	return time.Now().AddDate(3, 0, 0).Format("01/2006")
}

func (g *sequentialGenerator) LoanNumber() string {
	return fmt.Sprintf("LN%010d", g.bump())
}
