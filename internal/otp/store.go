package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	codeLength = 6
	maxEntries = 10000
)

// Store keeps one-time login codes keyed by phone number. Entries expire on
// their own and are removed on first successful use, so a code can never be
// replayed.
type Store struct {
	cache *expirable.LRU[string, string]
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

// Generate creates a fresh 6-digit code for the phone, replacing any code
// still pending for it.
func (s *Store) Generate(phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	code := fmt.Sprintf("%0*d", codeLength, n.Int64())
	s.cache.Add(phone, code)
	return code, nil
}

// Consume validates and invalidates the code in one step.
func (s *Store) Consume(phone, code string) bool {
	stored, ok := s.cache.Get(phone)
	if !ok || stored != code {
		return false
	}
	s.cache.Remove(phone)
	return true
}
