package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"storefront/internal/types"
)

// Store keeps carts in memory; a cart untouched for the TTL is forgotten.
type Store struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, Cart]
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: ttlcache.New[string, Cart](ttlcache.WithTTL[string, Cart](ttl)),
	}
}

// Start runs expiry cleanup until Stop is called
func (s *Store) Start() {
	go s.cache.Start()
}

func (s *Store) Stop() {
	s.cache.Stop()
}

func (s *Store) Create(c Cart) string {
	id := uuid.NewString()
	s.cache.Set(id, c, ttlcache.DefaultTTL)
	return id
}

func (s *Store) Get(id string) (Cart, bool) {
	item := s.cache.Get(id)
	if item == nil {
		return Cart{}, false
	}

	return item.Value(), true
}

// Update applies fn to the stored cart; updates of one store are serialized
func (s *Store) Update(id string, fn func(Cart) (Cart, error)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.Get(id)
	if !ok {
		return Cart{}, ErrUnknownCart
	}

	c, err := fn(c)
	if err != nil {
		return Cart{}, err
	}

	s.cache.Set(id, c, ttlcache.DefaultTTL)
	return c, nil
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}

// Sample is the demo cart the storefront shows: two copies of book 1 and one of book 3.
// Books missing from lookup are skipped.
func Sample(lookup func(id string) (types.Book, bool)) Cart {
	var c Cart
	for _, l := range []struct {
		id  string
		qty int
	}{{"1", 2}, {"3", 1}} {
		if b, ok := lookup(l.id); ok {
			c, _ = c.Add(b, l.qty)
		}
	}

	return c
}
