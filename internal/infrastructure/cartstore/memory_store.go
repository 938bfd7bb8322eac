package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
)

var _ sales.CartStore = (*MemoryStore)(nil)

type memEntry struct {
	state     pos.State
	expiresAt time.Time
}

// MemoryStore carritos en memoria del proceso. Sirve sin Redis (una sola instancia) y en tests.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]memEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore ttl <= 0 = sin expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{carts: make(map[string]memEntry), ttl: ttl, now: time.Now}
}

// Load devuelve una copia del carrito guardado.
func (s *MemoryStore) Load(_ context.Context, key string) (pos.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[key]
	if !ok {
		return pos.State{}, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.carts, key)
		return pos.State{}, false, nil
	}
	return copyState(e.state), true, nil
}

// Save reemplaza el carrito de la sesión.
func (s *MemoryStore) Save(_ context.Context, key string, st pos.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memEntry{state: copyState(st)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.carts[key] = e
	return nil
}

// Delete elimina el carrito. No falla si no existe.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
	return nil
}

func copyState(st pos.State) pos.State {
	out := pos.State{Status: st.Status, Items: append([]pos.LineItem(nil), st.Items...), TaxRate: st.TaxRate}
	if st.Customer != nil {
		c := *st.Customer
		out.Customer = &c
	}
	return out
}
