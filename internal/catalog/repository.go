package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/km-arc/go-bootstrap/framework/bootstrap"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/equality"
)

// ErrDuplicate is returned when an equal customer is already stored.
var ErrDuplicate = errors.New("catalog: duplicate customer")

// CustomerRepository stores customers, rejecting duplicates as decided by
// the registered Comparer[*Customer].
type CustomerRepository interface {
	Add(c *Customer) error
	Find(id int) (*Customer, bool)
	All() []*Customer
}

type memoryRepository struct {
	mu        sync.RWMutex
	cmp       equality.Comparer[*Customer]
	rules     []Rule
	buckets   map[int][]*Customer
	customers []*Customer
}

// NewMemoryRepository returns an in-memory CustomerRepository. Customers are
// bucketed by cmp.HashOf and deduplicated with cmp.Equals.
func NewMemoryRepository(cmp equality.Comparer[*Customer], rules ...Rule) CustomerRepository {
	return &memoryRepository{
		cmp:     cmp,
		rules:   rules,
		buckets: make(map[int][]*Customer),
	}
}

func (r *memoryRepository) Add(c *Customer) error {
	if c == nil {
		return errors.New("catalog: nil customer")
	}
	for _, rule := range r.rules {
		if err := rule.Check(c); err != nil {
			return fmt.Errorf("catalog: customer %d: %w", c.ID, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.cmp.HashOf(c)
	for _, existing := range r.buckets[h] {
		if r.cmp.Equals(existing, c) {
			return fmt.Errorf("%w: %d", ErrDuplicate, c.ID)
		}
	}
	r.buckets[h] = append(r.buckets[h], c)
	r.customers = append(r.customers, c)
	return nil
}

func (r *memoryRepository) Find(id int) (*Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (r *memoryRepository) All() []*Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Customer(nil), r.customers...)
}

// RepositoryModule binds CustomerRepository. The repository is built on
// first use, after bootstrap has registered comparers and rules.
type RepositoryModule struct{}

func (RepositoryModule) Register(c *container.Container) error {
	c.TrySingleton(container.KeyOf[CustomerRepository](), func(c *container.Container) any {
		return NewMemoryRepository(
			equality.MustResolve[*Customer](c),
			bootstrap.Implementations[Rule](c)...,
		)
	})
	return nil
}
