package catalog

import (
	"hash/fnv"
	"strings"
)

// Customer is compared by ID through CustomerComparer.
type Customer struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Product has no registered comparer; lookups fall back to the default
// comparer, which compares *Product by identity.
type Product struct {
	SKU   SKU    `json:"sku" yaml:"sku"`
	Name  string `json:"name" yaml:"name"`
	Price int64  `json:"price" yaml:"price"` // minor units
}

// SKU is a stock keeping unit. SKUs compare case-insensitively.
type SKU string

func (s SKU) Equal(other SKU) bool { return strings.EqualFold(string(s), string(other)) }

func (s SKU) Hash() int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToUpper(string(s))))
	return int(h.Sum64())
}

// CustomerComparer treats customers with the same ID as equal.
type CustomerComparer struct{}

func (CustomerComparer) Equals(a, b *Customer) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func (CustomerComparer) HashOf(c *Customer) int {
	if c == nil {
		return 0
	}
	return c.ID
}

// Page is a generic result page. Only instantiations can be constructed, so
// the catalogue lists the open definition and discovery skips it.
type Page[T any] struct {
	Items []T `json:"items" yaml:"items"`
	Next  int `json:"next,omitempty" yaml:"next,omitempty"`
}
