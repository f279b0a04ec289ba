// Package model holds billing records used to check that types sharing a
// package name with shipping/model stay distinct in the container.
package model

// Customer is a billing account.
type Customer struct{ Code string }

// CustomerComparer matches customers by exact account code.
type CustomerComparer struct{}

func (CustomerComparer) Equals(a, b *Customer) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Code == b.Code
}

func (CustomerComparer) HashOf(a *Customer) int {
	if a == nil {
		return 0
	}
	return len(a.Code)
}
