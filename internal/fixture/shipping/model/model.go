// Package model holds shipping records. It shares its package name with
// billing/model.
package model

import "strings"

// Customer is a delivery recipient.
type Customer struct{ Code string }

// CustomerComparer matches recipients by code, ignoring case.
type CustomerComparer struct{}

func (CustomerComparer) Equals(a, b *Customer) bool {
	if a == nil || b == nil {
		return a == b
	}
	return strings.EqualFold(a.Code, b.Code)
}

func (CustomerComparer) HashOf(a *Customer) int {
	if a == nil {
		return 0
	}
	return len(a.Code)
}
