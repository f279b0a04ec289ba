package catalog

import (
	"fmt"

	"github.com/km-arc/go-bootstrap/framework/validation"
)

// Rule checks a customer before it is stored. Rules are discovered by the
// capability pass and applied by the repository in key order.
type Rule interface {
	Check(c *Customer) error
}

// NameRequired rejects customers without a name.
type NameRequired struct{}

func (NameRequired) Check(c *Customer) error {
	return validation.Make(map[string]string{"name": c.Name}, validation.Rules{
		"name": "required",
	}).Err()
}

// EmailFormat rejects malformed email addresses. An empty address is allowed.
type EmailFormat struct{}

func (*EmailFormat) Check(c *Customer) error {
	return validation.Make(map[string]string{"email": c.Email}, validation.Rules{
		"email": `nullable|regex:^[^@\s]+@[^@\s]+\.[^@\s]+$`,
	}).Err()
}

// PositiveID rejects zero and negative IDs.
type PositiveID struct{}

func (PositiveID) Check(c *Customer) error {
	if c.ID <= 0 {
		return fmt.Errorf("catalog: id must be positive, got %d", c.ID)
	}
	return nil
}
