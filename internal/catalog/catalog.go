// Package catalog is a small customer/product domain used by the CLI and the
// integration tests to exercise discovery end to end.
package catalog

import (
	"reflect"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/bootstrap"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/discovery"
)

// Assembly lists the catalogue's types. Interfaces, the open Page definition
// and unexported helpers are listed too; the default filter skips them.
var Assembly = assembly.New("catalog",
	assembly.Of[RepositoryModule](),
	assembly.Of[CustomerComparer](),
	assembly.Of[NameRequired](),
	assembly.Of[*EmailFormat](),
	assembly.Of[PositiveID](),
	assembly.Of[*Customer](),
	assembly.Of[*Product](),
	assembly.Of[SKU](),
	assembly.Of[CustomerRepository](),
	assembly.Of[Rule](),
	assembly.Generic(reflect.TypeFor[Customer]().PkgPath(), "Page", "T"),
	assembly.Of[*memoryRepository](),
)

// Passes returns the extra bootstrap passes the catalogue relies on: rule
// discovery, and a check that the repository ended up bound.
func Passes(scanner *discovery.Scanner) []bootstrap.Decorator {
	return []bootstrap.Decorator{
		bootstrap.After(bootstrap.Capabilities[Rule](scanner)),
		bootstrap.After(bootstrap.Require(container.KeyOf[CustomerRepository]())),
	}
}
