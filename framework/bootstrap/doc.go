// Package bootstrap is the composition root of discovery.
//
// The default Orchestrator runs two fixed phases over the given assemblies:
//
//  1. every discovered service module registers its services, once;
//  2. every discovered equality comparer is registered as a singleton,
//     without replacing existing registrations.
//
// Orchestrators compose. A Decorator wraps one orchestrator in another, and
// Before / After attach extra passes:
//
//	o := bootstrap.Chain(bootstrap.New(logger),
//	    bootstrap.After(bootstrap.Capabilities[Validator](scanner)),
//	    bootstrap.After(bootstrap.Require(container.KeyOf[Clock]())),
//	)
//	if err := o.RegisterServices(c, billing.Assembly, shipping.Assembly); err != nil {
//	    log.Fatal(err)
//	}
//
// Bootstrap is synchronous and meant to run once, before the container is
// shared with other goroutines.
package bootstrap
