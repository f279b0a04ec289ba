// Package providers holds the framework's built-in service modules.
//
// They are ordinary discovery.ServiceModule types listed in Assembly, so the
// orchestrator discovers them like any application module:
//
//	err := bootstrap.New(logger).RegisterServices(c, providers.Assembly, billing.Assembly)
//
// Every module registers with Try* calls; anything bound before bootstrap
// (a test configuration, a custom logger) is left in place.
package providers
