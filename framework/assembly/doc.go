// Package assembly describes the code libraries that discovery scans.
//
// Go cannot enumerate the types of a compiled package at runtime, so an
// Assembly is an explicit catalogue. Each entry is a Type descriptor that
// records what discovery needs to know: the reflect.Type, whether the type
// is abstract or an open generic definition, and its zero-argument
// constructor.
//
//	var Catalog = assembly.New("billing",
//	    assembly.Of[*InvoiceModule](),                       // constructor derived via reflect
//	    assembly.Constructed(NewMoneyComparer),              // explicit zero-argument constructor
//	    assembly.Of[*BaseModule](assembly.Abstract()),       // never instantiated
//	    assembly.Generic("example.com/billing", "Ledger", "T"), // open generic
//	)
//
// Entries declared with Broken, or a *LoadError returned from a Load
// function, model types that failed to load. Types reports them without
// discarding the rest of the catalogue.
package assembly
