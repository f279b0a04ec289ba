// Package discovery finds service modules and equality comparers in
// assemblies.
//
// A Scanner applies a Filter to each assembly. The DefaultFilter keeps only
// types that are concrete, exported, closed (no open type parameters) and
// constructible without arguments; entries that failed to load are skipped
// rather than failing the scan.
//
//	s := discovery.NewScanner(logger, nil)
//	modules, err := s.Modules(assemblies...)
//	n, err := s.Comparers(c, asm)
package discovery
