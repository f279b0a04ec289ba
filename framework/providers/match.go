package providers

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/km-arc/go-bootstrap/framework/container"
)

// Match keeps the entries whose key matches any of the glob patterns.
// Keys are matched as slash-separated paths, so "**" spans package paths:
//
//	Match(entries, "equality.*/**")       // every comparer
//	Match(entries, "**/billing.*")        // everything from a billing package
//
// Empty patterns are ignored; with none left every entry is kept.
func Match(entries []container.Entry, patterns ...string) ([]container.Entry, error) {
	var globs []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, doublestar.ErrBadPattern
		}
		globs = append(globs, p)
	}
	if len(globs) == 0 {
		return entries, nil
	}

	out := make([]container.Entry, 0, len(entries))
	for _, e := range entries {
		for _, g := range globs {
			if doublestar.MatchUnvalidated(g, e.Key) {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}
