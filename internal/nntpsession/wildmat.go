package nntpsession

import "path/filepath"

// matchGlob implements the small subset of NNTP wildmat this server
// supports: '*' and '?' glob wildcards via filepath.Match, which also
// accepts its own [...] character classes. Wildmat's leading '!' negation
// and comma-separated pattern lists are not supported.
func matchGlob(pattern, name string) (bool, error) {
	return filepath.Match(pattern, name)
}
