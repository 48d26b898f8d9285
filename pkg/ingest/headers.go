package ingest

import "github.com/lecturia/bookgraph/pkg/normalizers"

// HeaderIndex maps normalized header names to the original header strings.
// When two originals normalize to the same key, the later one wins; that
// ambiguity is accepted, not an error.
type HeaderIndex map[string]string

// NormalizeHeader canonicalizes a raw column name so header matching is
// casing- and whitespace-independent.
func NormalizeHeader(raw string) string {
	return normalizers.ApplyChain(raw, "strip_bom", "trim", "lowercase", "remove_whitespace")
}

// IndexHeaders builds the normalized -> original mapping for a header row.
func IndexHeaders(raw []string) HeaderIndex {
	index := make(HeaderIndex, len(raw))
	for _, h := range raw {
		index[NormalizeHeader(h)] = h
	}
	return index
}

// Contains reports whether a normalized header is present.
func (h HeaderIndex) Contains(name string) bool {
	_, ok := h[name]
	return ok
}

// ContainsAll reports whether every normalized header in names is present.
func (h HeaderIndex) ContainsAll(names []string) bool {
	for _, name := range names {
		if !h.Contains(name) {
			return false
		}
	}
	return true
}

// FindAny returns the first alias present in the index, in alias order.
func (h HeaderIndex) FindAny(aliases []string) (string, bool) {
	for _, alias := range aliases {
		if h.Contains(alias) {
			return alias, true
		}
	}
	return "", false
}
