package models

import (
	"sort"
	"strings"
)

// LinkReference is a metadata-only view of a compiled unit: the exported
// symbols another translation pass may resolve against. It never carries
// emitted code.
type LinkReference struct {
	Exports []string
}

// ReferenceSet is the set of qualified symbol references visible to
// cross-file lookups. Base-environment symbols are namespace-qualified
// ("playground.ui.ThemeProvider"); user components are exported unqualified.
// A ReferenceSet is never mutated after construction; derive new sets with
// Union or WithReference.
type ReferenceSet struct {
	symbols map[string]struct{}
}

// NewReferenceSet builds a set from qualified symbol names.
func NewReferenceSet(symbols ...string) *ReferenceSet {
	set := &ReferenceSet{symbols: make(map[string]struct{}, len(symbols))}
	for _, s := range symbols {
		set.symbols[s] = struct{}{}
	}
	return set
}

// Union returns a new set containing the symbols of both sets.
func (rs *ReferenceSet) Union(other *ReferenceSet) *ReferenceSet {
	merged := &ReferenceSet{symbols: make(map[string]struct{}, len(rs.symbols)+other.Len())}
	for s := range rs.symbols {
		merged.symbols[s] = struct{}{}
	}
	if other != nil {
		for s := range other.symbols {
			merged.symbols[s] = struct{}{}
		}
	}
	return merged
}

// WithReference returns a new set extended with a link reference's exports.
func (rs *ReferenceSet) WithReference(ref *LinkReference) *ReferenceSet {
	if ref == nil {
		return rs
	}
	return rs.Union(NewReferenceSet(ref.Exports...))
}

// Contains reports whether the exact qualified symbol is present.
func (rs *ReferenceSet) Contains(qualified string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.symbols[qualified]
	return ok
}

// Resolve looks up a tag name against the set. Dotted names are treated as
// fully qualified; bare names are tried as-is first, then against each
// imported namespace in order. Returns the qualified symbol on success.
func (rs *ReferenceSet) Resolve(name string, imports []string) (string, bool) {
	if rs == nil {
		return "", false
	}
	if strings.Contains(name, ".") {
		_, ok := rs.symbols[name]
		return name, ok
	}
	if _, ok := rs.symbols[name]; ok {
		return name, true
	}
	for _, ns := range imports {
		qualified := ns + "." + name
		if _, ok := rs.symbols[qualified]; ok {
			return qualified, true
		}
	}
	return "", false
}

// ContainsLeaf reports whether any namespaced symbol ends in the given bare
// name. Used by the linker to flag user exports that shadow library symbols.
func (rs *ReferenceSet) ContainsLeaf(name string) bool {
	if rs == nil {
		return false
	}
	suffix := "." + name
	for s := range rs.symbols {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// Symbols returns the qualified symbols in sorted order.
func (rs *ReferenceSet) Symbols() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, 0, len(rs.symbols))
	for s := range rs.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of symbols in the set.
func (rs *ReferenceSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.symbols)
}
