package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Validate walks the arenas owned by t checking structural invariants.
// Returns nil if everything is consistent; otherwise aggregates all issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := range t.Scopes.data {
		scopeID, err := toScopeID(t.Scopes.offset, idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("%s has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("%s has invalid parent %s", scopeID, scope.Parent))
				continue
			}
			if t.Scopes.Owns(scope.Parent) && !slices.Contains(parent.Children, scopeID) {
				errs = append(errs, fmt.Errorf("%s parent %s missing backlink", scopeID, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			c := t.Scopes.Get(child)
			if c == nil || child == scopeID {
				errs = append(errs, fmt.Errorf("%s has invalid child %s", scopeID, child))
			}
		}

		covered := 0
		for name, bucket := range scope.NameIndex {
			for _, id := range bucket {
				if !slices.Contains(scope.Symbols, id) {
					errs = append(errs, fmt.Errorf("%s name index %q references missing %s", scopeID, name, id))
					continue
				}
				covered++
			}
		}
		if covered != len(scope.Symbols) {
			errs = append(errs, fmt.Errorf("%s indexes %d of %d symbols", scopeID, covered, len(scope.Symbols)))
		}
	}

	for idx := range t.Symbols.data {
		symbolID, err := toSymbolID(t.Symbols.offset, idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		symbol := &t.Symbols.data[idx]
		scope := t.Scopes.Get(symbol.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("%s %q has invalid scope %s", symbolID, symbol.Name, symbol.Scope))
			continue
		}
		listed := slices.Contains(scope.Symbols, symbolID)
		if overload := symbol.Flags&SymbolFlagOverload != 0; overload == listed {
			errs = append(errs, fmt.Errorf("%s %q listed=%v in %s, overload=%v", symbolID, symbol.Name, listed, symbol.Scope, overload))
		}
		for _, o := range symbol.Overloads {
			if m := t.Symbols.Get(o); m == nil || m.Kind != SymbolMethod {
				errs = append(errs, fmt.Errorf("%s %q has invalid overload %s", symbolID, symbol.Name, o))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func toScopeID(offset uint32, idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(offset + value), nil
}

func toSymbolID(offset uint32, idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(offset + value), nil
}
