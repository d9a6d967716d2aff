package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scopes stores scopes in a slice-based arena. An arena may be stacked on a
// frozen base arena; handles below offset belong to the base.
type Scopes struct {
	base   *Scopes
	offset uint32
	data   []Scope
}

// NewScopes creates an arena with optional capacity hint. base may be nil.
func NewScopes(capacity uint32, base *Scopes) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	s := &Scopes{base: base, offset: 1} // 0 reserved for NoScopeID
	if base != nil {
		s.offset = base.next()
	}
	s.data = make([]Scope, 0, capacity)
	return s
}

func (s *Scopes) next() uint32 {
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	return s.offset + n
}

// New allocates a scope and returns its handle. The parent may live in the base arena.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner SymbolID) ScopeID {
	id := ScopeID(s.next())
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		NameIndex: make(map[string][]SymbolID),
	})
	if parentScope := s.local(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope or nil if the handle is invalid. Scopes of the base
// arena are returned too; callers must treat them as read-only.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() {
		return nil
	}
	if uint32(id) < s.offset {
		if s.base == nil {
			return nil
		}
		return s.base.Get(id)
	}
	return s.local(id)
}

// Owns reports whether the handle was allocated by this arena rather than its base.
func (s *Scopes) Owns(id ScopeID) bool { return s.local(id) != nil }

func (s *Scopes) local(id ScopeID) *Scope {
	if uint32(id) < s.offset {
		return nil
	}
	idx := uint32(id) - s.offset
	if int(idx) >= len(s.data) {
		return nil
	}
	return &s.data[idx]
}

// Len reports the number of scopes allocated by this arena.
func (s *Scopes) Len() int { return len(s.data) }

// Symbols stores declared symbols, stacked the same way as Scopes.
type Symbols struct {
	base   *Symbols
	offset uint32
	data   []Symbol
}

// NewSymbols creates a symbol arena with optional capacity hint. base may be nil.
func NewSymbols(capacity uint32, base *Symbols) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	s := &Symbols{base: base, offset: 1} // 0 reserved for NoSymbolID
	if base != nil {
		s.offset = base.next()
	}
	s.data = make([]Symbol, 0, capacity)
	return s
}

func (s *Symbols) next() uint32 {
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	return s.offset + n
}

// New stores a copy of sym and returns its handle.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	id := SymbolID(s.next())
	s.data = append(s.data, *sym)
	return id
}

// Get returns the symbol or nil for an invalid handle.
func (s *Symbols) Get(id SymbolID) *Symbol {
	if !id.IsValid() {
		return nil
	}
	if uint32(id) < s.offset {
		if s.base == nil {
			return nil
		}
		return s.base.Get(id)
	}
	return s.local(id)
}

// Owns reports whether the handle was allocated by this arena rather than its base.
func (s *Symbols) Owns(id SymbolID) bool { return s.local(id) != nil }

func (s *Symbols) local(id SymbolID) *Symbol {
	if uint32(id) < s.offset {
		return nil
	}
	idx := uint32(id) - s.offset
	if int(idx) >= len(s.data) {
		return nil
	}
	return &s.data[idx]
}

// Len reports the number of symbols allocated by this arena.
func (s *Symbols) Len() int { return len(s.data) }
