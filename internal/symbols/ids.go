package symbols

import "strconv"

// ScopeID is a handle to a scope in a Table arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope. It is also the parent of root scopes.
const NoScopeID ScopeID = 0

// IsValid reports whether the handle refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

func (id ScopeID) String() string { return "scope#" + strconv.FormatUint(uint64(id), 10) }

// SymbolID is a handle to a symbol in a Table arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol.
const NoSymbolID SymbolID = 0

// IsValid reports whether the handle refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

func (id SymbolID) String() string { return "sym#" + strconv.FormatUint(uint64(id), 10) }
