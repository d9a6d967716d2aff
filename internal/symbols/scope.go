package symbols

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeSystem            // built-in environment
	ScopeProgram           // top-level declarations of the analyzed program
	ScopeClass             // class body
	ScopeEnum              // enum values
	ScopeMethod            // method parameters
	ScopeBlock             // statement block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeSystem:
		return "system"
	case ScopeProgram:
		return "program"
	case ScopeClass:
		return "class"
	case ScopeEnum:
		return "enum"
	case ScopeMethod:
		return "method"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is an ordered list of symbols with a link to the enclosing scope.
// A class scope's parent is the scope declaring the class; inherited members
// are found through the class itself.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     SymbolID // class, enum or method symbol opening the scope
	NameIndex map[string][]SymbolID
	Symbols   []SymbolID // declaration order
	Children  []ScopeID
}
