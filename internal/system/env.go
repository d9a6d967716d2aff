// Package system builds the built-in environment: the scalar types and the
// library classes every Ci program sees without declaring them.
//
// The environment is constructed once and frozen. Analyses fork its symbol
// table for their own declarations and never write to it.
package system

import (
	"context"
	"strconv"
	"sync"

	"cito/internal/symbols"
	"cito/internal/trace"
	"cito/internal/types"
)

// Env is the frozen built-in environment.
type Env struct {
	Table *symbols.Table
	// Scope holds everything a program can name.
	Scope symbols.ScopeID
	// Hidden holds classes reachable only through other types, such as
	// ArrayPtr behind T[] and ConsoleBase behind Console.
	Hidden symbols.ScopeID

	StringClass       *types.Class
	ArrayPtrClass     *types.Class
	ArrayStorageClass *types.Class
	ListClass         *types.Class
	QueueClass        *types.Class
	StackClass        *types.Class
	HashSetClass      *types.Class
	DictionaryClass   *types.Class
	SortedDictClass   *types.Class
	OrderedDictClass  *types.Class
	ConsoleBase       *types.Class
	ConsoleClass      *types.Class
	UTF8EncodingClass *types.Class
	EncodingClass     *types.Class
	EnvironmentClass  *types.Class
	RegexClass        *types.Class
	MatchClass        *types.Class
	MathClass         *types.Class
	LockClass         *types.Class

	StringPtr     *types.Type
	StringStorage *types.Type
	LockPtr       *types.Type
	RegexOptions  *types.Type

	// RegexOptionsNone is the default of every options parameter.
	RegexOptionsNone symbols.SymbolID
	// BasePtr is the base pseudo-variable.
	BasePtr symbols.SymbolID
}

// New builds a fresh environment.
func New() *Env {
	return NewWithContext(context.Background())
}

// NewWithContext builds a fresh environment, tracing construction with the
// tracer carried by ctx.
func NewWithContext(ctx context.Context) *Env {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "system.init", trace.CurrentSpan(ctx).SpanID)

	b := &builder{
		env:    &Env{Table: symbols.NewTable(symbols.Hints{Scopes: 160, Symbols: 512})},
		tracer: tracer,
		span:   span.ID(),
	}
	b.build()
	b.env.Table.Freeze()

	span.WithExtra("classes", strconv.Itoa(b.classes)).
		WithExtra("symbols", strconv.Itoa(b.env.Table.Symbols.Len())).
		End("")
	return b.env
}

var shared = sync.OnceValue(New)

// Default returns the process-wide environment, built on first use.
func Default() *Env { return shared() }

// Fork opens a writable table for a user program on top of the environment,
// together with its program scope.
func (e *Env) Fork() (*symbols.Table, symbols.ScopeID) {
	table := e.Table.Fork(symbols.Hints{})
	return table, table.NewScope(symbols.ScopeProgram, e.Scope, symbols.NoSymbolID)
}

// Lookup resolves a name a program can use without declaring it.
func (e *Env) Lookup(name string) (*symbols.Symbol, bool) {
	id, ok := e.Table.LookupLocal(e.Scope, name)
	if !ok {
		return nil, false
	}
	return e.Table.Symbol(id), true
}

// Member resolves a member of a value of type ty.
func (e *Env) Member(ty *types.Type, name string) (*symbols.Symbol, bool) {
	id, ok := e.Table.LookupMember(ty, name)
	if !ok {
		return nil, false
	}
	return e.Table.Symbol(id), true
}

// NewArrayStorage describes elem[length] held by value.
func (e *Env) NewArrayStorage(elem *types.Type, length int) *types.Type {
	return types.NewArrayStorage(e.ArrayStorageClass, elem, length)
}

// NewArrayPtr describes an elem[] reference under qualifier q.
func (e *Env) NewArrayPtr(q types.Qualifier, elem *types.Type) *types.Type {
	return types.NewClassType(q, e.ArrayPtrClass, elem)
}

// Classes lists every built-in class, hidden ones first, each group in
// declaration order.
func (e *Env) Classes() []*types.Class {
	var out []*types.Class
	for _, scope := range []symbols.ScopeID{e.Hidden, e.Scope} {
		for _, id := range e.Table.Members(scope) {
			if sym := e.Table.Symbol(id); sym.Kind == symbols.SymbolClass {
				out = append(out, sym.Class)
			}
		}
	}
	return out
}
