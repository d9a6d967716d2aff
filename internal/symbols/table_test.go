package symbols

import (
	"errors"
	"testing"

	"cito/internal/intrinsic"
	"cito/internal/types"
)

type fixture struct {
	table   *Table
	program ScopeID
	base    *types.Class
	derived *types.Class
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	table := NewTable(Hints{})
	program := table.NewScope(ScopeProgram, NoScopeID, NoSymbolID)

	base := types.NewClass(types.CallNormal, intrinsic.None, "Shape", 0)
	baseSym := table.DeclareClass(program, base, 0, 1)
	table.DeclareMember(table.Symbol(baseSym).Body, intrinsic.None, "Width", types.Int, 0)

	derived := types.NewClass(types.CallNormal, intrinsic.None, "Square", 0)
	derived.SetBase(base)
	derivedSym := table.DeclareClass(program, derived, 0, 5)
	table.DeclareMember(table.Symbol(derivedSym).Body, intrinsic.None, "Side", types.Int, 0)

	return fixture{table: table, program: program, base: base, derived: derived}
}

func TestTableThisIsFirstClassMember(t *testing.T) {
	f := newFixture(t)
	members := f.table.Members(f.table.ClassScope(f.derived))
	if len(members) != 2 {
		t.Fatalf("expected this and Side, got %d members", len(members))
	}
	this := f.table.Symbol(members[0])
	if this.Name != "this" || this.Flags&SymbolFlagImplicit == 0 {
		t.Fatalf("first member = %q flags %v", this.Name, this.Flags.Strings())
	}
	if this.Type.Qualifier() != types.QualReadWrite || this.Type.Class() != f.derived {
		t.Fatalf("this has type %s (%s)", this.Type, this.Type.Qualifier())
	}
	if err := f.table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableInheritedLookup(t *testing.T) {
	f := newFixture(t)
	body := f.table.ClassScope(f.derived)

	id, ok := f.table.TryLookup(body, "Width")
	if !ok || f.table.Symbol(id).Scope != f.table.ClassScope(f.base) {
		t.Fatalf("Width not resolved through the base class: %v %v", id, ok)
	}
	this, _ := f.table.TryLookup(body, "this")
	if f.table.Symbol(this).Type.Class() != f.derived {
		t.Fatalf("derived this must shadow the base one")
	}
	if _, ok := f.table.TryLookup(body, "Square"); !ok {
		t.Fatalf("class names must resolve from the program scope")
	}
}

func TestTableInheritsAcrossScopes(t *testing.T) {
	table := NewTable(Hints{})
	hidden := table.NewScope(ScopeSystem, NoScopeID, NoSymbolID)
	program := table.NewScope(ScopeProgram, NoScopeID, NoSymbolID)
	table.DeclareType(program, "int", types.Int)

	writer := types.NewClass(types.CallNormal, intrinsic.None, "Writer", 0)
	writerSym := table.DeclareClass(hidden, writer, 0, 1)
	write := table.DeclareMember(table.Symbol(writerSym).Body, intrinsic.None, "Write", types.Void, 0)

	log := types.NewClass(types.CallNormal, intrinsic.None, "Log", 0)
	logSym := table.DeclareClass(program, log, 0, 3)
	table.SetBase(log, writer)
	body := table.Symbol(logSym).Body

	if table.Scope(body).Parent != program {
		t.Fatalf("class body parent = %s, want the declaring scope %s", table.Scope(body).Parent, program)
	}
	if id, ok := table.TryLookup(body, "Write"); !ok || id != write {
		t.Fatalf("Write = %v %v, want the base member %s", id, ok, write)
	}
	if _, ok := table.TryLookup(body, "int"); !ok {
		t.Fatalf("names of the declaring scope must resolve inside a class whose base lives elsewhere")
	}
	if _, ok := table.TryLookup(table.Symbol(writerSym).Body, "int"); ok {
		t.Fatalf("the base class body must not see the derived class's scope")
	}

	res := NewResolver(table, program)
	res.EnterClass(log)
	if prev, ok := res.Shadowed("Write"); !ok || prev != write {
		t.Fatalf("a Write in Log hides the inherited one, got %v %v", prev, ok)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableLocalShadowsMember(t *testing.T) {
	f := newFixture(t)
	res := NewResolver(f.table, f.program)
	classScope := res.EnterClass(f.derived)
	method := res.Declare(Symbol{Name: "Grow", Kind: SymbolMethod, Type: types.Void})
	block := res.Enter(ScopeBlock, method)

	if prev, ok := res.Shadowed("Side"); !ok || f.table.Symbol(prev).Kind != SymbolMember {
		t.Fatalf("expected Side to shadow a member, got %v %v", prev, ok)
	}
	local := res.Declare(Symbol{Name: "Side", Kind: SymbolVar, Type: types.Byte})

	if id, _ := res.Lookup("Side"); id != local {
		t.Fatalf("inner scope must win: got %s want %s", id, local)
	}
	res.Leave(block)
	if id, _ := res.Lookup("Side"); f.table.Symbol(id).Kind != SymbolMember {
		t.Fatalf("after leaving the block Side must be the member")
	}
	res.Leave(classScope)
	if res.CurrentScope() != f.program {
		t.Fatalf("current scope = %s, want %s", res.CurrentScope(), f.program)
	}
	if err := f.table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableLatestDeclarationWins(t *testing.T) {
	table := NewTable(Hints{})
	scope := table.NewScope(ScopeProgram, NoScopeID, NoSymbolID)
	table.DeclareVar(scope, "x", types.Int, 1)
	second := table.DeclareVar(scope, "x", types.Long, 2)
	if id, _ := table.LookupLocal(scope, "x"); id != second {
		t.Fatalf("LookupLocal = %s, want %s", id, second)
	}
}

func TestTableLookupMember(t *testing.T) {
	f := newFixture(t)
	ptr := types.NewClassType(types.QualPointer, f.derived)

	tests := []struct {
		name  string
		found bool
	}{
		{"Side", true},
		{"Width", true},
		{"Square", false}, // program scope is not part of the member chain
		{"Missing", false},
	}
	for _, tt := range tests {
		_, ok := f.table.LookupMember(ptr, tt.name)
		if ok != tt.found {
			t.Errorf("LookupMember(%q) = %v, want %v", tt.name, ok, tt.found)
		}
	}

	color := types.NewEnum("Color", false)
	enumSym := f.table.DeclareEnum(f.program, color, 0, 9)
	red := f.table.DeclareEnumValue(enumSym, "Red", 0)
	if id, ok := f.table.LookupMember(color, "Red"); !ok || id != red {
		t.Fatalf("enum value lookup = %v %v", id, ok)
	}
	if got := f.table.Symbol(red).Type; got != color {
		t.Fatalf("enum value has type %s", got)
	}
}

func TestTableMethodGroup(t *testing.T) {
	f := newFixture(t)
	body := f.table.ClassScope(f.base)
	spec := MethodSpec{Name: "Resize", Visibility: VisPublic, Mutator: true}
	one := f.table.NewOverload(body, MethodSpec{Name: spec.Name, Visibility: spec.Visibility, Mutator: true,
		Params: []Param{{Name: "w", Type: types.Int}}})
	two := f.table.NewOverload(body, MethodSpec{Name: spec.Name, Visibility: spec.Visibility, Mutator: true,
		Params: []Param{{Name: "w", Type: types.Int}, {Name: "h", Type: types.Int, Default: IntValue(1)}}})
	group := f.table.DeclareMethodGroup(body, one, two)

	id, ok := f.table.LookupMember(types.NewClassType(types.QualReadWrite, f.derived), "Resize")
	if !ok || id != group {
		t.Fatalf("group lookup = %v %v", id, ok)
	}
	overloads := f.table.Overloads(id)
	if len(overloads) != 2 || overloads[0] != one || overloads[1] != two {
		t.Fatalf("overloads = %v", overloads)
	}
	second := f.table.Symbol(two)
	if !second.IsMutator() || len(second.Params) != 2 {
		t.Fatalf("second overload: mutator=%v params=%d", second.IsMutator(), len(second.Params))
	}
	if def := f.table.Symbol(second.Params[1]).Value; def.Kind != ValueInt || def.Int != 1 {
		t.Fatalf("default = %v", def)
	}
	if err := f.table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableAddsVirtualMethods(t *testing.T) {
	f := newFixture(t)
	if f.table.AddsVirtualMethods(f.base) {
		t.Fatalf("no virtual methods declared yet")
	}
	f.table.DeclareMethod(f.table.ClassScope(f.base), MethodSpec{Name: "Area", Return: types.Double, Call: CallAbstract})
	if !f.table.AddsVirtualMethods(f.base) {
		t.Fatalf("abstract method must count")
	}
	if f.table.AddsVirtualMethods(f.derived) {
		t.Fatalf("inherited methods must not count")
	}
}

func TestTableForkOfFrozenBase(t *testing.T) {
	f := newFixture(t)
	f.table.Freeze()

	expectFrozen(t, func() { f.table.DeclareVar(f.program, "x", types.Int, 1) })

	user := f.table.Fork(Hints{})
	program := user.NewScope(ScopeProgram, f.program, NoSymbolID)
	expectFrozen(t, func() { user.DeclareVar(f.program, "x", types.Int, 1) })

	cube := types.NewClass(types.CallNormal, intrinsic.None, "Cube", 0)
	cube.SetBase(f.derived)
	cubeSym := user.DeclareClass(program, cube, 0, 20)
	if f.table.Scope(user.Symbol(cubeSym).Body) != nil {
		t.Fatalf("base table must not see forked scopes")
	}
	if _, ok := user.LookupMember(types.NewClassType(types.QualStorage, cube), "Width"); !ok {
		t.Fatalf("forked class must inherit from a frozen class")
	}
	if _, ok := user.ClassSymbol(f.base); !ok {
		t.Fatalf("base classes must stay visible in the fork")
	}
	if err := user.Validate(); err != nil {
		t.Fatalf("validate fork: %v", err)
	}
}

func expectFrozen(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrFrozen) {
			t.Fatalf("expected ErrFrozen panic, got %v", r)
		}
	}()
	fn()
}
