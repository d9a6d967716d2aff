package system

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"cito/internal/intrinsic"
	"cito/internal/symbols"
	"cito/internal/trace"
	"cito/internal/types"
)

func TestEnvScalarsResolveToCanonicalTypes(t *testing.T) {
	env := New()
	tests := []struct {
		name string
		want *types.Type
	}{
		{"int", types.Int},
		{"uint", types.UInt},
		{"long", types.Long},
		{"byte", types.Byte},
		{"short", types.Short},
		{"ushort", types.UShort},
		{"float", types.Float},
		{"double", types.Double},
		{"bool", types.Bool},
	}
	for _, tt := range tests {
		sym, ok := env.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s not declared", tt.name)
		}
		if sym.Type != tt.want {
			t.Fatalf("%s resolves to %s", tt.name, sym.Type)
		}
	}
	if sym, _ := env.Lookup("byte"); sym.Type.String() != "(0 .. 255)" {
		t.Fatalf("byte renders as %q", sym.Type.String())
	}
}

func TestEnvHiddenClasses(t *testing.T) {
	env := New()
	for _, name := range []string{"ArrayPtr", "ArrayStorage", "ConsoleBase", "UTF8Encoding"} {
		if _, ok := env.Lookup(name); ok {
			t.Fatalf("%s must not be nameable", name)
		}
	}
	for _, name := range []string{"string", "List", "Dictionary", "Console", "Encoding", "Environment", "Regex", "Match", "Math", "Lock", "RegexOptions", "base"} {
		if _, ok := env.Lookup(name); !ok {
			t.Fatalf("%s must be nameable", name)
		}
	}
}

func TestEnvSubstringSignature(t *testing.T) {
	env := New()
	sym, ok := env.Member(env.StringPtr, "Substring")
	if !ok {
		t.Fatalf("Substring missing")
	}
	if sym.ID != intrinsic.StringSubstring || sym.Type != env.StringStorage {
		t.Fatalf("Substring: id %s returns %s", sym.ID, sym.Type)
	}
	if len(sym.Params) != 2 {
		t.Fatalf("Substring has %d params", len(sym.Params))
	}
	length := env.Table.Symbol(sym.Params[1])
	if length.Name != "length" || length.Type != types.Int || length.Value.Kind != symbols.ValueInt || length.Value.Int != -1 {
		t.Fatalf("length param = %s %s default %v", length.Name, length.Type, length.Value)
	}
}

func TestEnvDictionaryVariantsShareShape(t *testing.T) {
	m := New().Manifest()
	shapes := map[string][]ManifestMember{}
	for _, c := range m.Classes {
		switch c.Name {
		case "Dictionary", "SortedDictionary", "OrderedDictionary":
			if c.TypeParams != 2 {
				t.Fatalf("%s has %d type params", c.Name, c.TypeParams)
			}
			members := make([]ManifestMember, len(c.Members))
			for i, mm := range c.Members {
				mm.ID = ""
				members[i] = mm
			}
			shapes[c.Name] = members
		}
	}
	if len(shapes) != 3 {
		t.Fatalf("found %d dictionary variants", len(shapes))
	}
	ref := shapes["Dictionary"]
	for name, members := range shapes {
		if len(members) != len(ref) {
			t.Fatalf("%s has %d members, Dictionary %d", name, len(members), len(ref))
		}
		for i := range members {
			if !memberEqual(members[i], ref[i]) {
				t.Fatalf("%s member %d = %+v, Dictionary has %+v", name, i, members[i], ref[i])
			}
		}
	}
}

func TestEnvCollectionsShareClearAndCount(t *testing.T) {
	env := New()
	for _, class := range []*types.Class{env.ListClass, env.QueueClass, env.StackClass, env.HashSetClass, env.DictionaryClass} {
		ptr := types.NewClassType(types.QualPointer, class)
		clear, ok := env.Member(ptr, "Clear")
		if !ok || !clear.IsMutator() || clear.Type != types.Void {
			t.Fatalf("%s.Clear = %+v", class.Name, clear)
		}
		count, ok := env.Member(ptr, "Count")
		if !ok || count.Kind != symbols.SymbolMember || count.Type != types.UInt {
			t.Fatalf("%s.Count = %+v", class.Name, count)
		}
	}
}

func TestEnvArrayMethodGroups(t *testing.T) {
	env := New()
	storage := env.NewArrayStorage(types.Byte, 10)
	fill, ok := env.Member(storage, "Fill")
	if !ok || fill.Kind != symbols.SymbolMethodGroup || len(fill.Overloads) != 2 {
		t.Fatalf("ArrayStorage.Fill = %+v", fill)
	}
	all := env.Table.Symbol(fill.Overloads[0])
	part := env.Table.Symbol(fill.Overloads[1])
	if all.ID != intrinsic.ArrayFillAll || part.ID != intrinsic.ArrayFillPart {
		t.Fatalf("Fill overloads: %s, %s", all.ID, part.ID)
	}

	ptrFill, ok := env.Member(storage.PtrOrSelf(), "Fill")
	if !ok || ptrFill.ID != intrinsic.ArrayFillPart {
		t.Fatalf("ArrayPtr.Fill must be the ranged overload, got %+v", ptrFill)
	}
	if _, ok := env.Member(storage.PtrOrSelf(), "Length"); ok {
		t.Fatalf("Length belongs to array storage only")
	}
	if length, ok := env.Member(storage, "Length"); !ok || length.ID != intrinsic.ArrayLength {
		t.Fatalf("ArrayStorage.Length missing")
	}
}

func TestEnvArrayStorageDecays(t *testing.T) {
	env := New()
	storage := env.NewArrayStorage(types.Byte, 10)
	ptr := storage.PtrOrSelf()
	if ptr.Class() != env.ArrayPtrClass || ptr.ElementType() != types.Byte || ptr.Length() != 0 {
		t.Fatalf("decayed to %s", ptr)
	}
	if got := ptr.String(); got != "(0 .. 255)[]!" {
		t.Fatalf("decayed renders %q", got)
	}
	if !env.NewArrayPtr(types.QualPointer, types.Byte).IsAssignableFrom(storage) {
		t.Fatalf("byte[] must accept byte[10]")
	}
}

func TestEnvListOwnershipScenario(t *testing.T) {
	env := New()
	dynamicElems := types.NewClassType(types.QualPointer, env.ListClass, types.NewClassType(types.QualDynamic, env.MatchClass))
	ptrElems := types.NewClassType(types.QualReadWrite, env.ListClass, types.NewClassType(types.QualPointer, env.MatchClass))
	if dynamicElems.IsAssignableFrom(ptrElems) {
		t.Fatalf("%s must reject %s", dynamicElems, ptrElems)
	}
	same := types.NewClassType(types.QualReadWrite, env.ListClass, types.NewClassType(types.QualDynamic, env.MatchClass))
	if !dynamicElems.IsAssignableFrom(same) {
		t.Fatalf("%s must accept %s", dynamicElems, same)
	}
}

func TestEnvListAddSubstitution(t *testing.T) {
	env := New()
	matchStorage := types.NewClassType(types.QualStorage, env.MatchClass)
	regexDynamic := types.NewClassType(types.QualDynamic, env.RegexClass)
	tests := []struct {
		name string
		elem *types.Type
		want *types.Type
	}{
		{"int", types.Int, types.Int},
		{"match storage is not final", matchStorage, matchStorage},
		{"regex storage", types.NewClassType(types.QualStorage, env.RegexClass), nil},
		{"regex dynamic", regexDynamic, regexDynamic},
	}
	for _, tt := range tests {
		list := types.NewClassType(types.QualReadWrite, env.ListClass, tt.elem)
		add, ok := env.Member(list, "Add")
		if !ok {
			t.Fatalf("List.Add missing")
		}
		param := env.Table.Symbol(add.Params[0])
		if got := list.EvalType(param.Type); got != tt.want {
			t.Errorf("%s: EvalType = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEnvConsoleInheritsWrite(t *testing.T) {
	env := New()
	console := types.NewClassType(types.QualPointer, env.ConsoleClass)
	sym, ok := env.Member(console, "WriteLine")
	if !ok || sym.ID != intrinsic.ConsoleWriteLine || !sym.IsStatic() {
		t.Fatalf("Console.WriteLine = %+v", sym)
	}
	param := env.Table.Symbol(sym.Params[0])
	if param.Type != types.Printable || param.Value.Kind != symbols.ValueString {
		t.Fatalf("WriteLine param = %s default %v", param.Type, param.Value)
	}
	errSym, ok := env.Member(console, "Error")
	if !ok || errSym.Type.Class() != env.ConsoleBase {
		t.Fatalf("Console.Error = %+v", errSym)
	}
	if _, ok := env.Member(errSym.Type, "Write"); !ok {
		t.Fatalf("Console.Error.Write missing")
	}
}

func TestEnvConsoleBodySeesProgramNames(t *testing.T) {
	env := New()
	body := env.Table.ClassScope(env.ConsoleClass)
	if _, ok := env.Table.TryLookup(body, "int"); !ok {
		t.Fatalf("int must resolve inside Console although ConsoleBase is hidden")
	}
	id, ok := env.Table.TryLookup(body, "WriteLine")
	if !ok || env.Table.Symbol(id).ID != intrinsic.ConsoleWriteLine {
		t.Fatalf("WriteLine must resolve through ConsoleBase, got %v %v", id, ok)
	}
}

func TestEnvRegexOptionsDefault(t *testing.T) {
	env := New()
	if !env.RegexOptions.IsFlags() {
		t.Fatalf("RegexOptions must be a flags enum")
	}
	compile, ok := env.Member(types.NewClassType(types.QualPointer, env.RegexClass), "Compile")
	if !ok || compile.Type.Qualifier() != types.QualDynamic {
		t.Fatalf("Regex.Compile = %+v", compile)
	}
	opts := env.Table.Symbol(compile.Params[1])
	if opts.Value.Kind != symbols.ValueSymbol || opts.Value.Sym != env.RegexOptionsNone {
		t.Fatalf("options default = %v", opts.Value)
	}
	single, ok := env.Member(env.RegexOptions, "Singleline")
	if !ok || single.Value.Int != 16 {
		t.Fatalf("Singleline = %+v", single)
	}
}

func TestEnvMathMembers(t *testing.T) {
	env := New()
	math := types.NewClassType(types.QualPointer, env.MathClass)
	floor, _ := env.Member(math, "Floor")
	if floor.Type != types.FloatInt {
		t.Fatalf("Floor returns %s", floor.Type)
	}
	if !types.Int.IsAssignableFrom(floor.Type) {
		t.Fatalf("int must accept Math.Floor")
	}
	if sin, _ := env.Member(math, "Sin"); types.Int.IsAssignableFrom(sin.Type) {
		t.Fatalf("int must reject Math.Sin")
	}
	pi, ok := env.Member(math, "PI")
	if !ok || pi.Kind != symbols.SymbolConst || pi.Value.Double < 3.14 {
		t.Fatalf("PI = %+v", pi)
	}
	if fma, _ := env.Member(math, "FusedMultiplyAdd"); fma.ID != intrinsic.MathFusedMultiplyAdd || len(fma.Params) != 3 {
		t.Fatalf("FusedMultiplyAdd = %+v", fma)
	}
}

func TestEnvIsFrozen(t *testing.T) {
	env := New()
	if err := env.Table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, symbols.ErrFrozen) {
			t.Fatalf("expected ErrFrozen, got %v", err)
		}
	}()
	env.Table.DeclareVar(env.Scope, "x", types.Int, 1)
}

func TestEnvForkForProgram(t *testing.T) {
	env := New()
	table, program := env.Fork()

	parser := types.NewClass(types.CallNormal, intrinsic.None, "Parser", 0)
	sym := table.DeclareClass(program, parser, 0, 3)
	body := table.Symbol(sym).Body
	field := types.NewClassType(types.QualStorage, env.ListClass, types.Int)
	table.DeclareMember(body, intrinsic.None, "Items", field, 0)

	if id, ok := table.TryLookup(body, "Console"); !ok || table.Symbol(id).Class != env.ConsoleClass {
		t.Fatalf("built-ins must be visible from a program class")
	}
	if _, ok := env.Table.LookupLocal(env.Scope, "Parser"); ok {
		t.Fatalf("program declarations must not leak into the environment")
	}
	count, ok := table.LookupMember(field, "Count")
	if !ok || table.Symbol(count).ID != intrinsic.ListCount {
		t.Fatalf("List<int>().Count not resolved through the fork")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestEnvDefaultIsSharedAcrossGoroutines(t *testing.T) {
	first := Default()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env := Default()
			if env != first {
				t.Errorf("Default returned a different environment")
			}
			if _, ok := env.Member(env.StringPtr, "Length"); !ok {
				t.Errorf("string.Length missing")
			}
		}()
	}
	wg.Wait()
}

func TestEnvTracesConstruction(t *testing.T) {
	ring := trace.NewRingTracer(1024, trace.LevelDetail)
	env := NewWithContext(trace.WithTracer(context.Background(), ring))

	var begin, classes int
	for _, ev := range ring.Snapshot() {
		switch {
		case ev.Kind == trace.KindSpanBegin && ev.Name == "system.init":
			begin++
		case ev.Kind == trace.KindPoint && ev.Scope == trace.ScopeClass:
			classes++
		case ev.Scope == trace.ScopeMember:
			t.Fatalf("member event %q at detail level", ev.Name)
		}
	}
	if begin != 1 {
		t.Fatalf("expected one system.init span, got %d", begin)
	}
	if want := len(env.Classes()); classes != want {
		t.Fatalf("traced %d classes, env has %d", classes, want)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := New().Manifest()
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeManifest(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := m.Diff(decoded); len(diff) != 0 {
		t.Fatalf("round trip differs: %v", diff)
	}

	decoded.Classes = decoded.Classes[1:]
	decoded.Types[0].Kind = "floating"
	diff := m.Diff(decoded)
	if len(diff) != 2 {
		t.Fatalf("diff = %v", diff)
	}
}
