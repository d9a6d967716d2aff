package system

import (
	"math"

	"cito/internal/intrinsic"
	"cito/internal/symbols"
	"cito/internal/trace"
	"cito/internal/types"
)

const builtin = symbols.SymbolFlagBuiltin

type builder struct {
	env     *Env
	tracer  trace.Tracer
	span    uint64
	classes int
}

func param(name string, ty *types.Type) symbols.Param {
	return symbols.Param{Name: name, Type: ty}
}

func paramDefault(name string, ty *types.Type, def symbols.Value) symbols.Param {
	return symbols.Param{Name: name, Type: ty, Default: def}
}

func public(ret *types.Type, id intrinsic.ID, name string, params ...symbols.Param) symbols.MethodSpec {
	return symbols.MethodSpec{ID: id, Name: name, Return: ret, Visibility: symbols.VisPublic, Params: params, Flags: builtin}
}

func visible(vis symbols.Visibility, ret *types.Type, id intrinsic.ID, name string, params ...symbols.Param) symbols.MethodSpec {
	return symbols.MethodSpec{ID: id, Name: name, Return: ret, Visibility: vis, Params: params, Flags: builtin}
}

func mutator(vis symbols.Visibility, ret *types.Type, id intrinsic.ID, name string, params ...symbols.Param) symbols.MethodSpec {
	spec := visible(vis, ret, id, name, params...)
	spec.Mutator = true
	return spec
}

func static(ret *types.Type, id intrinsic.ID, name string, params ...symbols.Param) symbols.MethodSpec {
	spec := public(ret, id, name, params...)
	spec.Call = symbols.CallStatic
	return spec
}

// class declares a built-in class in scope. base must already be declared.
func (b *builder) class(scope symbols.ScopeID, call types.CallKind, id intrinsic.ID, name string, typeParams int, base *types.Class) (*types.Class, symbols.ScopeID) {
	class := types.NewClass(call, id, name, typeParams)
	class.SetBase(base)
	sym := b.env.Table.DeclareClass(scope, class, builtin, 0)
	b.classes++
	trace.Point(b.tracer, trace.ScopeClass, "class:"+name, id.String(), b.span)
	return class, b.env.Table.Symbol(sym).Body
}

func (b *builder) method(body symbols.ScopeID, spec symbols.MethodSpec) symbols.SymbolID {
	trace.Point(b.tracer, trace.ScopeMember, "method:"+spec.Name, spec.ID.String(), b.span)
	return b.env.Table.DeclareMethod(body, spec)
}

// group declares overloads sharing one name. Members that are already
// declared by name, typically in a base class, are passed as existing.
func (b *builder) group(body symbols.ScopeID, specs []symbols.MethodSpec, existing ...symbols.SymbolID) symbols.SymbolID {
	ids := make([]symbols.SymbolID, 0, len(specs)+len(existing))
	for _, spec := range specs {
		ids = append(ids, b.env.Table.NewOverload(body, spec))
	}
	ids = append(ids, existing...)
	trace.Point(b.tracer, trace.ScopeMember, "group:"+specs[0].Name, "", b.span)
	return b.env.Table.DeclareMethodGroup(body, ids...)
}

func (b *builder) member(body symbols.ScopeID, ty *types.Type, id intrinsic.ID, name string) symbols.SymbolID {
	return b.env.Table.DeclareMember(body, id, name, ty, builtin)
}

func (b *builder) build() {
	e := b.env
	t := e.Table
	e.Scope = t.NewScope(symbols.ScopeSystem, symbols.NoScopeID, symbols.NoSymbolID)
	e.Hidden = t.NewScope(symbols.ScopeSystem, symbols.NoScopeID, symbols.NoSymbolID)

	b.scalars()
	b.strings()
	b.arrays()
	b.collections()
	b.console()
	b.encoding()
	b.regex()
	b.math()

	e.LockClass, _ = b.class(e.Scope, types.CallSealed, intrinsic.LockClass, "Lock", 0, nil)
	e.LockPtr = types.NewClassType(types.QualReadWrite, e.LockClass)
	e.BasePtr = t.Add(e.Scope, symbols.Symbol{Name: "base", Kind: symbols.SymbolVar, Flags: builtin | symbols.SymbolFlagImplicit})
}

func (b *builder) scalars() {
	t := b.env.Table
	scope := b.env.Scope
	for _, ty := range []*types.Type{types.Int, types.UInt, types.Long, types.Byte, types.Short, types.UShort, types.Float, types.Double} {
		t.DeclareType(scope, ty.Name(), ty)
	}
	t.DeclareEnum(scope, types.Bool, builtin, 0)
}

func (b *builder) strings() {
	e := b.env
	var body symbols.ScopeID
	e.StringClass, body = b.class(e.Scope, types.CallNormal, intrinsic.StringClass, "string", 0, nil)
	e.StringPtr = types.NewClassType(types.QualPointer, e.StringClass)
	e.StringStorage = types.NewClassType(types.QualStorage, e.StringClass)
	str := e.StringPtr

	b.method(body, public(types.Bool, intrinsic.StringContains, "Contains", param("value", str)))
	b.method(body, public(types.Bool, intrinsic.StringEndsWith, "EndsWith", param("value", str)))
	b.method(body, public(types.Minus1, intrinsic.StringIndexOf, "IndexOf", param("value", str)))
	b.method(body, public(types.Minus1, intrinsic.StringLastIndexOf, "LastIndexOf", param("value", str)))
	b.member(body, types.UInt, intrinsic.StringLength, "Length")
	b.method(body, public(e.StringStorage, intrinsic.StringReplace, "Replace", param("oldValue", str), param("newValue", str)))
	b.method(body, public(types.Bool, intrinsic.StringStartsWith, "StartsWith", param("value", str)))
	b.method(body, public(e.StringStorage, intrinsic.StringSubstring, "Substring",
		param("offset", types.Int), paramDefault("length", types.Int, symbols.IntValue(-1))))
}

func (b *builder) arrays() {
	e := b.env
	var ptrBody, storageBody symbols.ScopeID
	e.ArrayPtrClass, ptrBody = b.class(e.Hidden, types.CallNormal, intrinsic.ArrayPtrClass, "ArrayPtr", 1, nil)
	e.ArrayStorageClass, storageBody = b.class(e.Hidden, types.CallNormal, intrinsic.ArrayStorageClass, "ArrayStorage", 1, e.ArrayPtrClass)
	dest := e.NewArrayPtr(types.QualReadWrite, types.TypeParam0)

	searchPart := b.method(ptrBody, visible(symbols.VisNumericElementType, types.Int, intrinsic.ArrayBinarySearchPart, "BinarySearch",
		param("value", types.TypeParam0), param("startIndex", types.Int), param("count", types.Int)))
	b.method(ptrBody, public(types.Void, intrinsic.ArrayCopyTo, "CopyTo",
		param("sourceIndex", types.Int), param("destinationArray", dest), param("destinationIndex", types.Int), param("count", types.Int)))
	fillPart := b.method(ptrBody, mutator(symbols.VisPublic, types.Void, intrinsic.ArrayFillPart, "Fill",
		param("value", types.TypeParam0), param("startIndex", types.Int), param("count", types.Int)))
	sortPart := b.method(ptrBody, mutator(symbols.VisNumericElementType, types.Void, intrinsic.ArraySortPart, "Sort",
		param("startIndex", types.Int), param("count", types.Int)))

	b.group(storageBody, []symbols.MethodSpec{
		visible(symbols.VisNumericElementType, types.Int, intrinsic.ArrayBinarySearchAll, "BinarySearch", param("value", types.TypeParam0)),
	}, searchPart)
	b.group(storageBody, []symbols.MethodSpec{
		mutator(symbols.VisPublic, types.Void, intrinsic.ArrayFillAll, "Fill", param("value", types.TypeParam0)),
	}, fillPart)
	b.member(storageBody, types.UInt, intrinsic.ArrayLength, "Length")
	b.group(storageBody, []symbols.MethodSpec{
		mutator(symbols.VisNumericElementType, types.Void, intrinsic.ArraySortAll, "Sort"),
	}, sortPart)
}

// addCollection declares a generic collection with the Clear and Count
// members every collection shares.
func (b *builder) addCollection(id intrinsic.ID, name string, typeParams int, clearID, countID intrinsic.ID) (*types.Class, symbols.ScopeID) {
	class, body := b.class(b.env.Scope, types.CallNormal, id, name, typeParams, nil)
	b.method(body, mutator(symbols.VisPublic, types.Void, clearID, "Clear"))
	b.member(body, types.UInt, countID, "Count")
	return class, body
}

// dictionaryIDs labels the members of one dictionary variant. Variants
// differ in these labels only.
type dictionaryIDs struct {
	class, clear, containsKey, count, remove intrinsic.ID
}

func (b *builder) addDictionary(name string, ids dictionaryIDs) *types.Class {
	dict, body := b.addCollection(ids.class, name, 2, ids.clear, ids.count)
	key := param("key", types.TypeParam0)
	b.method(body, mutator(symbols.VisFinalValueType, types.Void, intrinsic.DictionaryAdd, "Add", key))
	b.method(body, public(types.Bool, ids.containsKey, "ContainsKey", key))
	b.method(body, mutator(symbols.VisPublic, types.Void, ids.remove, "Remove", key))
	return dict
}

func (b *builder) collections() {
	e := b.env
	value := param("value", types.TypeParam0)

	var list symbols.ScopeID
	e.ListClass, list = b.addCollection(intrinsic.ListClass, "List", 1, intrinsic.ListClear, intrinsic.ListCount)
	b.method(list, mutator(symbols.VisPublic, types.Void, intrinsic.ListAdd, "Add", param("value", types.TypeParam0NotFinal)))
	b.method(list, public(types.Bool, intrinsic.ListAny, "Any", param("predicate", types.TypeParam0Predicate)))
	b.method(list, public(types.Bool, intrinsic.ListContains, "Contains", value))
	b.method(list, public(types.Void, intrinsic.ListCopyTo, "CopyTo",
		param("sourceIndex", types.Int), param("destinationArray", e.NewArrayPtr(types.QualReadWrite, types.TypeParam0)),
		param("destinationIndex", types.Int), param("count", types.Int)))
	b.method(list, mutator(symbols.VisPublic, types.Void, intrinsic.ListInsert, "Insert",
		param("index", types.UInt), param("value", types.TypeParam0NotFinal)))
	b.method(list, mutator(symbols.VisPublic, types.Void, intrinsic.ListRemoveAt, "RemoveAt", param("index", types.Int)))
	b.method(list, mutator(symbols.VisPublic, types.Void, intrinsic.ListRemoveRange, "RemoveRange",
		param("index", types.Int), param("count", types.Int)))
	b.group(list, []symbols.MethodSpec{
		mutator(symbols.VisNumericElementType, types.Void, intrinsic.ListSortAll, "Sort"),
		mutator(symbols.VisNumericElementType, types.Void, intrinsic.ListSortPart, "Sort", param("startIndex", types.Int), param("count", types.Int)),
	})

	var queue symbols.ScopeID
	e.QueueClass, queue = b.addCollection(intrinsic.QueueClass, "Queue", 1, intrinsic.QueueClear, intrinsic.QueueCount)
	b.method(queue, mutator(symbols.VisPublic, types.TypeParam0, intrinsic.QueueDequeue, "Dequeue"))
	b.method(queue, mutator(symbols.VisPublic, types.Void, intrinsic.QueueEnqueue, "Enqueue", value))
	b.method(queue, public(types.TypeParam0, intrinsic.QueuePeek, "Peek"))

	var stack symbols.ScopeID
	e.StackClass, stack = b.addCollection(intrinsic.StackClass, "Stack", 1, intrinsic.StackClear, intrinsic.StackCount)
	b.method(stack, public(types.TypeParam0, intrinsic.StackPeek, "Peek"))
	b.method(stack, mutator(symbols.VisPublic, types.Void, intrinsic.StackPush, "Push", value))
	b.method(stack, mutator(symbols.VisPublic, types.TypeParam0, intrinsic.StackPop, "Pop"))

	var set symbols.ScopeID
	e.HashSetClass, set = b.addCollection(intrinsic.HashSetClass, "HashSet", 1, intrinsic.HashSetClear, intrinsic.HashSetCount)
	b.method(set, mutator(symbols.VisPublic, types.Void, intrinsic.HashSetAdd, "Add", value))
	b.method(set, public(types.Bool, intrinsic.HashSetContains, "Contains", value))
	b.method(set, mutator(symbols.VisPublic, types.Void, intrinsic.HashSetRemove, "Remove", value))

	e.DictionaryClass = b.addDictionary("Dictionary", dictionaryIDs{
		intrinsic.DictionaryClass, intrinsic.DictionaryClear, intrinsic.DictionaryContainsKey,
		intrinsic.DictionaryCount, intrinsic.DictionaryRemove,
	})
	e.SortedDictClass = b.addDictionary("SortedDictionary", dictionaryIDs{
		intrinsic.SortedDictionaryClass, intrinsic.SortedDictionaryClear, intrinsic.SortedDictionaryContainsKey,
		intrinsic.SortedDictionaryCount, intrinsic.SortedDictionaryRemove,
	})
	e.OrderedDictClass = b.addDictionary("OrderedDictionary", dictionaryIDs{
		intrinsic.OrderedDictionaryClass, intrinsic.OrderedDictionaryClear, intrinsic.OrderedDictionaryContainsKey,
		intrinsic.OrderedDictionaryCount, intrinsic.OrderedDictionaryRemove,
	})
}

func (b *builder) console() {
	e := b.env
	var base, console symbols.ScopeID
	e.ConsoleBase, base = b.class(e.Hidden, types.CallStatic, intrinsic.None, "ConsoleBase", 0, nil)
	b.method(base, static(types.Void, intrinsic.ConsoleWrite, "Write", param("value", types.Printable)))
	b.method(base, static(types.Void, intrinsic.ConsoleWriteLine, "WriteLine",
		paramDefault("value", types.Printable, symbols.StringValue(""))))

	e.ConsoleClass, console = b.class(e.Scope, types.CallStatic, intrinsic.None, "Console", 0, e.ConsoleBase)
	b.member(console, types.NewClassType(types.QualPointer, e.ConsoleBase), intrinsic.ConsoleError, "Error")
}

func (b *builder) encoding() {
	e := b.env
	str := e.StringPtr
	var utf8, encoding, environment symbols.ScopeID

	e.UTF8EncodingClass, utf8 = b.class(e.Hidden, types.CallSealed, intrinsic.None, "UTF8Encoding", 0, nil)
	b.method(utf8, public(types.Int, intrinsic.UTF8GetByteCount, "GetByteCount", param("str", str)))
	b.method(utf8, public(types.Void, intrinsic.UTF8GetBytes, "GetBytes",
		param("str", str), param("bytes", e.NewArrayPtr(types.QualReadWrite, types.Byte)), param("byteIndex", types.Int)))
	b.method(utf8, public(e.StringStorage, intrinsic.UTF8GetString, "GetString",
		param("bytes", e.NewArrayPtr(types.QualPointer, types.Byte)), param("offset", types.Int), param("length", types.Int)))

	e.EncodingClass, encoding = b.class(e.Scope, types.CallStatic, intrinsic.None, "Encoding", 0, nil)
	b.member(encoding, types.NewClassType(types.QualPointer, e.UTF8EncodingClass), intrinsic.None, "UTF8")

	e.EnvironmentClass, environment = b.class(e.Scope, types.CallStatic, intrinsic.None, "Environment", 0, nil)
	b.method(environment, static(str, intrinsic.EnvironmentGetEnvironmentVariable, "GetEnvironmentVariable", param("name", str)))
}

func (b *builder) regex() {
	e := b.env
	t := e.Table
	str := e.StringPtr

	e.RegexOptions = types.NewEnum("RegexOptions", true)
	options := t.DeclareEnum(e.Scope, e.RegexOptions, builtin, 0)
	e.RegexOptionsNone = t.DeclareEnumValue(options, "None", 0)
	t.DeclareEnumValue(options, "IgnoreCase", 1)
	t.DeclareEnumValue(options, "Multiline", 2)
	t.DeclareEnumValue(options, "Singleline", 16)
	opts := paramDefault("options", e.RegexOptions, symbols.SymbolValue(e.RegexOptionsNone))

	var regex, match symbols.ScopeID
	e.RegexClass, regex = b.class(e.Scope, types.CallSealed, intrinsic.RegexClass, "Regex", 0, nil)
	b.method(regex, static(e.StringStorage, intrinsic.RegexEscape, "Escape", param("str", str)))
	b.group(regex, []symbols.MethodSpec{
		static(types.Bool, intrinsic.RegexIsMatchStr, "IsMatch", param("input", str), param("pattern", str), opts),
		public(types.Bool, intrinsic.RegexIsMatchRegex, "IsMatch", param("input", str)),
	})
	b.method(regex, static(types.NewClassType(types.QualDynamic, e.RegexClass), intrinsic.RegexCompile, "Compile",
		param("pattern", str), opts))

	e.MatchClass, match = b.class(e.Scope, types.CallSealed, intrinsic.MatchClass, "Match", 0, nil)
	b.group(match, []symbols.MethodSpec{
		mutator(symbols.VisPublic, types.Bool, intrinsic.MatchFindStr, "Find", param("input", str), param("pattern", str), opts),
		mutator(symbols.VisPublic, types.Bool, intrinsic.MatchFindRegex, "Find", param("input", str),
			param("pattern", types.NewClassType(types.QualPointer, e.RegexClass))),
	})
	b.member(match, types.Int, intrinsic.MatchStart, "Start")
	b.member(match, types.Int, intrinsic.MatchEnd, "End")
	b.method(match, public(str, intrinsic.MatchGetCapture, "GetCapture", param("group", types.UInt)))
	b.member(match, types.UInt, intrinsic.MatchLength, "Length")
	b.member(match, str, intrinsic.MatchValue, "Value")
}

func (b *builder) math() {
	e := b.env
	var body symbols.ScopeID
	e.MathClass, body = b.class(e.Scope, types.CallStatic, intrinsic.None, "Math", 0, nil)
	a := param("a", types.Double)
	fn := func(ret *types.Type, id intrinsic.ID, name string, params ...symbols.Param) {
		if len(params) == 0 {
			params = []symbols.Param{a}
		}
		b.method(body, static(ret, id, name, params...))
	}
	y, x := param("y", types.Double), param("x", types.Double)

	fn(types.Float, intrinsic.MathMethod, "Acos")
	fn(types.Float, intrinsic.MathMethod, "Asin")
	fn(types.Float, intrinsic.MathMethod, "Atan")
	fn(types.Float, intrinsic.MathMethod, "Atan2", y, x)
	fn(types.Float, intrinsic.MathMethod, "Cbrt")
	fn(types.FloatInt, intrinsic.MathCeiling, "Ceiling")
	fn(types.Float, intrinsic.MathMethod, "Cos")
	fn(types.Float, intrinsic.MathMethod, "Cosh")
	e.Table.DeclareConst(body, "E", types.Double, symbols.DoubleValue(math.E), builtin)
	fn(types.Float, intrinsic.MathMethod, "Exp")
	fn(types.FloatInt, intrinsic.MathMethod, "Floor")
	fn(types.Float, intrinsic.MathFusedMultiplyAdd, "FusedMultiplyAdd", x, y, param("z", types.Double))
	fn(types.Bool, intrinsic.MathIsFinite, "IsFinite")
	fn(types.Bool, intrinsic.MathIsInfinity, "IsInfinity")
	fn(types.Bool, intrinsic.MathIsNaN, "IsNaN")
	fn(types.Float, intrinsic.MathMethod, "Log")
	fn(types.Float, intrinsic.MathLog2, "Log2")
	fn(types.Float, intrinsic.MathMethod, "Log10")
	b.member(body, types.Float, intrinsic.MathNaN, "NaN")
	b.member(body, types.Float, intrinsic.MathNegativeInfinity, "NegativeInfinity")
	e.Table.DeclareConst(body, "PI", types.Double, symbols.DoubleValue(math.Pi), builtin)
	b.member(body, types.Float, intrinsic.MathPositiveInfinity, "PositiveInfinity")
	fn(types.Float, intrinsic.MathMethod, "Pow", x, y)
	fn(types.Float, intrinsic.MathMethod, "Sin")
	fn(types.Float, intrinsic.MathMethod, "Sinh")
	fn(types.Float, intrinsic.MathMethod, "Sqrt")
	fn(types.Float, intrinsic.MathMethod, "Tan")
	fn(types.Float, intrinsic.MathMethod, "Tanh")
	fn(types.FloatInt, intrinsic.MathTruncate, "Truncate")
}
