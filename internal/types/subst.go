package types

// EvalType substitutes the type arguments of the bound class type t into a
// member signature type. It returns nil when typ is TypeParam0NotFinal and
// the argument is final, meaning the member does not apply to t.
func (t *Type) EvalType(typ *Type) *Type {
	switch {
	case typ == TypeParam0:
		return t.mustArg0()
	case typ == TypeParam0NotFinal:
		arg := t.mustArg0()
		if arg.IsFinal() {
			return nil
		}
		return arg
	case typ.kind == KindClass && typ.qual != QualPointer && typ.IsArray() && typ.arg0 == TypeParam0:
		// any writable T[] specializes to a read-write array pointer
		class := typ.class
		if typ.qual == QualArrayStorage {
			class = class.Base
		}
		return NewClassType(QualReadWrite, class, t.mustArg0())
	default:
		return typ
	}
}

func (t *Type) mustArg0() *Type {
	if t.kind != KindClass || t.arg0 == nil {
		fault(ErrUnresolvedTypeParam, "%s has no type argument for T", t)
	}
	return t.arg0
}
