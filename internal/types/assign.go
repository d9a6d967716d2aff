package types

// IsAssignableFrom reports whether a value of type src may be stored where t
// is expected. It is the single compatibility predicate for assignments,
// arguments and returns.
func (t *Type) IsAssignableFrom(src *Type) bool {
	mustComparable(t, src)
	if t == src {
		return true
	}
	switch t.kind {
	case KindInteger:
		return src.IsInteger() || src == FloatInt
	case KindRange:
		switch src.kind {
		case KindRange:
			return t.min <= src.max && t.max >= src.min
		case KindInteger:
			return true
		default:
			return src == FloatInt
		}
	case KindFloating:
		return src.IsNumeric()
	case KindPrintable:
		return src.IsString() || src.IsNumeric()
	case KindClass:
		return t.classAssignableFrom(src)
	default:
		return false
	}
}

func (t *Type) classAssignableFrom(src *Type) bool {
	if src == Null {
		return t.IsNullable()
	}
	if src.kind != KindClass {
		return false
	}
	switch t.qual {
	case QualPointer:
		return t.assignableFromClass(src)
	case QualReadWrite:
		// A read-only pointer never gains write access.
		if src.qual == QualPointer || src.isStringStorage() {
			return false
		}
		return t.assignableFromClass(src)
	case QualStorage:
		if t.IsString() {
			return src.IsString()
		}
		return src.qual == QualStorage && t.class == src.class && t.equalTypeArgs(src)
	case QualDynamic:
		return src.qual == QualDynamic && t.assignableFromClass(src)
	case QualArrayStorage:
		return src.qual == QualArrayStorage && t.class == src.class && t.equalTypeArgs(src)
	default:
		return false
	}
}

func (t *Type) assignableFromClass(src *Type) bool {
	return t.class.IsSameOrBaseOf(src.class) && t.equalTypeArgs(src)
}

func (t *Type) equalTypeArgs(src *Type) bool {
	switch t.class.TypeParams {
	case 0:
		return true
	case 1:
		return t.arg0.EqualsType(src.arg0)
	case 2:
		return t.arg0.EqualsType(src.arg0) && t.arg1.EqualsType(src.arg1)
	default:
		fault(ErrTooManyTypeParams, "%s", t.class.Name)
		return false
	}
}

// EqualsType is exact structural equality: same range bounds, or same class,
// qualifier and type arguments (and length for array storage). Other types
// compare by identity.
func (t *Type) EqualsType(other *Type) bool {
	mustComparable(t, other)
	switch t.kind {
	case KindRange:
		return other.kind == KindRange && t.min == other.min && t.max == other.max
	case KindClass:
		if other.kind != KindClass || t.qual != other.qual {
			return false
		}
		if t.qual == QualArrayStorage {
			return t.length == other.length && t.arg0.EqualsType(other.arg0)
		}
		return t.class == other.class && t.equalTypeArgs(other)
	default:
		return t == other
	}
}

func mustComparable(a, b *Type) {
	if a == nil || b == nil {
		panic("types: comparing nil type")
	}
	if a.kind == KindTypeParam {
		fault(ErrUnresolvedTypeParam, "%s", a)
	}
	if b.kind == KindTypeParam {
		fault(ErrUnresolvedTypeParam, "%s", b)
	}
}
