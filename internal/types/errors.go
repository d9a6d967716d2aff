package types

import (
	"errors"
	"fmt"
)

// Defensive faults. These flag bugs in the front end or in this package and
// are raised with panic, never reported to the user.
var (
	ErrMalformedRange      = errors.New("malformed range")
	ErrTooManyTypeParams   = errors.New("too many type parameters")
	ErrUnresolvedTypeParam = errors.New("unresolved type parameter")
)

func fault(err error, format string, args ...any) {
	panic(fmt.Errorf("types: "+format+": %w", append(args, err)...))
}

// MustResolved panics when t still carries a generic placeholder.
func MustResolved(t *Type) *Type {
	if t.HasTypeParam() {
		fault(ErrUnresolvedTypeParam, "%s", t)
	}
	return t
}

// HasTypeParam reports whether a placeholder occurs anywhere in t.
func (t *Type) HasTypeParam() bool {
	if t == nil {
		return false
	}
	switch t.kind {
	case KindTypeParam:
		return true
	case KindClass:
		return t.arg0.HasTypeParam() || t.arg1.HasTypeParam()
	default:
		return false
	}
}
