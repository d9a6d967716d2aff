package ast

import (
	"cito/internal/source"
	"cito/internal/types"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena         *Arena[Expr]
	Literals      *Arena[ExprLiteralData]
	Symbols       *Arena[ExprSymbolData]
	Members       *Arena[ExprMemberData]
	Calls         *Arena[ExprCallData]
	Unaries       *Arena[ExprUnaryData]
	Binaries      *Arena[ExprBinaryData]
	Selects       *Arena[ExprSelectData]
	Interpolateds *Arena[ExprInterpolatedData]

	// StringType is the type of string literals and interpolated strings.
	StringType *types.Type
}

// NewExprs creates expression arenas preallocated with capHint; zero picks
// a default. stringType is the type given to string literals.
func NewExprs(capHint uint, stringType *types.Type) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{
		Arena:         NewArena[Expr](capHint),
		Literals:      NewArena[ExprLiteralData](capHint),
		Symbols:       NewArena[ExprSymbolData](capHint),
		Members:       NewArena[ExprMemberData](capHint),
		Calls:         NewArena[ExprCallData](capHint / 2),
		Unaries:       NewArena[ExprUnaryData](capHint / 4),
		Binaries:      NewArena[ExprBinaryData](capHint / 2),
		Selects:       NewArena[ExprSelectData](0),
		Interpolateds: NewArena[ExprInterpolatedData](0),
		StringType:    stringType,
	}
}

func (e *Exprs) new(kind ExprKind, pos source.Pos, ty *types.Type, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Pos:     pos,
		Type:    ty,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression, or nil for an invalid id.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewSymbol references name. The type is unknown until resolution.
func (e *Exprs) NewSymbol(pos source.Pos, name string) ExprID {
	payload := e.Symbols.Allocate(ExprSymbolData{Name: name})
	return e.new(ExprSymbol, pos, nil, payload)
}

// NewMember accesses name on left.
func (e *Exprs) NewMember(pos source.Pos, left ExprID, name string) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Left: left, Name: name})
	return e.new(ExprMember, pos, nil, payload)
}

// NewStaticMember accesses name on class, e.g. Math.PI.
func (e *Exprs) NewStaticMember(pos source.Pos, class *types.Class, name string) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Class: class, Name: name})
	return e.new(ExprMember, pos, nil, payload)
}

// NewCall calls method, a symbol or member expression, with args.
func (e *Exprs) NewCall(pos source.Pos, method ExprID, args ...ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Method: method, Args: args})
	return e.new(ExprCall, pos, nil, payload)
}

func (e *Exprs) NewUnary(pos source.Pos, op ExprUnaryOp, x ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, X: x})
	return e.new(ExprUnary, pos, nil, payload)
}

func (e *Exprs) NewBinary(pos source.Pos, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, pos, nil, payload)
}

func (e *Exprs) NewSelect(pos source.Pos, cond, onTrue, onFalse ExprID) ExprID {
	payload := e.Selects.Allocate(ExprSelectData{Cond: cond, OnTrue: onTrue, OnFalse: onFalse})
	return e.new(ExprSelect, pos, nil, payload)
}

// NewInterpolated builds an interpolated string. It has the string type.
func (e *Exprs) NewInterpolated(pos source.Pos, parts []InterpolatedPart, suffix string) ExprID {
	payload := e.Interpolateds.Allocate(ExprInterpolatedData{Parts: parts, Suffix: suffix})
	return e.new(ExprInterpolated, pos, e.StringType, payload)
}

// Symbol returns the payload of a symbol expression, or nil.
func (e *Exprs) Symbol(id ExprID) *ExprSymbolData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprSymbol {
		return e.Symbols.Get(uint32(expr.Payload))
	}
	return nil
}

// Member returns the payload of a member expression, or nil.
func (e *Exprs) Member(id ExprID) *ExprMemberData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprMember {
		return e.Members.Get(uint32(expr.Payload))
	}
	return nil
}

func (e *Exprs) Call(id ExprID) *ExprCallData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprCall {
		return e.Calls.Get(uint32(expr.Payload))
	}
	return nil
}

func (e *Exprs) Unary(id ExprID) *ExprUnaryData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprUnary {
		return e.Unaries.Get(uint32(expr.Payload))
	}
	return nil
}

func (e *Exprs) Binary(id ExprID) *ExprBinaryData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprBinary {
		return e.Binaries.Get(uint32(expr.Payload))
	}
	return nil
}

func (e *Exprs) Select(id ExprID) *ExprSelectData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprSelect {
		return e.Selects.Get(uint32(expr.Payload))
	}
	return nil
}

func (e *Exprs) Interpolated(id ExprID) *ExprInterpolatedData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprInterpolated {
		return e.Interpolateds.Get(uint32(expr.Payload))
	}
	return nil
}
