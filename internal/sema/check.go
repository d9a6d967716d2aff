// Package sema applies the type system to expressions: it resolves names and
// members through the symbol table, picks overloads, substitutes type
// arguments and reports every incompatible coercion as a diagnostic.
//
// A Checker never stops at the first error. An expression whose type cannot
// be determined gets a nil type, and checks depending on it are skipped so
// one mistake yields one diagnostic.
package sema

import (
	"fmt"

	"cito/internal/diag"
	"cito/internal/source"
	"cito/internal/symbols"
	"cito/internal/system"
	"cito/internal/types"
)

// Options configure a Checker.
type Options struct {
	Env *system.Env
	// Table is the program table forked from Env; nil checks against Env alone.
	Table *symbols.Table
	// Scope is where names resolve; NoScopeID means the environment scope.
	Scope    symbols.ScopeID
	Reporter diag.Reporter
}

// Checker checks expressions in one scope.
type Checker struct {
	env      *system.Env
	table    *symbols.Table
	scope    symbols.ScopeID
	reporter diag.Reporter
}

// NewChecker builds a checker from opts.
func NewChecker(opts Options) *Checker {
	c := &Checker{env: opts.Env, table: opts.Table, scope: opts.Scope, reporter: opts.Reporter}
	if c.env == nil {
		c.env = system.Default()
	}
	if c.table == nil {
		c.table = c.env.Table
	}
	if !c.scope.IsValid() {
		c.scope = c.env.Scope
	}
	return c
}

func (c *Checker) errorf(code diag.Code, pos source.Pos, format string, args ...any) {
	if c.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(c.reporter, code, pos, msg); b != nil {
		b.Emit()
	}
}

// Coerce checks that a value of type src may be stored where target is
// expected. A nil operand stands for an earlier error and passes silently.
func (c *Checker) Coerce(pos source.Pos, src, target *types.Type) bool {
	if src == nil || target == nil {
		return false
	}
	if target.IsAssignableFrom(src) {
		return true
	}
	c.errorf(diag.SemaTypeMismatch, pos, "Cannot coerce %s to %s", src, target)
	return false
}
