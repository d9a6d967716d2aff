package ast

// Priority is the binding strength of an operator. A generator passes the
// priority of the enclosing context down to each operand and parenthesizes
// the operand when its own priority is lower.
type Priority uint8

const (
	PriorityStatement Priority = iota
	PriorityArgument
	PriorityAssign
	PrioritySelect
	PrioritySelectCond
	PriorityCondOr
	PriorityCondAnd
	PriorityOr
	PriorityXor
	PriorityAnd
	PriorityEquality
	PriorityRel
	PriorityShift
	PriorityAdd
	PriorityMul
	PriorityPrimary
)

// Tighter returns the next stronger priority, used for the right operand of
// left-associative operators.
func (p Priority) Tighter() Priority {
	if p >= PriorityPrimary {
		return PriorityPrimary
	}
	return p + 1
}
