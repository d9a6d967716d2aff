// Package typeexpr parses Ci type descriptions such as "List<string>!",
// "byte[10]", "Match#" and "(0 .. 255)" into types, resolving names against
// the built-in environment or a program scope stacked on it. The grammar is
// the inverse of types.Type.String, so rendering a parsed type yields the
// canonical spelling of its input.
//
//	type   = base { array }
//	base   = range | number | "null" | "void" | name [ args ] [ "!" | "#" | "()" ]
//	args   = "<" type [ "," type ] ">"
//	range  = "(" number ".." number ")"
//	array  = "[" [ number ] "]" [ "!" | "#" ]
package typeexpr
