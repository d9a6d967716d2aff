package source

import "strconv"

// Pos is a 1-based line in a file. Types and diagnostics only carry lines;
// columns belong to the front end.
type Pos struct {
	File FileID
	Line int
}

// NoPos is the position of synthesized declarations.
var NoPos = Pos{}

// IsValid reports whether the position carries a line.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	return strconv.FormatUint(uint64(p.File), 10) + ":" + strconv.Itoa(p.Line)
}

// Less orders positions by file, then line.
func (p Pos) Less(q Pos) bool {
	if p.File != q.File {
		return p.File < q.File
	}
	return p.Line < q.Line
}
