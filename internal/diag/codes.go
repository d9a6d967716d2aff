package diag

import "fmt"

// Code identifies a kind of diagnostic. Codes are grouped by thousands.
type Code uint16

const (
	UnknownCode Code = 0

	// Type expressions
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnknownType     Code = 2002
	SynTypeArgCount    Code = 2003
	SynBadArrayLength  Code = 2004
	SynBadRange        Code = 2005

	// Type checks
	SemaInfo              Code = 3000
	SemaTypeMismatch      Code = 3001
	SemaUnresolvedSymbol  Code = 3002
	SemaUnknownMember     Code = 3003
	SemaArgumentCount     Code = 3004
	SemaMemberNotVisible  Code = 3005
	SemaMutatorOnReadOnly Code = 3006
	SemaNotApplicable     Code = 3007
	SemaStaticMismatch    Code = 3008
	SemaMethodAsValue     Code = 3009

	// Input files
	IOLoadFileError  Code = 4001
	IOQueryFileError Code = 4002

	// Target generators
	GenUnsupported Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	SynInfo:               "Type syntax information",
	SynUnexpectedToken:    "Unexpected token in type",
	SynUnknownType:        "Unknown type name",
	SynTypeArgCount:       "Wrong number of type arguments",
	SynBadArrayLength:     "Invalid array length",
	SynBadRange:           "Invalid range bounds",
	SemaInfo:              "Semantic information",
	SemaTypeMismatch:      "Type mismatch",
	SemaUnresolvedSymbol:  "Unresolved symbol",
	SemaUnknownMember:     "Unknown member",
	SemaArgumentCount:     "Wrong number of arguments",
	SemaMemberNotVisible:  "Member not available for this element type",
	SemaMutatorOnReadOnly: "Mutating method called through a read-only reference",
	SemaNotApplicable:     "Method does not apply to this type argument",
	SemaStaticMismatch:    "Static and instance access mixed up",
	SemaMethodAsValue:     "Method used as a value",
	IOLoadFileError:       "I/O load file error",
	IOQueryFileError:      "Invalid query file",
	GenUnsupported:        "Construct unsupported by target",
}

// ID returns the stable short form, e.g. SEM3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
