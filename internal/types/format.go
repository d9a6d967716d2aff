package types

import (
	"strconv"
	"strings"
)

// String renders the type the way it is written in Ci source: "(0 .. 255)",
// "List<string>!", "byte[10]", "Regex#".
func (t *Type) String() string {
	if t == nil {
		return "?"
	}
	switch t.kind {
	case KindRange:
		if t.min == t.max {
			return strconv.FormatInt(int64(t.min), 10)
		}
		return "(" + strconv.FormatInt(int64(t.min), 10) + " .. " + strconv.FormatInt(int64(t.max), 10) + ")"
	case KindClass:
		return t.classString()
	default:
		return t.name
	}
}

func (t *Type) classString() string {
	var sb strings.Builder
	if t.IsArray() {
		sb.WriteString(t.arg0.BaseType().String())
		sb.WriteString(t.arraySuffix())
		sb.WriteString(t.arg0.arraySuffix())
		return sb.String()
	}
	sb.WriteString(t.class.Name)
	switch t.class.TypeParams {
	case 0:
	case 1:
		sb.WriteByte('<')
		sb.WriteString(t.arg0.String())
		sb.WriteByte('>')
	case 2:
		sb.WriteByte('<')
		sb.WriteString(t.arg0.String())
		sb.WriteString(", ")
		sb.WriteString(t.arg1.String())
		sb.WriteByte('>')
	default:
		fault(ErrTooManyTypeParams, "%s", t.class.Name)
	}
	sb.WriteString(t.classSuffix())
	return sb.String()
}

func (t *Type) arraySuffix() string {
	if !t.IsArray() {
		return ""
	}
	switch t.qual {
	case QualReadWrite, QualStorage:
		return "[]!"
	case QualDynamic:
		return "[]#"
	case QualArrayStorage:
		return "[" + strconv.Itoa(t.length) + "]"
	default:
		return "[]"
	}
}

func (t *Type) classSuffix() string {
	switch t.qual {
	case QualReadWrite:
		return "!"
	case QualStorage:
		return "()"
	case QualDynamic:
		return "#"
	default:
		return ""
	}
}
