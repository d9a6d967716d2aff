package intrinsic

import "fmt"

// ID tags a built-in class, method or member. Generators switch on it instead of
// the display name because overloads share names.
type ID uint16

const (
	None ID = iota

	StringClass
	ArrayPtrClass
	ArrayStorageClass
	ListClass
	QueueClass
	StackClass
	HashSetClass
	DictionaryClass
	SortedDictionaryClass
	OrderedDictionaryClass
	LockClass
	RegexClass
	MatchClass

	ConsoleError
	ConsoleWrite
	ConsoleWriteLine

	StringContains
	StringEndsWith
	StringIndexOf
	StringLastIndexOf
	StringLength
	StringReplace
	StringStartsWith
	StringSubstring

	ArrayBinarySearchAll
	ArrayBinarySearchPart
	ArrayCopyTo
	ArrayFillAll
	ArrayFillPart
	ArrayLength
	ArraySortAll
	ArraySortPart

	ListAdd
	ListAny
	ListClear
	ListContains
	ListCopyTo
	ListCount
	ListInsert
	ListRemoveAt
	ListRemoveRange
	ListSortAll
	ListSortPart

	QueueClear
	QueueCount
	QueueDequeue
	QueueEnqueue
	QueuePeek

	StackClear
	StackCount
	StackPeek
	StackPush
	StackPop

	HashSetAdd
	HashSetClear
	HashSetContains
	HashSetCount
	HashSetRemove

	DictionaryAdd
	DictionaryClear
	DictionaryContainsKey
	DictionaryCount
	DictionaryRemove

	SortedDictionaryClear
	SortedDictionaryContainsKey
	SortedDictionaryCount
	SortedDictionaryRemove

	OrderedDictionaryClear
	OrderedDictionaryContainsKey
	OrderedDictionaryCount
	OrderedDictionaryRemove

	UTF8GetByteCount
	UTF8GetBytes
	UTF8GetString

	EnvironmentGetEnvironmentVariable

	RegexEscape
	RegexIsMatchStr
	RegexIsMatchRegex
	RegexCompile

	MatchFindStr
	MatchFindRegex
	MatchStart
	MatchEnd
	MatchGetCapture
	MatchLength
	MatchValue

	MathMethod
	MathCeiling
	MathFusedMultiplyAdd
	MathIsFinite
	MathIsInfinity
	MathIsNaN
	MathLog2
	MathNaN
	MathNegativeInfinity
	MathPositiveInfinity
	MathTruncate
)

var idNames = [...]string{
	None:                              "None",
	StringClass:                       "StringClass",
	ArrayPtrClass:                     "ArrayPtrClass",
	ArrayStorageClass:                 "ArrayStorageClass",
	ListClass:                         "ListClass",
	QueueClass:                        "QueueClass",
	StackClass:                        "StackClass",
	HashSetClass:                      "HashSetClass",
	DictionaryClass:                   "DictionaryClass",
	SortedDictionaryClass:             "SortedDictionaryClass",
	OrderedDictionaryClass:            "OrderedDictionaryClass",
	LockClass:                         "LockClass",
	RegexClass:                        "RegexClass",
	MatchClass:                        "MatchClass",
	ConsoleError:                      "ConsoleError",
	ConsoleWrite:                      "ConsoleWrite",
	ConsoleWriteLine:                  "ConsoleWriteLine",
	StringContains:                    "StringContains",
	StringEndsWith:                    "StringEndsWith",
	StringIndexOf:                     "StringIndexOf",
	StringLastIndexOf:                 "StringLastIndexOf",
	StringLength:                      "StringLength",
	StringReplace:                     "StringReplace",
	StringStartsWith:                  "StringStartsWith",
	StringSubstring:                   "StringSubstring",
	ArrayBinarySearchAll:              "ArrayBinarySearchAll",
	ArrayBinarySearchPart:             "ArrayBinarySearchPart",
	ArrayCopyTo:                       "ArrayCopyTo",
	ArrayFillAll:                      "ArrayFillAll",
	ArrayFillPart:                     "ArrayFillPart",
	ArrayLength:                       "ArrayLength",
	ArraySortAll:                      "ArraySortAll",
	ArraySortPart:                     "ArraySortPart",
	ListAdd:                           "ListAdd",
	ListAny:                           "ListAny",
	ListClear:                         "ListClear",
	ListContains:                      "ListContains",
	ListCopyTo:                        "ListCopyTo",
	ListCount:                         "ListCount",
	ListInsert:                        "ListInsert",
	ListRemoveAt:                      "ListRemoveAt",
	ListRemoveRange:                   "ListRemoveRange",
	ListSortAll:                       "ListSortAll",
	ListSortPart:                      "ListSortPart",
	QueueClear:                        "QueueClear",
	QueueCount:                        "QueueCount",
	QueueDequeue:                      "QueueDequeue",
	QueueEnqueue:                      "QueueEnqueue",
	QueuePeek:                         "QueuePeek",
	StackClear:                        "StackClear",
	StackCount:                        "StackCount",
	StackPeek:                         "StackPeek",
	StackPush:                         "StackPush",
	StackPop:                          "StackPop",
	HashSetAdd:                        "HashSetAdd",
	HashSetClear:                      "HashSetClear",
	HashSetContains:                   "HashSetContains",
	HashSetCount:                      "HashSetCount",
	HashSetRemove:                     "HashSetRemove",
	DictionaryAdd:                     "DictionaryAdd",
	DictionaryClear:                   "DictionaryClear",
	DictionaryContainsKey:             "DictionaryContainsKey",
	DictionaryCount:                   "DictionaryCount",
	DictionaryRemove:                  "DictionaryRemove",
	SortedDictionaryClear:             "SortedDictionaryClear",
	SortedDictionaryContainsKey:       "SortedDictionaryContainsKey",
	SortedDictionaryCount:             "SortedDictionaryCount",
	SortedDictionaryRemove:            "SortedDictionaryRemove",
	OrderedDictionaryClear:            "OrderedDictionaryClear",
	OrderedDictionaryContainsKey:      "OrderedDictionaryContainsKey",
	OrderedDictionaryCount:            "OrderedDictionaryCount",
	OrderedDictionaryRemove:           "OrderedDictionaryRemove",
	UTF8GetByteCount:                  "UTF8GetByteCount",
	UTF8GetBytes:                      "UTF8GetBytes",
	UTF8GetString:                     "UTF8GetString",
	EnvironmentGetEnvironmentVariable: "EnvironmentGetEnvironmentVariable",
	RegexEscape:                       "RegexEscape",
	RegexIsMatchStr:                   "RegexIsMatchStr",
	RegexIsMatchRegex:                 "RegexIsMatchRegex",
	RegexCompile:                      "RegexCompile",
	MatchFindStr:                      "MatchFindStr",
	MatchFindRegex:                    "MatchFindRegex",
	MatchStart:                        "MatchStart",
	MatchEnd:                          "MatchEnd",
	MatchGetCapture:                   "MatchGetCapture",
	MatchLength:                       "MatchLength",
	MatchValue:                        "MatchValue",
	MathMethod:                        "MathMethod",
	MathCeiling:                       "MathCeiling",
	MathFusedMultiplyAdd:              "MathFusedMultiplyAdd",
	MathIsFinite:                      "MathIsFinite",
	MathIsInfinity:                    "MathIsInfinity",
	MathIsNaN:                         "MathIsNaN",
	MathLog2:                          "MathLog2",
	MathNaN:                           "MathNaN",
	MathNegativeInfinity:              "MathNegativeInfinity",
	MathPositiveInfinity:              "MathPositiveInfinity",
	MathTruncate:                      "MathTruncate",
}

func (id ID) String() string {
	if int(id) < len(idNames) {
		return idNames[id]
	}
	return fmt.Sprintf("ID(%d)", id)
}

// IsClass reports whether id names a built-in class.
func (id ID) IsClass() bool {
	return id >= StringClass && id <= MatchClass
}

// Parse returns the ID whose name is s.
func Parse(s string) (ID, bool) {
	for i, name := range idNames {
		if name == s {
			return ID(i), true
		}
	}
	return None, false
}

// Count reports the number of defined IDs, None included.
func Count() int { return len(idNames) }
