package query

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindText
	KindSubstring
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindSubstring:
		return "substring"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a predicate operand. The set of variants is closed: build one
// with Int, Text or Substring.
type Value struct {
	kind Kind
	i    int64
	s    string
}

// Int is an integer operand.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Text is an operand matched exactly.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Substring is an operand matched anywhere inside the column value.
func Substring(s string) Value { return Value{kind: KindSubstring, s: s} }

func (v Value) Kind() Kind { return v.kind }

// Int64 returns the integer payload; zero for text variants.
func (v Value) Int64() int64 { return v.i }

// Str returns the text payload; empty for the integer variant.
func (v Value) Str() string { return v.s }

func (v Value) String() string {
	if v.kind == KindInt {
		return fmt.Sprintf("%s(%d)", v.kind, v.i)
	}
	return fmt.Sprintf("%s(%q)", v.kind, v.s)
}

// Dialect renders placeholders and encodes operands for one SQL backend.
type Dialect interface {
	// Placeholder returns the marker for the 1-based parameter position.
	Placeholder(position int) string
	// Encode converts a Value into a driver argument.
	Encode(v Value) any
}

// Postgres numbers parameters $1, $2, … and turns substrings into LIKE
// patterns with backslash-escaped wildcards.
var Postgres Dialect = postgres{}

type postgres struct{}

func (postgres) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (postgres) Encode(v Value) any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindSubstring:
		return "%" + likeEscaper.Replace(v.s) + "%"
	default:
		return v.s
	}
}
