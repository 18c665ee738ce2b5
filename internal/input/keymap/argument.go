package keymap

import (
	"strconv"
)

// ArgKind identifies which value an Argument carries.
type ArgKind uint8

const (
	// ArgNone is an empty argument.
	ArgNone ArgKind = iota
	// ArgInt is an integer argument.
	ArgInt
	// ArgFloat is a floating point argument.
	ArgFloat
	// ArgString is a string argument.
	ArgString
)

// String returns a string representation of the kind.
func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	case ArgFloat:
		return "float"
	case ArgString:
		return "string"
	default:
		return "none"
	}
}

// Argument is the fixed argument passed to an action: an integer, a float,
// or a string. The zero value carries nothing.
type Argument struct {
	kind ArgKind
	i    int
	f    float64
	s    string
}

// IntArg returns an integer argument.
func IntArg(i int) Argument {
	return Argument{kind: ArgInt, i: i}
}

// FloatArg returns a float argument.
func FloatArg(f float64) Argument {
	return Argument{kind: ArgFloat, f: f}
}

// StringArg returns a string argument.
func StringArg(s string) Argument {
	return Argument{kind: ArgString, s: s}
}

// Kind returns the kind of value held.
func (a Argument) Kind() ArgKind {
	return a.kind
}

// Int returns the integer value and whether the argument is an integer.
func (a Argument) Int() (int, bool) {
	return a.i, a.kind == ArgInt
}

// Float returns the float value and whether the argument is a float.
func (a Argument) Float() (float64, bool) {
	return a.f, a.kind == ArgFloat
}

// Str returns the string value and whether the argument is a string.
func (a Argument) Str() (string, bool) {
	return a.s, a.kind == ArgString
}

// Number returns the argument as a float for int and float arguments.
func (a Argument) Number() (float64, bool) {
	switch a.kind {
	case ArgInt:
		return float64(a.i), true
	case ArgFloat:
		return a.f, true
	default:
		return 0, false
	}
}

// String returns a representation suitable for display; strings are quoted
// with Go escapes so control bytes stay visible.
func (a Argument) String() string {
	switch a.kind {
	case ArgInt:
		return strconv.Itoa(a.i)
	case ArgFloat:
		return strconv.FormatFloat(a.f, 'g', -1, 64)
	case ArgString:
		return strconv.Quote(a.s)
	default:
		return ""
	}
}
