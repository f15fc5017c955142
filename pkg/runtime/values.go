package runtime

import (
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindInt
	KindBool
	KindString
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindInt:
		return "integer"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// UndefinedValue is the unique "no value" sentinel. It is a legitimate,
// storable value; absence at the storage layer is a separate notion, see
// Object.Slot and Environment.Binding.
type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

// Undefined is the canonical instance; all undefineds compare equal.
var Undefined Value = UndefinedValue{}

func IsUndefined(v Value) bool {
	_, ok := v.(UndefinedValue)
	return ok
}

// IntValue wraps the language's sole numeric type, a fixed-width 32-bit
// integer with wrapping overflow.
type IntValue struct {
	Val int32
}

func (v IntValue) Kind() Kind { return KindInt }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// ToString renders the textual form used by print and diagnostics.
func ToString(v Value) string {
	switch val := v.(type) {
	case UndefinedValue:
		return "undefined"
	case IntValue:
		return strconv.FormatInt(int64(val.Val), 10)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case StringValue:
		return val.Val
	case *Object:
		if val.Callable() {
			return "function " + val.Name()
		}
		var b strings.Builder
		b.WriteString("{")
		for idx, key := range val.Keys() {
			if idx > 0 {
				b.WriteString(",")
			}
			b.WriteString(" ")
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(ToString(val.Lookup(key)))
		}
		if val.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("}")
		return b.String()
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// Equals is structural equality over the value union. Objects compare by
// identity; everything else by content.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case UndefinedValue:
		return IsUndefined(b)
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	default:
		return false
	}
}
