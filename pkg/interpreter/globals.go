package interpreter

import (
	"fmt"
	"strings"

	"smalljs/interpreter-go/pkg/runtime"
)

// registerGlobals populates the root environment for the initial program:
// the global self-reference, print, and the operator functions. Operators
// are ordinary function objects, so programs call them through the same
// invocation protocol as user functions.
func (i *Interpreter) registerGlobals() {
	global := i.global
	global.Define("global", global.Object())
	global.Define("print", runtime.NewFunction("print", runtime.VariadicArity, i.printBuiltin))

	registerArithmetic(global)
	registerComparisons(global)
}

// printBuiltin joins the textual forms of its arguments with single spaces
// and writes one line to the configured sink.
func (i *Interpreter) printBuiltin(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, runtime.ToString(arg))
	}
	fmt.Fprintln(i.out, strings.Join(parts, " "))
	return runtime.Undefined, nil
}

func registerArithmetic(env *runtime.Environment) {
	intOp := func(name string, op func(a, b int32) (int32, error)) {
		env.Define(name, runtime.NewFunction(name, 2, func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			a, err := intOperand(args[0])
			if err != nil {
				return nil, err
			}
			b, err := intOperand(args[1])
			if err != nil {
				return nil, err
			}
			result, err := op(a, b)
			if err != nil {
				return nil, err
			}
			return runtime.IntValue{Val: result}, nil
		}))
	}

	intOp("+", func(a, b int32) (int32, error) { return a + b, nil })
	intOp("-", func(a, b int32) (int32, error) { return a - b, nil })
	intOp("*", func(a, b int32) (int32, error) { return a * b, nil })
	intOp("/", func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, &runtime.DivisionError{Op: "/"}
		}
		return a / b, nil
	})
	intOp("%", func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, &runtime.DivisionError{Op: "%"}
		}
		return a % b, nil
	})
}

func registerComparisons(env *runtime.Environment) {
	// Comparisons yield integer 1/0, never bool, so their results feed the
	// if condition rule directly.
	env.Define("==", runtime.NewFunction("==", 2, func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return boolInt(runtime.Equals(args[0], args[1])), nil
	}))
	env.Define("!=", runtime.NewFunction("!=", 2, func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return boolInt(!runtime.Equals(args[0], args[1])), nil
	}))

	ordered := func(name string, keep func(cmp int) bool) {
		env.Define(name, runtime.NewFunction(name, 2, func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			cmp, err := compareValues(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return boolInt(keep(cmp)), nil
		}))
	}
	ordered("<", func(cmp int) bool { return cmp < 0 })
	ordered("<=", func(cmp int) bool { return cmp <= 0 })
	ordered(">", func(cmp int) bool { return cmp > 0 })
	ordered(">=", func(cmp int) bool { return cmp >= 0 })
}

func intOperand(v runtime.Value) (int32, error) {
	iv, ok := v.(runtime.IntValue)
	if !ok {
		return 0, &runtime.TypeError{Expected: "integer", Actual: runtime.ToString(v)}
	}
	return iv.Val, nil
}

// compareValues orders mutually comparable operands: integers with integers,
// strings with strings. Anything else is a type error.
func compareValues(a, b runtime.Value) (int, error) {
	switch av := a.(type) {
	case runtime.IntValue:
		if bv, ok := b.(runtime.IntValue); ok {
			switch {
			case av.Val < bv.Val:
				return -1, nil
			case av.Val > bv.Val:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case runtime.StringValue:
		if bv, ok := b.(runtime.StringValue); ok {
			return strings.Compare(av.Val, bv.Val), nil
		}
	}
	return 0, &runtime.TypeError{
		Expected: "comparable operands",
		Actual:   fmt.Sprintf("%s and %s", runtime.ToString(a), runtime.ToString(b)),
	}
}

func boolInt(b bool) runtime.Value {
	if b {
		return runtime.IntValue{Val: 1}
	}
	return runtime.IntValue{Val: 0}
}
