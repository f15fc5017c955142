package interpreter

import (
	"fmt"
	"io"

	"smalljs/interpreter-go/pkg/ast"
	"smalljs/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of smalljs program trees against a root
// environment. Each Interpreter is an independent session; nothing is shared
// between instances.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// New returns an interpreter with a bootstrapped root environment whose
// print builtin writes to out.
func New(out io.Writer) *Interpreter {
	interp := &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    out,
	}
	interp.registerGlobals()
	return interp
}

// GlobalEnvironment returns the interpreter's root environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret evaluates a script in a fresh session. It returns nil on success
// or the failure that aborted evaluation.
func Interpret(script *ast.Script, out io.Writer) error {
	return New(out).Run(script)
}

// Run evaluates the script's top-level block in this session's root
// environment.
func (i *Interpreter) Run(script *ast.Script) error {
	if script == nil || script.Body == nil {
		return fmt.Errorf("script has no body")
	}
	if _, err := i.evaluate(script.Body, i.global); err != nil {
		if _, ok := err.(returnSignal); ok {
			return fmt.Errorf("return outside function")
		}
		return err
	}
	return nil
}

// evaluate maps each node variant to its semantic action. Control flow and
// failures both travel the error channel; returnSignal is the only error
// that is not a failure.
func (i *Interpreter) evaluate(node ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.Literal:
		return literalValue(n)
	case *ast.LocalVarAccess:
		return env.Lookup(n.Name), nil
	case *ast.LocalVarAssignment:
		return i.evaluateLocalVarAssignment(n, env)
	case *ast.Fun:
		fn := i.buildFunction(n, env)
		if n.Name != "" {
			env.Define(n.Name, fn)
		}
		return fn, nil
	case *ast.FunCall:
		return i.evaluateFunCall(n, env)
	case *ast.Return:
		value, err := i.evaluate(n.Expr, env)
		if err != nil {
			return nil, err
		}
		return nil, returnSignal{value: value}
	case *ast.If:
		return i.evaluateIf(n, env)
	case *ast.New:
		return i.evaluateNew(n, env)
	case *ast.FieldAccess:
		obj, err := i.evaluateReceiver(n.Receiver, env, n.LineNumber())
		if err != nil {
			return nil, err
		}
		return obj.Lookup(n.Name), nil
	case *ast.FieldAssignment:
		return i.evaluateFieldAssignment(n, env)
	case *ast.MethodCall:
		return i.evaluateMethodCall(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

// evaluateBlock runs the instructions in sequence in the current frame.
// Blocks do not open scopes; only function invocations do. Intermediate
// results are discarded and the block yields undefined.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) (runtime.Value, error) {
	for _, instr := range block.Instrs {
		if _, err := i.evaluate(instr, env); err != nil {
			return nil, err
		}
	}
	return runtime.Undefined, nil
}

func literalValue(lit *ast.Literal) (runtime.Value, error) {
	switch v := lit.Value.(type) {
	case int32:
		return runtime.IntValue{Val: v}, nil
	case string:
		return runtime.StringValue{Val: v}, nil
	case bool:
		return runtime.BoolValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("invalid literal payload %T at line %d", lit.Value, lit.LineNumber())
	}
}

// evaluateLocalVarAssignment enforces the declare/assign discipline: a
// declaration must not see an existing non-undefined binding anywhere on the
// chain, an assignment must. Declarations bind in the current frame;
// assignments write through to the frame that owns the binding.
func (i *Interpreter) evaluateLocalVarAssignment(n *ast.LocalVarAssignment, env *runtime.Environment) (runtime.Value, error) {
	bound := !runtime.IsUndefined(env.Lookup(n.Name))
	if n.Declaration && bound {
		return nil, &runtime.BindingError{Line: n.LineNumber(), Name: n.Name, Redeclaration: true}
	}
	if !n.Declaration && !bound {
		return nil, &runtime.BindingError{Line: n.LineNumber(), Name: n.Name}
	}
	value, err := i.evaluate(n.Expr, env)
	if err != nil {
		return nil, err
	}
	if n.Declaration {
		env.Define(n.Name, value)
		return runtime.Undefined, nil
	}
	if err := env.Assign(n.Name, value); err != nil {
		return nil, runtime.WithLine(err, n.LineNumber())
	}
	return runtime.Undefined, nil
}

// buildFunction closes over the defining environment, the parameter list,
// and the body. The invocation protocol: fresh frame under the defining env,
// `this` bound to the receiver, parameters bound positionally, body
// evaluated there; a return signal becomes the result, fallthrough yields
// undefined.
func (i *Interpreter) buildFunction(decl *ast.Fun, defEnv *runtime.Environment) *runtime.Object {
	name := decl.Name
	if name == "" {
		name = "lambda"
	}
	return runtime.NewFunction(name, len(decl.Parameters), func(receiver runtime.Value, args []runtime.Value) (runtime.Value, error) {
		localEnv := runtime.NewEnvironment(defEnv)
		localEnv.Define("this", receiver)
		for idx, param := range decl.Parameters {
			localEnv.Define(param, args[idx])
		}
		if _, err := i.evaluate(decl.Body, localEnv); err != nil {
			if ret, ok := err.(returnSignal); ok {
				return ret.value, nil
			}
			return nil, err
		}
		return runtime.Undefined, nil
	})
}

func (i *Interpreter) evaluateFunCall(call *ast.FunCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(call.Qualifier, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*runtime.Object)
	if !ok || !fn.Callable() {
		return nil, &runtime.TypeError{Line: call.LineNumber(), Expected: "function", Actual: runtime.ToString(callee)}
	}
	args, err := i.evaluateArgs(call.Args, env)
	if err != nil {
		return nil, err
	}
	result, err := fn.Invoke(runtime.Undefined, args)
	if err != nil {
		return nil, runtime.WithLine(err, call.LineNumber())
	}
	return result, nil
}

func (i *Interpreter) evaluateArgs(exprs []ast.Expr, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		value, err := i.evaluate(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

// evaluateIf applies the sole falsy rule: an integer condition equal to 0
// routes to the false block, any other integer to the true block. Non-integer
// conditions are a type error rather than silent truthiness.
func (i *Interpreter) evaluateIf(expr *ast.If, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluate(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	iv, ok := cond.(runtime.IntValue)
	if !ok {
		return nil, &runtime.TypeError{Line: expr.Condition.LineNumber(), Expected: "integer condition", Actual: runtime.ToString(cond)}
	}
	if iv.Val == 0 {
		return i.evaluate(expr.FalseBlock, env)
	}
	return i.evaluate(expr.TrueBlock, env)
}

// evaluateNew allocates a parentless object and registers each field in
// declaration order, evaluating initializers in the current environment.
func (i *Interpreter) evaluateNew(expr *ast.New, env *runtime.Environment) (runtime.Value, error) {
	obj := runtime.NewObject()
	for _, init := range expr.Initializers {
		value, err := i.evaluate(init.Expr, env)
		if err != nil {
			return nil, err
		}
		obj.Register(init.Name, value)
	}
	return obj, nil
}

func (i *Interpreter) evaluateFieldAssignment(n *ast.FieldAssignment, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateReceiver(n.Receiver, env, n.LineNumber())
	if err != nil {
		return nil, err
	}
	value, err := i.evaluate(n.Expr, env)
	if err != nil {
		return nil, err
	}
	obj.Register(n.Name, value)
	return runtime.Undefined, nil
}

func (i *Interpreter) evaluateMethodCall(call *ast.MethodCall, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateReceiver(call.Receiver, env, call.LineNumber())
	if err != nil {
		return nil, err
	}
	method := obj.Lookup(call.Name)
	fn, ok := method.(*runtime.Object)
	if !ok || !fn.Callable() {
		return nil, &runtime.TypeError{Line: call.LineNumber(), Expected: "function", Actual: runtime.ToString(method)}
	}
	args, err := i.evaluateArgs(call.Args, env)
	if err != nil {
		return nil, err
	}
	result, err := fn.Invoke(obj, args)
	if err != nil {
		return nil, runtime.WithLine(err, call.LineNumber())
	}
	return result, nil
}

func (i *Interpreter) evaluateReceiver(expr ast.Expr, env *runtime.Environment, line int) (*runtime.Object, error) {
	value, err := i.evaluate(expr, env)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(*runtime.Object)
	if !ok {
		return nil, &runtime.TypeError{Line: line, Expected: "object", Actual: runtime.ToString(value)}
	}
	return obj, nil
}

// returnSignal unwinds exactly one function-invocation boundary. It is
// expected control flow, not a failure, and must never escape a function.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }
