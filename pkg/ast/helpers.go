package ast

// Short builder helpers, mainly for tests and embedded programs. All of them
// produce nodes at line 0; use the New* constructors when line numbers
// matter.

func Blk(instrs ...Expr) *Block {
	return NewBlock(instrs, 0)
}

func Int(v int32) *Literal {
	return NewLiteral(v, 0)
}

func Str(s string) *Literal {
	return NewLiteral(s, 0)
}

func Bool(b bool) *Literal {
	return NewLiteral(b, 0)
}

func Var(name string) *LocalVarAccess {
	return NewLocalVarAccess(name, 0)
}

// Decl is `var name = expr`.
func Decl(name string, expr Expr) *LocalVarAssignment {
	return NewLocalVarAssignment(name, expr, true, 0)
}

// Set is `name = expr` on an already declared variable.
func Set(name string, expr Expr) *LocalVarAssignment {
	return NewLocalVarAssignment(name, expr, false, 0)
}

func Func(name string, parameters []string, body *Block) *Fun {
	return NewFun(name, parameters, body, 0)
}

func Lambda(parameters []string, body *Block) *Fun {
	return NewFun("", parameters, body, 0)
}

func Call(qualifier Expr, args ...Expr) *FunCall {
	return NewFunCall(qualifier, args, 0)
}

// Op calls a global operator function such as "+" or "==".
func Op(name string, args ...Expr) *FunCall {
	return NewFunCall(Var(name), args, 0)
}

func Ret(expr Expr) *Return {
	return NewReturn(expr, 0)
}

func Cond(condition Expr, trueBlock, falseBlock *Block) *If {
	return NewIf(condition, trueBlock, falseBlock, 0)
}

func Init(name string, expr Expr) FieldInitializer {
	return FieldInitializer{Name: name, Expr: expr}
}

func Obj(initializers ...FieldInitializer) *New {
	return NewNew(initializers, 0)
}

func Field(receiver Expr, name string) *FieldAccess {
	return NewFieldAccess(receiver, name, 0)
}

func SetField(receiver Expr, name string, expr Expr) *FieldAssignment {
	return NewFieldAssignment(receiver, name, expr, 0)
}

func Method(receiver Expr, name string, args ...Expr) *MethodCall {
	return NewMethodCall(receiver, name, args, 0)
}
