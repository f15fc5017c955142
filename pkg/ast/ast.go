package ast

type NodeType string

const (
	NodeBlock              NodeType = "Block"
	NodeLiteral            NodeType = "Literal"
	NodeLocalVarAccess     NodeType = "LocalVarAccess"
	NodeLocalVarAssignment NodeType = "LocalVarAssignment"
	NodeFun                NodeType = "Fun"
	NodeFunCall            NodeType = "FunCall"
	NodeReturn             NodeType = "Return"
	NodeIf                 NodeType = "If"
	NodeNew                NodeType = "New"
	NodeFieldAccess        NodeType = "FieldAccess"
	NodeFieldAssignment    NodeType = "FieldAssignment"
	NodeMethodCall         NodeType = "MethodCall"
)

// Node is the shared behaviour of every program-tree node. Line numbers are
// carried for diagnostics only; they never affect evaluation.
type Node interface {
	NodeType() NodeType
	LineNumber() int
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Line int      `json:"line,omitempty"`
}

func newNodeImpl(kind NodeType, line int) nodeImpl {
	return nodeImpl{Type: kind, Line: line}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) LineNumber() int    { return n.Line }
func (nodeImpl) isNode()              {}

// Expr marks the evaluable node variants. Every node in this language is an
// expression; statements are expressions whose value is discarded.
type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

// Script is the root of a parsed program: a single top-level block.
type Script struct {
	Body *Block `json:"body"`
}

func NewScript(body *Block) *Script {
	return &Script{Body: body}
}

// Block evaluates its instructions in sequence and yields undefined. Blocks
// do not open a new scope; only function invocations do.
type Block struct {
	nodeImpl
	exprMarker

	Instrs []Expr `json:"instrs"`
}

func NewBlock(instrs []Expr, line int) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, line), Instrs: instrs}
}

// Literal embeds a constant. Value is one of int32, string, or bool; the
// decoder and the constructors below are the only producers.
type Literal struct {
	nodeImpl
	exprMarker

	Value any `json:"value"`
}

func NewLiteral(value any, line int) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral, line), Value: value}
}

// LocalVarAccess reads a variable through the scope chain.
type LocalVarAccess struct {
	nodeImpl
	exprMarker

	Name string `json:"name"`
}

func NewLocalVarAccess(name string, line int) *LocalVarAccess {
	return &LocalVarAccess{nodeImpl: newNodeImpl(NodeLocalVarAccess, line), Name: name}
}

// LocalVarAssignment declares (Declaration true) or assigns a variable.
type LocalVarAssignment struct {
	nodeImpl
	exprMarker

	Name        string `json:"name"`
	Expr        Expr   `json:"expr"`
	Declaration bool   `json:"declaration"`
}

func NewLocalVarAssignment(name string, expr Expr, declaration bool, line int) *LocalVarAssignment {
	return &LocalVarAssignment{nodeImpl: newNodeImpl(NodeLocalVarAssignment, line), Name: name, Expr: expr, Declaration: declaration}
}

// Fun is a function expression. A non-empty Name also registers the function
// in the defining scope, which is what makes named recursion work.
type Fun struct {
	nodeImpl
	exprMarker

	Name       string   `json:"name,omitempty"`
	Parameters []string `json:"parameters"`
	Body       *Block   `json:"body"`
}

func NewFun(name string, parameters []string, body *Block, line int) *Fun {
	return &Fun{nodeImpl: newNodeImpl(NodeFun, line), Name: name, Parameters: parameters, Body: body}
}

// FunCall invokes the value of Qualifier with no receiver.
type FunCall struct {
	nodeImpl
	exprMarker

	Qualifier Expr   `json:"qualifier"`
	Args      []Expr `json:"args"`
}

func NewFunCall(qualifier Expr, args []Expr, line int) *FunCall {
	return &FunCall{nodeImpl: newNodeImpl(NodeFunCall, line), Qualifier: qualifier, Args: args}
}

// Return unwinds to the nearest enclosing function invocation.
type Return struct {
	nodeImpl
	exprMarker

	Expr Expr `json:"expr"`
}

func NewReturn(expr Expr, line int) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn, line), Expr: expr}
}

// If routes to FalseBlock when the condition is the integer 0 and to
// TrueBlock otherwise.
type If struct {
	nodeImpl
	exprMarker

	Condition  Expr   `json:"condition"`
	TrueBlock  *Block `json:"trueBlock"`
	FalseBlock *Block `json:"falseBlock"`
}

func NewIf(condition Expr, trueBlock, falseBlock *Block, line int) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf, line), Condition: condition, TrueBlock: trueBlock, FalseBlock: falseBlock}
}

// FieldInitializer is one `name: expr` entry of an object literal. Order is
// declaration order and is preserved through evaluation.
type FieldInitializer struct {
	Name string `json:"name"`
	Expr Expr   `json:"expr"`
}

// New allocates a fresh object from an ordered field initializer list.
type New struct {
	nodeImpl
	exprMarker

	Initializers []FieldInitializer `json:"initializers"`
}

func NewNew(initializers []FieldInitializer, line int) *New {
	return &New{nodeImpl: newNodeImpl(NodeNew, line), Initializers: initializers}
}

// FieldAccess reads a property from the receiver object only; there is no
// prototype chain to consult.
type FieldAccess struct {
	nodeImpl
	exprMarker

	Receiver Expr   `json:"receiver"`
	Name     string `json:"name"`
}

func NewFieldAccess(receiver Expr, name string, line int) *FieldAccess {
	return &FieldAccess{nodeImpl: newNodeImpl(NodeFieldAccess, line), Receiver: receiver, Name: name}
}

// FieldAssignment writes a property on the receiver object.
type FieldAssignment struct {
	nodeImpl
	exprMarker

	Receiver Expr   `json:"receiver"`
	Name     string `json:"name"`
	Expr     Expr   `json:"expr"`
}

func NewFieldAssignment(receiver Expr, name string, expr Expr, line int) *FieldAssignment {
	return &FieldAssignment{nodeImpl: newNodeImpl(NodeFieldAssignment, line), Receiver: receiver, Name: name, Expr: expr}
}

// MethodCall invokes a property of the receiver with the receiver bound as
// `this`.
type MethodCall struct {
	nodeImpl
	exprMarker

	Receiver Expr   `json:"receiver"`
	Name     string `json:"name"`
	Args     []Expr `json:"args"`
}

func NewMethodCall(receiver Expr, name string, args []Expr, line int) *MethodCall {
	return &MethodCall{nodeImpl: newNodeImpl(NodeMethodCall, line), Receiver: receiver, Name: name, Args: args}
}
