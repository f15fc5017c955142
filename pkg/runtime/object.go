package runtime

// Invoker is the invocation behaviour of a function object: receiver plus
// evaluated arguments in call order.
type Invoker func(receiver Value, args []Value) (Value, error)

// VariadicArity marks a function that accepts any argument count.
const VariadicArity = -1

// Object is the uniform dynamic object: a mutable property table with unique
// keys, plus an optional invocation behaviour for function-kind objects.
// Insertion order is preserved for diagnostics; it has no semantic weight.
type Object struct {
	slots   map[string]Value
	order   []string
	name    string
	arity   int
	invoker Invoker
}

// NewObject allocates a fresh object with no properties.
func NewObject() *Object {
	return &Object{slots: make(map[string]Value)}
}

// NewFunction allocates a function-kind object wrapping the given invocation
// behaviour. arity is the exact expected argument count, or VariadicArity.
func NewFunction(name string, arity int, invoker Invoker) *Object {
	obj := NewObject()
	obj.name = name
	obj.arity = arity
	obj.invoker = invoker
	return obj
}

func (o *Object) Kind() Kind {
	if o.invoker != nil {
		return KindFunction
	}
	return KindObject
}

// Callable reports whether the object carries an invocation behaviour.
func (o *Object) Callable() bool { return o.invoker != nil }

// Name is the function name used in diagnostics; empty for plain objects.
func (o *Object) Name() string { return o.name }

// Arity is the declared parameter count, or VariadicArity.
func (o *Object) Arity() int { return o.arity }

// Register inserts or overwrites the property. It always succeeds.
func (o *Object) Register(name string, value Value) {
	if _, ok := o.slots[name]; !ok {
		o.order = append(o.order, name)
	}
	o.slots[name] = value
}

// Slot is the storage-layer lookup: the bound value and whether the property
// exists at all. Callers that want language-surface semantics use Lookup.
func (o *Object) Slot(name string) (Value, bool) {
	v, ok := o.slots[name]
	return v, ok
}

// Lookup returns the property value, or Undefined when absent. It consults
// this object only; scope-chain lookup lives on Environment.
func (o *Object) Lookup(name string) Value {
	if v, ok := o.slots[name]; ok {
		return v
	}
	return Undefined
}

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.order))
	copy(keys, o.order)
	return keys
}

func (o *Object) Len() int { return len(o.slots) }

// Invoke runs the invocation behaviour after the shared arity check. The
// returned failures carry no line; call sites stamp their own.
func (o *Object) Invoke(receiver Value, args []Value) (Value, error) {
	if o.invoker == nil {
		return nil, &TypeError{Expected: "function", Actual: ToString(o)}
	}
	if o.arity != VariadicArity && len(args) != o.arity {
		return nil, &ArityError{Name: o.name, Want: o.arity, Got: len(args)}
	}
	return o.invoker(receiver, args)
}
