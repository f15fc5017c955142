package runtime

// Environment is a scope frame: a runtime object specialized with a parent
// link forming the lexical chain. One frame exists per function invocation
// (child of the function's defining environment) plus the parentless root.
type Environment struct {
	object *Object
	parent *Environment
}

// NewEnvironment creates a scope frame, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{object: NewObject(), parent: parent}
}

// Parent exposes the lexical parent (nil when root).
func (e *Environment) Parent() *Environment { return e.parent }

// Object exposes the backing property table. The bootstrap binds it as
// `global` for the root frame.
func (e *Environment) Object() *Object { return e.object }

// Define inserts or overwrites a binding in this frame.
func (e *Environment) Define(name string, value Value) {
	e.object.Register(name, value)
}

// Binding walks the chain and reports the bound value and whether any frame
// holds the name. This is the storage-layer form; Lookup is the language
// surface.
func (e *Environment) Binding(name string) (Value, bool) {
	if v, ok := e.object.Slot(name); ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Binding(name)
	}
	return Undefined, false
}

// Lookup walks the chain and coerces absence to Undefined; it never fails.
func (e *Environment) Lookup(name string) Value {
	v, _ := e.Binding(name)
	return v
}

// Assign updates the binding in the first frame that holds it, walking
// outward. Assignment to a name bound nowhere is a BindingError.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.object.Slot(name); ok {
		e.object.Register(name, value)
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return &BindingError{Name: name}
}

// Keys returns this frame's bindings in insertion order (for diagnostics and
// tests; parents are not consulted).
func (e *Environment) Keys() []string {
	return e.object.Keys()
}
