package script

import "sync"

// Method executes one script-level call against a binding.
type Method func(call *Call) (Value, error)

// Call carries one invocation from the dispatcher into a method: the
// receiver (nil for class-level calls), positional arguments, and keyword
// arguments.
type Call struct {
	Recv *Object
	Args []Value
	KW   map[string]Value
}

// Arg returns positional argument i, or nil when absent.
func (c *Call) Arg(i int) Value {
	if i < 0 || i >= len(c.Args) {
		return Nil()
	}
	return c.Args[i]
}

// Kw returns the named keyword argument and whether it was supplied.
func (c *Call) Kw(name string) (Value, bool) {
	v, ok := c.KW[name]
	return v, ok
}

// Class groups the methods and integer constants a binding exposes under
// one script-visible name. Methods and constants are defined during
// initialization and immutable afterwards.
type Class struct {
	Name    string
	methods map[string]Method
	consts  map[string]int64
}

// Define registers a method under name, replacing any previous definition.
func (c *Class) Define(name string, m Method) {
	c.methods[name] = m
}

// Const registers an integer constant under name.
func (c *Class) Const(name string, v int64) {
	c.consts[name] = v
}

// ConstValue looks up an integer constant by name.
func (c *Class) ConstValue(name string) (int64, bool) {
	v, ok := c.consts[name]
	return v, ok
}

// NewObject builds an instance of the class holding data.
func (c *Class) NewObject(data any) *Object {
	return &Object{Class: c, Data: data}
}

// Registry resolves class and method names to binding code. Classes are
// registered at startup; dispatch may then run from a different goroutine,
// so lookups take the read lock.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// DefineClass creates a class under name, or returns the existing one so a
// binding can extend it.
func (r *Registry) DefineClass(name string) *Class {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cls, ok := r.classes[name]; ok {
		return cls
	}
	cls := &Class{
		Name:    name,
		methods: make(map[string]Method),
		consts:  make(map[string]int64),
	}
	r.classes[name] = cls
	return cls
}

// Class looks up a registered class by name.
func (r *Registry) Class(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cls, ok := r.classes[name]
	return cls, ok
}

// ClassNames returns the registered class names, for discovery surfaces.
func (r *Registry) ClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	return names
}

// Dispatch resolves and invokes a method. When recv is non-nil its class
// takes precedence over className. Unknown classes and methods surface as
// NoMethodError; any error returned by the method is passed through
// unchanged.
func (r *Registry) Dispatch(className, methodName string, recv *Object, args []Value, kw map[string]Value) (Value, error) {
	cls := (*Class)(nil)
	if recv != nil {
		cls = recv.Class
	} else {
		c, ok := r.Class(className)
		if !ok {
			return Nil(), Raise(NoMethodError, "undefined class '"+className+"'")
		}
		cls = c
	}

	m, ok := cls.methods[methodName]
	if !ok {
		return Nil(), Raise(NoMethodError, "undefined method '"+methodName+"' for "+cls.Name)
	}
	return m(&Call{Recv: recv, Args: args, KW: kw})
}
