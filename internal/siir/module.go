package siir

import "github.com/statim-lang/statimc/internal/types"

// Global is a module-level named storage location (spec §3.6). Like
// Local, its ValueType is a pointer to the allocated type.
type Global struct {
	valueBase
	name     string
	allocTyp *types.Type
	ptrTyp   *types.Type
	linkage  Linkage
	init     *Instruction // optional CONSTANT/STRING initializer, unattached to any block
}

var _ Value = (*Global)(nil)

func (g *Global) Name() string              { return g.name }
func (g *Global) AllocatedType() *types.Type { return g.allocTyp }
func (g *Global) ValueType() *types.Type     { return g.ptrTyp }
func (g *Global) Linkage() Linkage          { return g.linkage }
func (g *Global) Init() *Instruction        { return g.init }
func (g *Global) ReplaceAllUsesWith(other Value) {
	if other == Value(g) {
		return
	}
	replaceAllUsesWith(g, other)
}

// Module is the top-level graph owning the type context, functions,
// globals, and the string intern table used by machine symbols (spec
// §3.6). It is the only component permitted to allocate types.
type Module struct {
	name  string
	types *types.Context

	functions   []*Function
	funcByName  map[string]*Function
	globals     []*Global
	globalByName map[string]*Global

	intern     map[string]int
	internList []string
}

// NewModule creates an empty module with its own fresh type context.
func NewModule(name string) *Module {
	return NewModuleWithTypes(name, types.NewContext())
}

// NewModuleWithTypes creates an empty module backed by an existing type
// context. Use this instead of NewModule whenever another component
// (e.g. sema.Resolver) has already stamped *types.Type values from ctx
// onto a tree the module's functions will reference: the whole point of
// Context's uniquing is that a type's identity only means anything
// within the Context that allocated it, so the module and the resolved
// tree it lowers must share one.
func NewModuleWithTypes(name string, ctx *types.Context) *Module {
	return &Module{
		name:        name,
		types:       ctx,
		funcByName:  make(map[string]*Function),
		globalByName: make(map[string]*Global),
		intern:      make(map[string]int),
	}
}

func (m *Module) Name() string          { return m.name }
func (m *Module) Types() *types.Context { return m.types }

// Functions returns every function declared in the module, in
// declaration order.
func (m *Module) Functions() []*Function { return m.functions }

// GetFunction looks up a function by name.
func (m *Module) GetFunction(name string) (*Function, bool) {
	f, ok := m.funcByName[name]
	return f, ok
}

// NewFunction declares a new function in the module.
func (m *Module) NewFunction(name string, typ *types.Type, linkage Linkage) *Function {
	f := newFunction(m, name, typ, linkage)
	m.functions = append(m.functions, f)
	m.funcByName[name] = f
	return f
}

// Globals returns every global declared in the module.
func (m *Module) Globals() []*Global { return m.globals }

// NewGlobal declares a new module-level global.
func (m *Module) NewGlobal(name string, allocType *types.Type, linkage Linkage) *Global {
	g := &Global{name: name, allocTyp: allocType, ptrTyp: m.types.GetPointer(allocType), linkage: linkage}
	m.globals = append(m.globals, g)
	m.globalByName[name] = g
	return g
}

// SetGlobalInit attaches a detached CONSTANT/STRING instruction as a
// global's initializer.
func (m *Module) SetGlobalInit(g *Global, init *Instruction) {
	g.init = init
}

// Intern registers s in the module's string intern table (used by
// machine-layer symbol references) and returns its stable index.
func (m *Module) Intern(s string) int {
	if idx, ok := m.intern[s]; ok {
		return idx
	}
	idx := len(m.internList)
	m.intern[s] = idx
	m.internList = append(m.internList, s)
	return idx
}

// InternedString returns the string registered at idx.
func (m *Module) InternedString(idx int) string { return m.internList[idx] }
